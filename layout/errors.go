package layout

import "errors"

var (
	// ErrEmptyInput 表示没有可排版的单元，通常是输入本身有问题。
	ErrEmptyInput = errors.New("layout: 没有可排版的单元")

	// ErrNoCandidates 表示候选存在但全部被比例范围过滤掉。
	ErrNoCandidates = errors.New("layout: 比例范围内没有候选排法")

	// ErrTooManyUnits 表示单个成分的单元数超过 Packer.MaxUnits。
	ErrTooManyUnits = errors.New("layout: 单元过多")
)
