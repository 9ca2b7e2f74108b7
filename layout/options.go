package layout

import "fmt"

// 默认剪枝系数：单个短语 2 倍，复合句 3 倍。
const (
	DefaultPhrasePrune   = 2.0
	DefaultCompoundPrune = 3.0
)

// DefaultMaxUnits 是单个成分默认允许的最大单元数。
const DefaultMaxUnits = 12

// CornerRule 控制禁止角点在哪些增长方向上检查。
type CornerRule int

const (
	// CornersBoth 向右与向下增长都检查禁止角点。
	CornersBoth CornerRule = iota
	// CornersDownOnly 只在向下增长时检查。
	CornersDownOnly
)

// ParseCornerRule 解析配置中的 "both" / "down"。
func ParseCornerRule(s string) (CornerRule, error) {
	switch s {
	case "", "both":
		return CornersBoth, nil
	case "down":
		return CornersDownOnly, nil
	default:
		return CornersBoth, fmt.Errorf("未知的角点规则 %q", s)
	}
}

func (r CornerRule) String() string {
	if r == CornersDownOnly {
		return "down"
	}
	return "both"
}

// Options 配置短语与复合句两级打包。
type Options struct {
	PhrasePrune   float64
	CompoundPrune float64
	// StrictPrune 在搜索结束后按最终最小面积再过滤一次。
	StrictPrune bool
	Corners     CornerRule
	// MaxUnits 限制每次打包的单元数，<=0 表示不限。
	MaxUnits int
}

// DefaultOptions 返回默认打包配置。
func DefaultOptions() Options {
	return Options{
		PhrasePrune:   DefaultPhrasePrune,
		CompoundPrune: DefaultCompoundPrune,
		Corners:       CornersBoth,
		MaxUnits:      DefaultMaxUnits,
	}
}

// NewComposer 按配置创建两级打包器。
func NewComposer(opts Options) Composer {
	return Composer{
		Phrase:   Packer{PruneFactor: opts.PhrasePrune, Strict: opts.StrictPrune, Corners: opts.Corners, MaxUnits: opts.MaxUnits},
		Compound: Packer{PruneFactor: opts.CompoundPrune, Strict: opts.StrictPrune, Corners: opts.Corners, MaxUnits: opts.MaxUnits},
	}
}
