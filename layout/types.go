package layout

import "fmt"

// 该文件定义排版搜索使用的值类型，供打包、选择、渲染与调试 JSON 共用。

// Size 以抽象字形单位记录宽高。
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Ratio 返回宽高比 w/h。
func (s Size) Ratio() float64 {
	if s.H <= 0 {
		return 0
	}
	return s.W / s.H
}

// Surface 返回面积。
func (s Size) Surface() float64 { return s.W * s.H }

func (s Size) String() string { return fmt.Sprintf("%.2fx%.2f", s.W, s.H) }

// Point 是所在容器坐标系中的左上角位置。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// UnitKind 区分叶子字形的来源。
type UnitKind int

const (
	WordGlyph UnitKind = iota
	SyllableGlyph
	PunctuationGlyph
)

func (k UnitKind) String() string {
	switch k {
	case WordGlyph:
		return "word"
	case SyllableGlyph:
		return "syllable"
	case PunctuationGlyph:
		return "punctuation"
	default:
		return "unknown"
	}
}

// MarshalText 让 JSON 中输出可读的名称。
func (k UnitKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Unit 是一个带固有尺寸的叶子字形，创建后不再修改。
type Unit struct {
	Kind  UnitKind `json:"kind"`
	Token string   `json:"token"`
	Size  Size     `json:"size"`
}

// OptionKind 告诉渲染器容器是否需要按标点处理。
type OptionKind int

const (
	ContainerOption OptionKind = iota
	PunctuationOption
)

func (k OptionKind) String() string {
	if k == PunctuationOption {
		return "punctuation"
	}
	return "container"
}

// MarshalText 让 JSON 中输出可读的名称。
func (k OptionKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Member 是打包输入中的一项：叶子字形或已排好的子容器，二者恰好其一非空。
type Member struct {
	Leaf *Unit   `json:"leaf,omitempty"`
	Sub  *Option `json:"sub,omitempty"`
}

// LeafMember 包装一个叶子字形。
func LeafMember(u Unit) Member { return Member{Leaf: &u} }

// SubMember 包装一个子容器。
func SubMember(o *Option) Member { return Member{Sub: o} }

// Size 返回成员的固有尺寸。
func (m Member) Size() Size {
	switch {
	case m.Leaf != nil:
		return m.Leaf.Size
	case m.Sub != nil:
		return m.Sub.Size
	default:
		return Size{}
	}
}

// IsPunctuation 标点不能作为向右增长的起点。
func (m Member) IsPunctuation() bool {
	switch {
	case m.Leaf != nil:
		return m.Leaf.Kind == PunctuationGlyph
	case m.Sub != nil:
		return m.Sub.Kind == PunctuationOption
	default:
		return false
	}
}

// PlacedUnit 记录成员在直接外层容器中的尺寸与位置。
type PlacedUnit struct {
	Member   Member `json:"member"`
	Size     Size   `json:"size"`
	Position Point  `json:"position"`
}

// Option 是一个单元序列的完整候选排法。
type Option struct {
	Members   []PlacedUnit `json:"members"`
	Size      Size         `json:"size"`
	Ratio     float64      `json:"ratio"`
	Surface   float64      `json:"surface"`
	Separator string       `json:"separator,omitempty"`
	Kind      OptionKind   `json:"kind"`
}

// Compound 是一个已选定排法的句段。
type Compound struct {
	Sentence   int    `json:"sentence"`
	Option     Option `json:"option"`
	Candidates int    `json:"candidates"`
}

// Document 保存整段文本的选定结果，交给渲染器使用。
type Document struct {
	Compounds []Compound `json:"compounds"`
}
