package layout

// BoxKind 描述展开后的矩形类型。
type BoxKind int

const (
	LeafBox BoxKind = iota
	ContainerBox
)

// Box 是展开到绝对坐标后的一个矩形，Depth 为嵌套层数（顶层成员为 0）。
type Box struct {
	X, Y, W, H float64
	Depth      int
	Kind       BoxKind
	Unit       *Unit
	Separator  string
	Option     OptionKind
}

// Flatten 按容器坐标变换递归展开排法，origin/scale 决定顶层坐标系。
// 容器先于其子成员输出。
func Flatten(o Option, origin Point, scale float64) []Box {
	var out []Box
	flattenInto(&out, o, origin, scale, 0)
	return out
}

func flattenInto(out *[]Box, o Option, origin Point, scale float64, depth int) {
	for _, pu := range o.Members {
		x := origin.X + pu.Position.X*scale
		y := origin.Y + pu.Position.Y*scale
		w := pu.Size.W * scale
		h := pu.Size.H * scale
		switch {
		case pu.Member.Leaf != nil:
			*out = append(*out, Box{X: x, Y: y, W: w, H: h, Depth: depth, Kind: LeafBox, Unit: pu.Member.Leaf})
		case pu.Member.Sub != nil:
			sub := pu.Member.Sub
			*out = append(*out, Box{
				X: x, Y: y, W: w, H: h,
				Depth:     depth,
				Kind:      ContainerBox,
				Separator: sub.Separator,
				Option:    sub.Kind,
			})
			inner := 1.0
			if sub.Size.W > 0 {
				inner = w / sub.Size.W
			}
			flattenInto(out, *sub, Point{X: x, Y: y}, inner, depth+1)
		}
	}
}

// Frame 是一个句段在整篇中的位置与缩放。
type Frame struct {
	Compound int
	Origin   Point
	Scale    float64
	Size     Size
}

// Arrange 把句段缩放到同一宽度（最宽句段的宽度）后自上而下排列，gap 为句段间距。
// 返回各句段的位置与整体尺寸。
func Arrange(doc *Document, gap float64) ([]Frame, Size) {
	if doc == nil || len(doc.Compounds) == 0 {
		return nil, Size{}
	}
	width := 0.0
	for _, c := range doc.Compounds {
		width = max(width, c.Option.Size.W)
	}

	frames := make([]Frame, 0, len(doc.Compounds))
	y := 0.0
	for i, c := range doc.Compounds {
		scale := 1.0
		if c.Option.Size.W > 0 {
			scale = width / c.Option.Size.W
		}
		size := Size{W: width, H: c.Option.Size.H * scale}
		if i > 0 {
			y += gap
		}
		frames = append(frames, Frame{Compound: i, Origin: Point{Y: y}, Scale: scale, Size: size})
		y += size.H
	}
	return frames, Size{W: width, H: y}
}
