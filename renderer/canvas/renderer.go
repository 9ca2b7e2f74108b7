package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/sitelen/grammar"
	"github.com/ByLCY/sitelen/layout"
	"github.com/ByLCY/sitelen/renderer"
)

const (
	strokeWidth  = 0.3 // mm
	cornerFactor = 0.15
	glyphInset   = 0.08 // 字形框相对单元边长的内缩比例
)

// Format 是输出格式。
type Format string

const (
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// ParseFormat 解析 "svg" / "pdf"。
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatSVG:
		return FormatSVG, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("不支持的输出格式 %q", s)
	}
}

// Options configures the canvas renderer.
type Options struct {
	Format Format
	// Unit is the physical size of one abstract glyph unit.
	Unit layout.Length
	// Gap between stacked compounds, in glyph units.
	Gap float64
	// Margin around the drawing, in glyph units.
	Margin float64
}

// DefaultOptions returns SVG output at 10mm per glyph unit.
func DefaultOptions() Options {
	return Options{
		Format: FormatSVG,
		Unit:   layout.Length{Value: 10, Unit: layout.UnitMM},
		Gap:    0.5,
		Margin: 0.25,
	}
}

// Renderer draws selected layouts as wireframes via github.com/tdewolff/canvas.
type Renderer struct {
	opts Options
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a canvas-based renderer.
func NewRenderer(opts Options) *Renderer {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	if opts.Unit.Value <= 0 {
		opts.Unit = DefaultOptions().Unit
	}
	return &Renderer{opts: opts}
}

// Render renders the document into SVG or PDF bytes.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(doc.Compounds) == 0 {
		return nil, fmt.Errorf("缺少可渲染的句段")
	}

	unit := r.opts.Unit.ToMM()
	frames, total := layout.Arrange(doc, r.opts.Gap)
	margin := r.opts.Margin
	width := (total.W + 2*margin) * unit
	height := (total.H + 2*margin) * unit

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点

	for _, f := range frames {
		origin := layout.Point{X: (margin + f.Origin.X) * unit, Y: (margin + f.Origin.Y) * unit}
		boxes := layout.Flatten(doc.Compounds[f.Compound].Option, origin, f.Scale*unit)
		drawBoxes(ctx, boxes)
	}

	var buf bytes.Buffer
	writer, err := r.newWriter(&buf, width, height)
	if err != nil {
		return nil, err
	}
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 %s 失败: %w", r.opts.Format, err)
	}
	return buf.Bytes(), nil
}

type closingRenderer interface {
	canvas.Renderer
	Close() error
}

func (r *Renderer) newWriter(w io.Writer, width, height float64) (closingRenderer, error) {
	switch r.opts.Format {
	case FormatSVG:
		return svg.New(w, width, height, nil), nil
	case FormatPDF:
		return pdf.New(w, width, height, nil), nil
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", r.opts.Format)
	}
}

// drawBoxes 按 Flatten 的顺序绘制，容器背景先于其中的字形。
func drawBoxes(ctx *canvas.Context, boxes []layout.Box) {
	for _, b := range boxes {
		switch b.Kind {
		case layout.ContainerBox:
			drawContainer(ctx, b)
		case layout.LeafBox:
			drawGlyph(ctx, b)
		}
	}
}

func drawContainer(ctx *canvas.Context, b layout.Box) {
	if b.Option == layout.PunctuationOption || b.Separator == "" {
		return
	}
	radius := math.Min(b.W, b.H) * cornerFactor
	if b.Separator == grammar.CartoucheSeparator {
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		ctx.SetStrokeColor(color.RGBA{40, 40, 40, 255})
		ctx.SetStrokeWidth(strokeWidth * 2)
		ctx.DrawPath(b.X, b.Y, canvas.RoundedRectangle(b.W, b.H, radius))
		return
	}
	ctx.SetFillColor(separatorColor(b.Separator))
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeWidth(0)
	ctx.DrawPath(b.X, b.Y, canvas.RoundedRectangle(b.W, b.H, radius))
}

func drawGlyph(ctx *canvas.Context, b layout.Box) {
	if b.Unit != nil && b.Unit.Kind == layout.PunctuationGlyph {
		// 标点画成居中的实心横条
		barH := b.H * 0.3
		ctx.SetFillColor(color.RGBA{60, 60, 60, 255})
		ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
		ctx.SetStrokeWidth(0)
		ctx.DrawPath(b.X+b.W*glyphInset, b.Y+(b.H-barH)/2, canvas.Rectangle(b.W*(1-2*glyphInset), barH))
		return
	}
	inset := math.Min(b.W, b.H) * glyphInset
	ctx.SetFillColor(color.RGBA{255, 255, 255, 255})
	ctx.SetStrokeColor(color.RGBA{30, 30, 30, 255})
	ctx.SetStrokeWidth(strokeWidth)
	ctx.DrawPath(b.X+inset, b.Y+inset, canvas.Rectangle(b.W-2*inset, b.H-2*inset))
}

var separatorColors = map[string]color.RGBA{
	"li":      {214, 232, 250, 255},
	"e":       {220, 240, 214, 255},
	"o":       {250, 226, 214, 255},
	"pi":      {232, 232, 232, 255},
	"lon":     {250, 240, 200, 255},
	"tawa":    {250, 240, 200, 255},
	"tan":     {250, 240, 200, 255},
	"kepeken": {250, 240, 200, 255},
}

func separatorColor(sep string) color.Color {
	if c, ok := separatorColors[sep]; ok {
		return c
	}
	return color.RGBA{240, 240, 240, 255}
}
