// Package text draws layouts as ASCII box diagrams for terminals.
package text

import (
	"fmt"
	"math"
	"strings"

	"github.com/ByLCY/sitelen/layout"
	"github.com/ByLCY/sitelen/renderer"
)

// Renderer draws each leaf as a box of Cols x Rows characters per glyph unit.
type Renderer struct {
	Cols int
	Rows int
	// Gap is the number of blank lines between compounds.
	Gap int
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer returns a renderer with 4x2 characters per glyph unit.
func NewRenderer() *Renderer {
	return &Renderer{Cols: 4, Rows: 2, Gap: 1}
}

// Render draws every compound at its own size, one below the other.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil || len(doc.Compounds) == 0 {
		return nil, fmt.Errorf("缺少可渲染的句段")
	}
	var b strings.Builder
	for i, c := range doc.Compounds {
		if i > 0 {
			b.WriteString(strings.Repeat("\n", r.Gap))
		}
		b.WriteString(r.Option(c.Option))
	}
	return []byte(b.String()), nil
}

// Option renders a single option.
func (r *Renderer) Option(o layout.Option) string {
	cols, rows := max(r.Cols, 2), max(r.Rows, 1)
	width := int(math.Round(o.Size.W*float64(cols))) + 1
	height := int(math.Round(o.Size.H*float64(rows))) + 1

	g := newGrid(width, height)
	for _, box := range layout.Flatten(o, layout.Point{}, 1) {
		if box.Kind != layout.LeafBox {
			continue
		}
		x0 := int(math.Round(box.X * float64(cols)))
		y0 := int(math.Round(box.Y * float64(rows)))
		x1 := int(math.Round((box.X + box.W) * float64(cols)))
		y1 := int(math.Round((box.Y + box.H) * float64(rows)))
		g.box(x0, y0, x1, y1)

		if box.Unit.Kind == layout.PunctuationGlyph {
			g.fill(x0+1, y0+1, x1-1, y1-1, '=')
			continue
		}
		g.label(x0+1, (y0+y1)/2, x1-x0-1, box.Unit.Token)
	}
	return g.String()
}

type grid struct {
	w, h  int
	cells [][]rune
}

func newGrid(w, h int) *grid {
	cells := make([][]rune, h)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", w))
	}
	return &grid{w: w, h: h, cells: cells}
}

func (g *grid) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	cur := g.cells[y][x]
	switch {
	case cur == '+':
		return
	case (cur == '-' && r == '|') || (cur == '|' && r == '-'):
		r = '+'
	}
	g.cells[y][x] = r
}

func (g *grid) box(x0, y0, x1, y1 int) {
	for x := x0 + 1; x < x1; x++ {
		g.set(x, y0, '-')
		g.set(x, y1, '-')
	}
	for y := y0 + 1; y < y1; y++ {
		g.set(x0, y, '|')
		g.set(x1, y, '|')
	}
	for _, p := range [][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		if p[0] >= 0 && p[1] >= 0 && p[0] < g.w && p[1] < g.h {
			g.cells[p[1]][p[0]] = '+'
		}
	}
}

func (g *grid) fill(x0, y0, x1, y1 int, r rune) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if x >= 0 && y >= 0 && x < g.w && y < g.h && g.cells[y][x] == ' ' {
				g.cells[y][x] = r
			}
		}
	}
}

func (g *grid) label(x, y, width int, s string) {
	runes := []rune(s)
	if width <= 0 || y < 0 || y >= g.h {
		return
	}
	if len(runes) > width {
		runes = runes[:width]
	}
	for i, r := range runes {
		if x+i < g.w {
			g.cells[y][x+i] = r
		}
	}
}

func (g *grid) String() string {
	var b strings.Builder
	for _, row := range g.cells {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
