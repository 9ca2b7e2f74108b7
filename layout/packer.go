package layout

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/emirpasic/gods/sets/hashset"
)

const epsilon = 1e-6

// Packer 穷举一组有序单元的所有合法矩形排法。
//
// 搜索从第一个单元开始，每一步把接下来的若干单元作为一列（向右）或一行（向下）
// 贴到当前容器边上，并按比例缩放使其正好铺满该边。
type Packer struct {
	// PruneFactor 面积超过已见最小面积该倍数的结果被丢弃，<=0 时使用 DefaultPhrasePrune。
	PruneFactor float64
	Strict      bool
	Corners     CornerRule
	// MaxUnits 限制单次打包的单元数，搜索量随单元数指数增长。<=0 表示不限。
	MaxUnits int
}

// ctxCheckInterval 是两次检查 ctx 之间的搜索节点数。
const ctxCheckInterval = 1024

// packState 是一条搜索分支的状态，每次扩展都先复制。
type packState struct {
	placed    []PlacedUnit
	size      Size
	forbidden []Point
}

func (s packState) clone() packState {
	return packState{
		placed:    slices.Clone(s.placed),
		size:      s.size,
		forbidden: slices.Clone(s.forbidden),
	}
}

// accumulator 汇总一次 Pack 调用的所有结果。
type accumulator struct {
	factor     float64
	options    []Option
	seen       *hashset.Set
	minSurface float64

	ctx   context.Context
	steps int
	err   error
}

// stopped 在 ctx 取消后让整棵搜索树尽快返回。
func (a *accumulator) stopped() bool {
	if a.err != nil {
		return true
	}
	if a.steps%ctxCheckInterval == 0 {
		if err := a.ctx.Err(); err != nil {
			a.err = err
			return true
		}
	}
	a.steps++
	return false
}

func (a *accumulator) offer(opt Option) {
	a.minSurface = math.Min(a.minSurface, opt.Surface)
	if opt.Surface/a.minSurface >= a.factor {
		return
	}
	key := Key(opt)
	if a.seen.Contains(key) {
		return
	}
	a.seen.Add(key)
	a.options = append(a.options, opt)
}

// PackUnits 对叶子字形序列调用 Pack。
func (p Packer) PackUnits(units []Unit) ([]Option, error) {
	return p.PackUnitsContext(context.Background(), units)
}

// PackUnitsContext 是可取消的 PackUnits。
func (p Packer) PackUnitsContext(ctx context.Context, units []Unit) ([]Option, error) {
	items := make([]Member, 0, len(units))
	for _, u := range units {
		items = append(items, LeafMember(u))
	}
	return p.PackContext(ctx, items)
}

// Pack 返回 items 的全部候选排法，输出顺序对相同输入保持一致。
func (p Packer) Pack(items []Member) ([]Option, error) {
	return p.PackContext(context.Background(), items)
}

// PackContext 是可取消的 Pack；ctx 取消时返回 ctx.Err()。
func (p Packer) PackContext(ctx context.Context, items []Member) ([]Option, error) {
	if len(items) == 0 {
		return nil, ErrEmptyInput
	}
	if p.MaxUnits > 0 && len(items) > p.MaxUnits {
		return nil, fmt.Errorf("%w: %d 个单元, 上限 %d", ErrTooManyUnits, len(items), p.MaxUnits)
	}

	first := items[0].Size()
	root := packState{
		placed:    []PlacedUnit{{Member: items[0], Size: first}},
		size:      first,
		forbidden: []Point{{X: first.W, Y: first.H}},
	}
	if len(items) == 1 {
		return []Option{root.option()}, nil
	}

	acc := &accumulator{
		factor:     p.pruneFactor(),
		seen:       hashset.New(),
		minSurface: math.Inf(1),
		ctx:        ctx,
	}
	p.continueFrom(items, root, 1, acc)
	if acc.err != nil {
		return nil, acc.err
	}

	if !p.Strict {
		return acc.options, nil
	}
	kept := make([]Option, 0, len(acc.options))
	for _, opt := range acc.options {
		if opt.Surface/acc.minSurface < acc.factor {
			kept = append(kept, opt)
		}
	}
	return kept, nil
}

func (p Packer) pruneFactor() float64 {
	if p.PruneFactor <= 0 {
		return DefaultPhrasePrune
	}
	return p.PruneFactor
}

// continueFrom 按长度递增、先右后下的顺序尝试剩余单元的所有分段。
func (p Packer) continueFrom(items []Member, st packState, index int, acc *accumulator) {
	if acc.stopped() {
		return
	}
	for length := 1; length <= len(items)-index; length++ {
		if !items[index].IsPunctuation() {
			p.extend(items, st, false, index, length, acc)
		}
		p.extend(items, st, true, index, length, acc)
	}
}

// extend 把 items[index:index+length] 作为一段贴到容器右侧（down=false）或下方。
func (p Packer) extend(items []Member, st packState, down bool, index, length int, acc *accumulator) {
	lead := items[index].Size()
	var sum Size
	for i := index; i < index+length; i++ {
		s := items[i].Size()
		if down && !near(s.H, lead.H) || !down && !near(s.W, lead.W) {
			return
		}
		sum.W += s.W
		sum.H += s.H
	}

	next := st.clone()
	pos := Point{X: st.size.W}
	if down {
		pos = Point{Y: st.size.H}
	}
	for i := index; i < index+length; i++ {
		s := items[i].Size()
		var glyph Size
		if down {
			add := s.H * st.size.W / sum.W
			glyph = Size{W: s.W * add / s.H, H: add}
			if i == index {
				next.size.H += add
			}
		} else {
			add := s.W * st.size.H / sum.H
			glyph = Size{W: add, H: s.H * add / s.W}
			if i == index {
				next.size.W += add
			}
		}

		if (down || p.Corners == CornersBoth) && isForbidden(next.forbidden, pos) {
			return
		}
		next.placed = append(next.placed, PlacedUnit{Member: items[i], Size: glyph, Position: pos})
		next.forbidden = append(next.forbidden, Point{X: pos.X + glyph.W, Y: pos.Y + glyph.H})

		if down {
			pos.X += glyph.W
		} else {
			pos.Y += glyph.H
		}
	}

	if index+length == len(items) {
		acc.offer(Normalize(next.option()))
		return
	}
	p.continueFrom(items, next, index+length, acc)
}

func (s packState) option() Option {
	return Option{
		Members: slices.Clone(s.placed),
		Size:    s.size,
		Ratio:   s.size.Ratio(),
		Surface: s.size.Surface(),
		Kind:    ContainerOption,
	}
}

// Normalize 按成员中最小的边长整体缩放，使最小字形在其短边上恰为 1。
// 对已归一化的结果调用不会再改变它。
func Normalize(o Option) Option {
	scale := math.Inf(1)
	for _, pu := range o.Members {
		scale = math.Min(scale, math.Min(pu.Size.W, pu.Size.H))
	}
	if math.IsInf(scale, 1) || scale <= 0 || near(scale, 1) {
		return o
	}

	out := o
	out.Members = make([]PlacedUnit, len(o.Members))
	for i, pu := range o.Members {
		out.Members[i] = PlacedUnit{
			Member:   pu.Member,
			Size:     Size{W: pu.Size.W / scale, H: pu.Size.H / scale},
			Position: Point{X: pu.Position.X / scale, Y: pu.Position.Y / scale},
		}
	}
	out.Size = Size{W: o.Size.W / scale, H: o.Size.H / scale}
	out.Surface = out.Size.Surface()
	out.Ratio = out.Size.Ratio()
	return out
}

func isForbidden(corners []Point, pos Point) bool {
	for _, c := range corners {
		if near(c.X, pos.X) && near(c.Y, pos.Y) {
			return true
		}
	}
	return false
}

func near(a, b float64) bool { return math.Abs(a-b) < epsilon }
