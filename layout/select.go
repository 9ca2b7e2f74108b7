package layout

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
)

// Mode 决定候选的挑选方式。
type Mode int

const (
	// Closest 选宽高比最接近目标的候选。
	Closest Mode = iota
	// Random 在比例范围内均匀随机挑选。
	Random
)

// ParseMode 解析 "closest" / "random"。
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "closest":
		return Closest, nil
	case "random":
		return Random, nil
	default:
		return Closest, fmt.Errorf("未知的选择模式 %q", s)
	}
}

func (m Mode) String() string {
	if m == Random {
		return "random"
	}
	return "closest"
}

// DefaultSeed 是随机模式未指定随机源时使用的种子。
const DefaultSeed = 42

// Selector 按目标宽高比挑选候选。Max<=0 表示没有上限。
type Selector struct {
	Mode   Mode
	Target float64
	Min    float64
	Max    float64
	Rand   *rand.Rand
}

// Rank 返回 [Min, Max) 范围内的候选。Closest 模式下按与目标的距离稳定排序，
// 距离相同的保持原有顺序。
func (s Selector) Rank(opts []Option) ([]Option, error) {
	if len(opts) == 0 {
		return nil, ErrEmptyInput
	}
	upper := s.Max
	if upper <= 0 {
		upper = math.Inf(1)
	}
	ranked := make([]Option, 0, len(opts))
	for _, o := range opts {
		if o.Ratio >= s.Min && o.Ratio < upper {
			ranked = append(ranked, o)
		}
	}
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w: [%g, %g) 内 0/%d", ErrNoCandidates, s.Min, s.Max, len(opts))
	}
	if s.Mode == Closest {
		slices.SortStableFunc(ranked, func(a, b Option) int {
			da, db := math.Abs(s.Target-a.Ratio), math.Abs(s.Target-b.Ratio)
			switch {
			case da < db:
				return -1
			case da > db:
				return 1
			default:
				return 0
			}
		})
	}
	return ranked, nil
}

// Select 返回一个候选。空输入返回 ErrEmptyInput，全部被过滤返回 ErrNoCandidates。
func (s Selector) Select(opts []Option) (Option, error) {
	ranked, err := s.Rank(opts)
	if err != nil {
		return Option{}, err
	}
	if s.Mode == Random {
		r := s.Rand
		if r == nil {
			r = rand.New(rand.NewPCG(DefaultSeed, 0))
		}
		return ranked[r.IntN(len(ranked))], nil
	}
	return ranked[0], nil
}
