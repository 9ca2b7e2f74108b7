package layout

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func ratios(rs ...float64) []Option {
	out := make([]Option, len(rs))
	for i, r := range rs {
		out[i] = Option{Size: Size{W: r, H: 1}, Ratio: r, Surface: r}
	}
	return out
}

func TestSelectClosest(t *testing.T) {
	got, err := Selector{Target: 0.8}.Select(ratios(0.5, 0.75, 1.2))
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got.Ratio != 0.75 {
		t.Fatalf("期望 0.75, 得到 %g", got.Ratio)
	}
}

func TestRankStableOnTies(t *testing.T) {
	opts := ratios(1.5, 0.5, 2, 0.5)
	opts[1].Separator = "first"
	opts[3].Separator = "second"
	ranked, err := Selector{Target: 1}.Rank(opts)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if ranked[0].Ratio != 1.5 || ranked[1].Separator != "first" || ranked[2].Separator != "second" || ranked[3].Ratio != 2 {
		t.Fatalf("排序结果不稳定: %+v", ranked)
	}
}

func TestSelectFiltersRange(t *testing.T) {
	s := Selector{Target: 0.8, Min: 1, Max: 2}
	got, err := s.Select(ratios(0.5, 0.75, 1.2, 2))
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got.Ratio != 1.2 {
		t.Fatalf("期望 1.2 (2 不在 [1,2) 内), 得到 %g", got.Ratio)
	}
}

func TestSelectErrorsAreDistinct(t *testing.T) {
	_, err := Selector{Target: 1}.Select(nil)
	if !errors.Is(err, ErrEmptyInput) || errors.Is(err, ErrNoCandidates) {
		t.Fatalf("空输入应只匹配 ErrEmptyInput, 得到 %v", err)
	}
	_, err = Selector{Target: 1, Min: 5}.Select(ratios(0.5, 1))
	if !errors.Is(err, ErrNoCandidates) || errors.Is(err, ErrEmptyInput) {
		t.Fatalf("全部过滤应只匹配 ErrNoCandidates, 得到 %v", err)
	}
}

func TestSelectRandomIsSeeded(t *testing.T) {
	opts := ratios(0.5, 0.75, 1, 1.25, 1.5, 2)
	pick := func() []float64 {
		s := Selector{Mode: Random, Rand: rand.New(rand.NewPCG(7, 0))}
		var out []float64
		for range 10 {
			o, err := s.Select(opts)
			if err != nil {
				t.Fatalf("select: %v", err)
			}
			out = append(out, o.Ratio)
		}
		return out
	}
	a, b := pick(), pick()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("相同种子的随机结果不同: %v / %v", a, b)
		}
	}
}

func TestParseModeAndCorners(t *testing.T) {
	if m, err := ParseMode("random"); err != nil || m != Random {
		t.Fatalf("ParseMode(random) = %v, %v", m, err)
	}
	if _, err := ParseMode("best"); err == nil {
		t.Fatalf("未知模式应报错")
	}
	if r, err := ParseCornerRule("down"); err != nil || r != CornersDownOnly {
		t.Fatalf("ParseCornerRule(down) = %v, %v", r, err)
	}
}

func TestSizeOf(t *testing.T) {
	tests := []struct {
		token string
		kind  UnitKind
		want  Size
	}{
		{"comma", PunctuationGlyph, Size{4, 0.5}},
		{"period", PunctuationGlyph, Size{4, 0.75}},
		{"la", PunctuationGlyph, Size{4, 1}},
		{"lili", WordGlyph, Size{1, 0.5}},
		{"tu", WordGlyph, Size{0.5, 1}},
		{"la", WordGlyph, Size{1, 1}},
		{"son", SyllableGlyph, Size{0.5, 1}},
		{"ja", SyllableGlyph, Size{1, 1}},
		{"xyzzy", WordGlyph, Size{1, 1}},
	}
	for _, tt := range tests {
		if got := SizeOf(tt.token, tt.kind); got != tt.want {
			t.Fatalf("SizeOf(%q, %s) = %+v, want %+v", tt.token, tt.kind, got, tt.want)
		}
	}
}
