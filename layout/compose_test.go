package layout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ByLCY/sitelen/grammar"
)

func TestComposeEmpty(t *testing.T) {
	if _, err := NewComposer(DefaultOptions()).Compose(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("期望 ErrEmptyInput, 得到 %v", err)
	}
}

func TestComposeWrapsParts(t *testing.T) {
	parts := grammar.Structure([]string{"jan", "pona", "li", "pona"})
	opts, err := NewComposer(DefaultOptions()).Compose(parts)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(opts) == 0 {
		t.Fatalf("没有复合排法")
	}
	for _, o := range opts {
		checkPacking(t, o)
		if len(o.Members) != 2 {
			t.Fatalf("顶层应有 2 个子容器, 得到 %d", len(o.Members))
		}
		subject, verb := o.Members[0].Member.Sub, o.Members[1].Member.Sub
		if subject == nil || verb == nil {
			t.Fatalf("顶层成员应全部是子容器")
		}
		if subject.Separator != "" || verb.Separator != "li" {
			t.Fatalf("分隔符 = %q / %q", subject.Separator, verb.Separator)
		}
		if len(subject.Members) != 2 || subject.Members[0].Member.Leaf.Token != "jan" {
			t.Fatalf("主语内容不对: %+v", subject.Members)
		}
	}
}

func TestComposeNestedCartoucheAndPunctuation(t *testing.T) {
	parts := grammar.Postprocess([]grammar.Part{
		grammar.NewPart(grammar.Subject, "", "jan", "Sonja"),
		grammar.NewPart(grammar.VerbPhrase, "li", "pona"),
	})
	parts = append(parts, grammar.NewPart(grammar.Punctuation, "", "period"))

	opts, err := NewComposer(DefaultOptions()).Compose(parts)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(opts) == 0 {
		t.Fatalf("没有复合排法")
	}

	var syllables, marks int
	for _, b := range Flatten(opts[0], Point{}, 1) {
		if b.Kind != LeafBox {
			continue
		}
		switch b.Unit.Kind {
		case SyllableGlyph:
			syllables++
		case PunctuationGlyph:
			marks++
		}
	}
	if syllables != 2 || marks != 1 {
		t.Fatalf("音节 %d 个, 标点 %d 个", syllables, marks)
	}

	for _, o := range opts {
		last := o.Members[len(o.Members)-1]
		if last.Member.Sub == nil || last.Member.Sub.Kind != PunctuationOption {
			t.Fatalf("最后一个成员应为标点容器")
		}
		if last.Position.X != 0 {
			t.Fatalf("标点应从左边起一行, 位置 %+v", last.Position)
		}
	}
}

func TestFlattenContainersBeforeChildren(t *testing.T) {
	parts := grammar.Structure([]string{"mi", "moku", "e", "kili"})
	opts, err := NewComposer(DefaultOptions()).Compose(parts)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	o := opts[0]
	boxes := Flatten(o, Point{X: 10, Y: 5}, 2)

	leaves := 0
	var lastContainer *Box
	for i := range boxes {
		b := &boxes[i]
		if b.X < 10-epsilon || b.Y < 5-epsilon || b.X+b.W > 10+2*o.Size.W+epsilon || b.Y+b.H > 5+2*o.Size.H+epsilon {
			t.Fatalf("box %d 越界: %+v", i, *b)
		}
		switch b.Kind {
		case ContainerBox:
			lastContainer = b
		case LeafBox:
			leaves++
			if b.Depth > 0 && lastContainer == nil {
				t.Fatalf("叶子 %d 出现在容器之前", i)
			}
		}
	}
	// e 只是分隔符，不产生字形。
	if leaves != 3 {
		t.Fatalf("期望 3 个叶子, 得到 %d", leaves)
	}
}

func TestKeyDistinguishesTokens(t *testing.T) {
	a := pack(t, Packer{}, wordUnits("jan", "pona"))[0]
	b := pack(t, Packer{}, wordUnits("jan", "ike"))[0]
	if Key(a) == Key(b) {
		t.Fatalf("不同 token 的排法键相同: %s", Key(a))
	}
	c := a
	c.Separator = "li"
	if Key(a) == Key(c) {
		t.Fatalf("分隔符应参与键")
	}
}

func TestComposeContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	parts := grammar.Structure([]string{"mi", "moku", "e", "kili"})
	if _, err := NewComposer(DefaultOptions()).ComposeContext(ctx, parts); !errors.Is(err, context.Canceled) {
		t.Fatalf("已取消的 ctx 应返回 context.Canceled, 得到 %v", err)
	}
}

func TestComposeLongPhraseHitsLimit(t *testing.T) {
	tokens := append([]string{"mi", "moku", "e"}, strings.Fields(strings.Repeat("kili ", DefaultMaxUnits+1))...)
	_, err := NewComposer(DefaultOptions()).Compose(grammar.Structure(tokens))
	if !errors.Is(err, ErrTooManyUnits) {
		t.Fatalf("过长的成分应返回 ErrTooManyUnits, 得到 %v", err)
	}
}
