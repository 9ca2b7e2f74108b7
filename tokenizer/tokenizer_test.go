package tokenizer_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/ByLCY/sitelen/tokenizer"
)

const sampleText = `
jan pona li pona. mi lape, la sina pali!
toki, jan Sonja o. . seme?!
`

func TestParseText(t *testing.T) {
	ast, err := tokenizer.Parse(strings.NewReader(sampleText))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(ast.Sentences) != 4 {
		t.Fatalf("expected 4 sentences, got %d", len(ast.Sentences))
	}
	if got := ast.Sentences[3].Terminator; got != "?!" {
		t.Fatalf("expected terminator ?!, got %q", got)
	}
	if ast.Sentences[0].Pos.Line != 2 {
		t.Fatalf("expected first sentence on line 2, got %d", ast.Sentences[0].Pos.Line)
	}
}

func clauseStrings(s tokenizer.Sentence) []string {
	out := make([]string, 0, len(s.Clauses))
	for _, c := range s.Clauses {
		if c.Kind == tokenizer.ClausePunctuation {
			out = append(out, "<"+c.Mark+">")
			continue
		}
		out = append(out, c.Text())
	}
	return out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{"simple", "jan pona li pona.", [][]string{{"jan pona li pona", "<period>"}}},
		{"context", "mi lape, la sina pali.", [][]string{{"mi lape", "<la>", "sina pali", "<period>"}}},
		{"comma", "mi moku, sina lape.", [][]string{{"mi moku", "<comma>", "sina lape", "<period>"}}},
		{"comma before li", "jan ale, li kama!", [][]string{{"jan ale li kama", "<exclamation>"}}},
		{"colon", "ona li toki e ni: sina pona?", [][]string{{"ona li toki e ni", "<colon>", "sina pona", "<question>"}}},
		{"banner", "toki#", [][]string{{"toki", "<banner>"}}},
		{"la first", "la mi moku.", [][]string{{"la mi moku", "<period>"}}},
		{"trailing", "toki! sina pona", [][]string{{"toki", "<exclamation>"}, {"sina pona"}}},
		{"stray terminators", "mi. . sina.", [][]string{{"mi", "<period>"}, {"sina", "<period>"}}},
		{"empty", "  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tokenizer.Split(tt.input)
			if err != nil {
				t.Fatalf("split: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d sentences, got %d", len(tt.want), len(got))
			}
			for i, s := range got {
				if c := clauseStrings(s); !slices.Equal(c, tt.want[i]) {
					t.Fatalf("sentence %d: expected %q, got %q", i, tt.want[i], c)
				}
			}
		})
	}
}

func TestSplitImplicitAndRaw(t *testing.T) {
	got, err := tokenizer.Split("toki! jan Sonja li kama")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if got[0].Implicit || !got[1].Implicit {
		t.Fatalf("implicit flags = %v, %v", got[0].Implicit, got[1].Implicit)
	}
	if got[0].Raw != "toki!" || got[1].Raw != "jan Sonja li kama" {
		t.Fatalf("raw = %q / %q", got[0].Raw, got[1].Raw)
	}
	if tokens := got[1].Clauses[0].Tokens; tokens[1] != "Sonja" {
		t.Fatalf("proper name lost: %q", tokens)
	}
}

func TestSplitNormalizesUnicode(t *testing.T) {
	// "e" + combining acute composes to a single rune after NFC.
	got, err := tokenizer.Split("kafe\u0301 li pona.")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if tok := got[0].Clauses[0].Tokens[0]; tok != "kaf\u00e9" {
		t.Fatalf("expected NFC token kafé, got %q", tok)
	}
}
