// Package tokenizer splits raw Toki Pona text into sentences and clauses.
package tokenizer

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/text/unicode/norm"
)

var (
	textLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[\s]+`},
		{Name: "Terminal", Pattern: `[.!?#]+`},
		{Name: "Comma", Pattern: `,`},
		{Name: "Colon", Pattern: `:`},
		{Name: "Name", Pattern: `\p{Lu}[\p{L}\p{N}_-]*`},
		{Name: "Word", Pattern: `[\p{Ll}\p{Lo}\p{N}_][\p{L}\p{N}_'-]*`},
		{Name: "Other", Pattern: `[^\s]`},
	})

	textParser = participle.MustBuild[Text](
		participle.Lexer(textLexer),
		participle.Elide("Whitespace", "Other"),
	)
)

// Text is the root AST node: sentences possibly separated by stray terminators.
type Text struct {
	Sentences []*SentenceNode `parser:"( @@ | Terminal )*"`
}

// SentenceNode is a run of fragments closed by an optional terminator.
type SentenceNode struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Fragments  []*Fragment    `parser:"@@+"`
	Terminator string         `parser:"@Terminal?"`
}

// Fragment is a single word or an in-sentence separator.
type Fragment struct {
	Word string `parser:"  @(Word | Name)"`
	Mark string `parser:"| @(Comma | Colon)"`
}

// Parse parses text from an io.Reader.
func Parse(r io.Reader) (*Text, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取文本失败: %w", err)
	}
	return ParseString(string(data))
}

// ParseString parses text from a string after NFC normalization.
func ParseString(input string) (*Text, error) {
	return textParser.ParseString("", norm.NFC.String(input))
}

// ClauseKind tells content clauses from punctuation marks.
type ClauseKind int

const (
	ClauseContent ClauseKind = iota
	ClausePunctuation
)

// Clause is either a list of word tokens or a named punctuation mark
// (comma, colon, la, period, exclamation, question, banner).
type Clause struct {
	Kind   ClauseKind `json:"kind"`
	Tokens []string   `json:"tokens,omitempty"`
	Mark   string     `json:"mark,omitempty"`
}

// Text joins content tokens with single spaces.
func (c Clause) Text() string { return strings.Join(c.Tokens, " ") }

// Sentence is one split sentence. Implicit is set when no terminator closed it.
type Sentence struct {
	Raw        string   `json:"raw"`
	Clauses    []Clause `json:"clauses"`
	Terminator string   `json:"terminator,omitempty"`
	Implicit   bool     `json:"implicit,omitempty"`
}

// Split parses input and assembles its sentences into clauses.
func Split(input string) ([]Sentence, error) {
	ast, err := ParseString(input)
	if err != nil {
		return nil, fmt.Errorf("分词失败: %w", err)
	}
	out := make([]Sentence, 0, len(ast.Sentences))
	for _, node := range ast.Sentences {
		out = append(out, assemble(node))
	}
	return out, nil
}

var terminators = map[rune]string{
	'.': "period",
	'!': "exclamation",
	'?': "question",
	'#': "banner",
}

var separators = map[string]string{",": "comma", ":": "colon"}

// assemble turns fragments into clauses. A comma directly before la or li is
// dropped; la between two non-empty stretches closes a context clause.
func assemble(node *SentenceNode) Sentence {
	s := Sentence{Terminator: node.Terminator, Implicit: node.Terminator == ""}
	var raw []string
	var tokens []string

	flush := func() {
		if len(tokens) > 0 {
			s.Clauses = append(s.Clauses, Clause{Kind: ClauseContent, Tokens: tokens})
			tokens = nil
		}
	}
	mark := func(name string) {
		s.Clauses = append(s.Clauses, Clause{Kind: ClausePunctuation, Mark: name})
	}

	frags := node.Fragments
	for i, f := range frags {
		if f.Mark != "" {
			raw = append(raw, f.Mark)
			if next := nextWord(frags, i); next == "la" || next == "li" {
				continue
			}
			flush()
			mark(separators[f.Mark])
			continue
		}
		raw = append(raw, f.Word)
		if f.Word == "la" && len(tokens) > 0 && nextWord(frags, i) != "" {
			flush()
			mark("la")
			continue
		}
		tokens = append(tokens, f.Word)
	}
	flush()

	if term := node.Terminator; term != "" {
		runes := []rune(term)
		if name, ok := terminators[runes[len(runes)-1]]; ok {
			mark(name)
		}
	}
	s.Raw = strings.Join(raw, " ") + node.Terminator
	return s
}

// nextWord returns the word right after frags[i], or "" if a mark or the end follows.
func nextWord(frags []*Fragment, i int) string {
	if i+1 >= len(frags) {
		return ""
	}
	return frags[i+1].Word
}
