package grammar

import (
	"slices"
	"strings"
)

// lexiconWords is the pu vocabulary plus a few common additions.
const lexiconWords = `a akesi ala alasa ali ale anpa ante anu awen e en esun ijo ike ilo insa jaki
jan jelo jo kala kalama kama kasi ken kepeken kili kin kiwen kijetesantakalu ko kon kule
kulupu kute la lape laso lawa len lete li lili linja lipu loje lon luka lukin lupa ma mama
mani meli mi mije moku moli monsi mu mun musi mute namako nanpa nasa nasin nena ni nimi
noka o oko olin ona open pakala pali palisa pan pana pi pilin pimeja pini pipi poka poki
pona pu sama seli selo seme sewi sijelo sike sin sina sinpin sitelen sona soweli suli suno
supa suwi tan taso tawa telo tenpo toki tomo tu unpa uta utala walo wan waso wawa weka wile`

// Lexicon is a closed word list used to report, never reject, unknown words.
type Lexicon struct {
	words map[string]bool
}

// DefaultLexicon returns the built-in vocabulary.
func DefaultLexicon() *Lexicon {
	return NewLexicon(strings.Fields(lexiconWords))
}

// NewLexicon builds a lexicon from words.
func NewLexicon(words []string) *Lexicon {
	l := &Lexicon{words: make(map[string]bool, len(words))}
	for _, w := range words {
		l.words[w] = true
	}
	return l
}

// Known reports whether word is in the vocabulary.
func (l *Lexicon) Known(word string) bool {
	return l.words[word]
}

// Unknown returns the distinct words of parts missing from the vocabulary, in order of
// first appearance. Punctuation and cartouche syllables are skipped.
func (l *Lexicon) Unknown(parts []Part) []string {
	var out []string
	var walk func([]Part)
	walk = func(ps []Part) {
		for _, p := range ps {
			if p.IsNested() {
				walk(p.Parts())
				continue
			}
			if p.Role == Punctuation || p.Separator == CartoucheSeparator {
				continue
			}
			for _, tok := range p.Tokens() {
				if !l.Known(tok) && !isProperName(tok) && !slices.Contains(out, tok) {
					out = append(out, tok)
				}
			}
		}
	}
	walk(parts)
	return out
}
