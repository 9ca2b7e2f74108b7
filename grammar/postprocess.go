package grammar

import (
	"slices"
	"unicode"
	"unicode/utf8"
)

// prepositionContainers split a part into a head and a trailing prepositional phrase.
var prepositionContainers = map[string]bool{
	"lon": true, "tan": true, "kepeken": true, "tawa": true, "pi": true,
}

// Postprocess applies the preposition split and then the proper-name split to every
// part. The input slice and its parts are left untouched.
func Postprocess(parts []Part) []Part {
	out := make([]Part, len(parts))
	for i, p := range parts {
		out[i] = splitNames(splitPrepositions(p))
	}
	return out
}

func splittable(p Part) bool {
	return p.Role != Punctuation && !p.IsNested() && len(p.Tokens()) > 0
}

// splitPrepositions splits at the last container preposition that is not the final
// token. The head is split again, so chains such as "x pi y pi z" nest to the left.
func splitPrepositions(p Part) Part {
	if p.IsNested() {
		return NewNested(p.Role, p.Separator, mapParts(p.Parts(), splitPrepositions)...)
	}
	if !splittable(p) {
		return p
	}
	tokens := p.Tokens()
	at := -1
	for j, tok := range tokens[:len(tokens)-1] {
		if prepositionContainers[tok] {
			at = j
		}
	}
	if at < 0 {
		return p
	}

	var sub []Part
	if at > 0 {
		sub = append(sub, splitPrepositions(NewPart(p.Role, "", slices.Clone(tokens[:at])...)))
	}
	sub = append(sub, NewPart(p.Role, tokens[at], slices.Clone(tokens[at+1:])...))
	return NewNested(p.Role, p.Separator, sub...)
}

// splitNames wraps the last capitalized token as a cartouche of syllables, with the
// tokens before and after it as sibling parts.
func splitNames(p Part) Part {
	if p.IsNested() {
		return NewNested(p.Role, p.Separator, mapParts(p.Parts(), splitNames)...)
	}
	if !splittable(p) || p.Separator == CartoucheSeparator {
		return p
	}
	tokens := p.Tokens()
	at := -1
	for j, tok := range tokens {
		if isProperName(tok) {
			at = j
		}
	}
	if at < 0 {
		return p
	}

	var sub []Part
	if at > 0 {
		sub = append(sub, splitNames(NewPart(p.Role, "", slices.Clone(tokens[:at])...)))
	}
	sub = append(sub, NewPart(p.Role, CartoucheSeparator, Syllabify(tokens[at])...))
	if at < len(tokens)-1 {
		sub = append(sub, NewPart(p.Role, "", slices.Clone(tokens[at+1:])...))
	}
	return NewNested(p.Role, p.Separator, sub...)
}

func isProperName(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

func mapParts(parts []Part, fn func(Part) Part) []Part {
	out := make([]Part, len(parts))
	for i, p := range parts {
		out[i] = fn(p)
	}
	return out
}
