package grammar

// Marker sets used by the structurer. Comparison is case-sensitive so that
// capitalized names never act as markers.
var (
	objectMarkers = map[string]Role{"li": VerbPhrase, "e": DirectObject}
	prepositions  = map[string]bool{"tawa": true, "lon": true, "kepeken": true}
)

func isMarker(tok string) bool {
	_, ok := objectMarkers[tok]
	return ok
}

// partBuilder accumulates the part currently being filled.
type partBuilder struct {
	role      Role
	separator string
	tokens    []string
}

func (b *partBuilder) build() Part {
	return NewPart(b.role, b.separator, b.tokens...)
}

// Structure splits one clause into grammatical parts in a single left-to-right pass.
//
// li/e open a verb phrase or direct object, tawa/lon/kepeken open a prepositional
// phrase unless next to an object marker, o tags the current part as an address and
// a after a separated, non-empty part becomes an interjection. Empty parts are dropped.
func Structure(tokens []string) []Part {
	var parts []Part
	cur := &partBuilder{role: Subject}
	last := len(tokens) - 1

	flush := func(next partBuilder) {
		parts = append(parts, cur.build())
		cur = &next
	}

	for i, tok := range tokens {
		if role, ok := objectMarkers[tok]; ok && i < last {
			flush(partBuilder{role: role, separator: tok})
			continue
		}
		if prepositions[tok] && i < last &&
			(i == 0 || !isMarker(tokens[i-1])) && !isMarker(tokens[i+1]) {
			flush(partBuilder{role: PrepPhrase, separator: tok})
			continue
		}
		if tok == "o" && len(cur.tokens) > 0 {
			cur.separator = "o"
			continue
		}
		if tok == "a" && len(cur.tokens) > 0 && cur.separator != "" {
			role := cur.role
			flush(partBuilder{role: Interjection, tokens: []string{"a"}})
			flush(partBuilder{role: role})
			continue
		}
		cur.tokens = append(cur.tokens, tok)
	}
	parts = append(parts, cur.build())

	kept := parts[:0]
	for _, p := range parts {
		if !p.Empty() {
			kept = append(kept, p)
		}
	}
	return kept
}
