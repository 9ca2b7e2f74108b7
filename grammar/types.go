// Package grammar turns Toki Pona clauses into trees of grammatical parts.
package grammar

import (
	"encoding/json"
	"fmt"
)

// Role is the grammatical function of a part.
type Role int

const (
	Subject Role = iota
	VerbPhrase
	DirectObject
	PrepPhrase
	Interjection
	Punctuation
	ObjectMarker
)

var roleNames = map[Role]string{
	Subject:      "subject",
	VerbPhrase:   "verbPhrase",
	DirectObject: "directObject",
	PrepPhrase:   "prepPhrase",
	Interjection: "interjection",
	Punctuation:  "punctuation",
	ObjectMarker: "objectMarker",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	for role, name := range roleNames {
		if name == string(text) {
			*r = role
			return nil
		}
	}
	return fmt.Errorf("unknown role %q", text)
}

// CartoucheSeparator marks a part whose tokens are the syllables of a proper name.
const CartoucheSeparator = "cartouche"

// Content is either Flat tokens or Nested parts.
type Content interface {
	isContent()
}

// Flat holds the tokens of a leaf part.
type Flat struct {
	Tokens []string
}

// Nested holds sub-parts produced by the postprocessor.
type Nested struct {
	Parts []Part
}

func (Flat) isContent()   {}
func (Nested) isContent() {}

// Part is one node of a sentence tree.
type Part struct {
	Role      Role
	Separator string
	Content   Content
}

// NewPart builds a flat part.
func NewPart(role Role, separator string, tokens ...string) Part {
	return Part{Role: role, Separator: separator, Content: Flat{Tokens: tokens}}
}

// NewNested builds a wrapper part.
func NewNested(role Role, separator string, parts ...Part) Part {
	return Part{Role: role, Separator: separator, Content: Nested{Parts: parts}}
}

// IsNested reports whether the part holds sub-parts.
func (p Part) IsNested() bool {
	_, ok := p.Content.(Nested)
	return ok
}

// Tokens returns the flat tokens, or nil for nested parts.
func (p Part) Tokens() []string {
	if f, ok := p.Content.(Flat); ok {
		return f.Tokens
	}
	return nil
}

// Parts returns the sub-parts, or nil for flat parts.
func (p Part) Parts() []Part {
	if n, ok := p.Content.(Nested); ok {
		return n.Parts
	}
	return nil
}

// Empty reports whether a flat part has no tokens.
func (p Part) Empty() bool {
	if p.IsNested() {
		return len(p.Parts()) == 0
	}
	return len(p.Tokens()) == 0
}

type partJSON struct {
	Role      Role     `json:"role"`
	Separator string   `json:"separator,omitempty"`
	Tokens    []string `json:"tokens,omitempty"`
	Parts     []Part   `json:"parts,omitempty"`
}

// MarshalJSON writes either "tokens" or "parts".
func (p Part) MarshalJSON() ([]byte, error) {
	wire := partJSON{Role: p.Role, Separator: p.Separator}
	switch c := p.Content.(type) {
	case Flat:
		wire.Tokens = c.Tokens
	case Nested:
		wire.Parts = c.Parts
	}
	return json.Marshal(wire)
}

// UnmarshalJSON restores the content variant from the presence of "parts".
func (p *Part) UnmarshalJSON(data []byte) error {
	var wire partJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	p.Role = wire.Role
	p.Separator = wire.Separator
	if wire.Parts != nil {
		p.Content = Nested{Parts: wire.Parts}
	} else {
		p.Content = Flat{Tokens: wire.Tokens}
	}
	return nil
}

// Sentence is the structured form of one sentence.
type Sentence struct {
	Raw      string `json:"raw"`
	Parts    []Part `json:"parts"`
	Implicit bool   `json:"implicit,omitempty"`
}
