// Package graphviz draws the grammatical part tree of parsed sentences.
//
// [ToDOT] produces Graphviz DOT text; [RenderSVG] turns it into SVG in-process
// using github.com/goccy/go-graphviz.
package graphviz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/ByLCY/sitelen/grammar"
)

var roleColors = map[grammar.Role]string{
	grammar.Subject:      "white",
	grammar.VerbPhrase:   "lightblue",
	grammar.DirectObject: "palegreen",
	grammar.PrepPhrase:   "lightgoldenrod",
	grammar.Interjection: "pink",
	grammar.Punctuation:  "lightgrey",
}

// ToDOT converts sentences to a top-down DOT tree: one root per sentence, one node
// per part, leaf parts labelled with their tokens.
func ToDOT(sentences []grammar.Sentence) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("\n")

	w := &dotWriter{buf: &buf}
	for i, s := range sentences {
		root := fmt.Sprintf("s%d", i)
		label := s.Raw
		if s.Implicit {
			label += " …"
		}
		fmt.Fprintf(&buf, "  %q [label=%q, shape=plaintext, style=\"\"];\n", root, label)
		for _, p := range s.Parts {
			w.part(root, p)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf  *bytes.Buffer
	next int
}

func (w *dotWriter) part(parent string, p grammar.Part) {
	id := fmt.Sprintf("p%d", w.next)
	w.next++

	label := p.Role.String()
	if p.Separator != "" {
		label += " / " + p.Separator
	}
	if !p.IsNested() {
		label += "\n" + strings.Join(p.Tokens(), " ")
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if c, ok := roleColors[p.Role]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c))
	}
	if p.Separator == grammar.CartoucheSeparator {
		attrs = append(attrs, "style=\"rounded,filled,bold\"")
	}
	fmt.Fprintf(w.buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	fmt.Fprintf(w.buf, "  %q -> %q;\n", parent, id)

	for _, sub := range p.Parts() {
		w.part(id, sub)
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
