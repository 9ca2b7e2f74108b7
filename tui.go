package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ByLCY/sitelen/layout"
	"github.com/ByLCY/sitelen/pipeline"
	"github.com/ByLCY/sitelen/renderer/text"
)

// pickModel 逐段浏览候选排法，确认后得到选中的文档。
type pickModel struct {
	candidates []pipeline.Candidate
	target     float64
	preview    *text.Renderer

	compound int
	cursors  []int
	height   int

	confirmed bool
}

func newPickModel(candidates []pipeline.Candidate, target float64) pickModel {
	return pickModel{
		candidates: candidates,
		target:     target,
		preview:    text.NewRenderer(),
		cursors:    make([]int, len(candidates)),
		height:     8,
	}
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		opts := m.candidates[m.compound].Options
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursors[m.compound] > 0 {
				m.cursors[m.compound]--
			}
		case "down", "j":
			if m.cursors[m.compound] < len(opts)-1 {
				m.cursors[m.compound]++
			}
		case "left", "h", "shift+tab":
			if m.compound > 0 {
				m.compound--
			}
		case "right", "l", "tab":
			if m.compound < len(m.candidates)-1 {
				m.compound++
			}
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height/3, 5)
	}
	return m, nil
}

func (m pickModel) View() string {
	var b strings.Builder
	cand := m.candidates[m.compound]
	cursor := m.cursors[m.compound]

	b.WriteString(styleTitle.Render(fmt.Sprintf("第 %d/%d 段", m.compound+1, len(m.candidates))))
	b.WriteString(" " + styleDim.Render(compoundText(cand.Parts)))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ 候选  ←/→ 切换段  ⏎ 确认  q 退出"))
	b.WriteString("\n\n")

	offset := 0
	if cursor >= m.height {
		offset = cursor - m.height + 1
	}
	window := cand.Options[offset:min(len(cand.Options), offset+m.height)]
	b.WriteString(candidateTable(window, m.target, cursor-offset, 0))
	b.WriteString("\n\n")
	b.WriteString(m.preview.Option(cand.Options[cursor]))
	b.WriteString(styleDim.Render(fmt.Sprintf("  [%d/%d]", cursor+1, len(cand.Options))))
	return b.String()
}

// document 按当前光标组装文档。
func (m pickModel) document() *layout.Document {
	doc := &layout.Document{Compounds: make([]layout.Compound, len(m.candidates))}
	for i, c := range m.candidates {
		doc.Compounds[i] = layout.Compound{
			Sentence:   c.Sentence,
			Option:     c.Options[m.cursors[i]],
			Candidates: len(c.Options),
		}
	}
	return doc
}
