package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ByLCY/sitelen/grammar"
	"github.com/ByLCY/sitelen/layout"
	"github.com/ByLCY/sitelen/pipeline"
	"github.com/ByLCY/sitelen/renderer/text"
)

func (c *cli) layoutCommand() *cobra.Command {
	var (
		all      bool
		limit    int
		dataJSON string
		sel      selectFlags
	)
	cmd := &cobra.Command{
		Use:   "layout [text|-]",
		Short: "在终端预览排版结果与候选",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readText(cmd, args)
			if err != nil {
				return err
			}
			if input, err = bindData(input, dataJSON); err != nil {
				return err
			}
			opts, err := c.options(sel)
			if err != nil {
				return err
			}
			runner, closeCache, err := c.newRunner(opts)
			if err != nil {
				return err
			}
			defer closeCache()

			if all {
				candidates, err := runner.Candidates(cmd.Context(), input)
				if err != nil {
					return err
				}
				for i, cand := range candidates {
					fmt.Println(styleTitle.Render(fmt.Sprintf("第 %d 段", i+1)) + " " + styleDim.Render(compoundText(cand.Parts)))
					fmt.Println(candidateTable(cand.Options, opts.Target, -1, limit))
					fmt.Println()
				}
				return nil
			}

			result, err := runner.Run(cmd.Context(), input)
			if err != nil {
				return err
			}
			preview := text.NewRenderer()
			for i, comp := range result.Document.Compounds {
				fmt.Println(styleTitle.Render(fmt.Sprintf("第 %d 段", i+1)) + " " +
					styleDim.Render(fmt.Sprintf("%s · ratio %.3f · %d candidates",
						comp.Option.Size, comp.Option.Ratio, comp.Candidates)))
				fmt.Print(preview.Option(comp.Option))
				fmt.Println()
			}
			printStats(result.Stats)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "列出每段的全部候选")
	cmd.Flags().IntVar(&limit, "limit", 10, "--all 时每段最多显示的候选数，0 表示不限")
	cmd.Flags().StringVar(&dataJSON, "data", "", "插值用的 JSON 数据，@file 从文件读取")
	sel.register(cmd)
	return cmd
}

// candidateTable 渲染候选表，cursor 行高亮，-1 表示不高亮。
func candidateTable(opts []layout.Option, target float64, cursor, limit int) string {
	n := len(opts)
	if limit > 0 {
		n = min(n, limit)
	}
	rows := make([][]string, 0, n)
	for i, o := range opts[:n] {
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			o.Size.String(),
			fmt.Sprintf("%.3f", o.Ratio),
			fmt.Sprintf("%.2f", o.Surface),
			fmt.Sprintf("%.3f", math.Abs(o.Ratio-target)),
			fmt.Sprint(len(o.Members)),
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers("#", "size", "ratio", "surface", "Δtarget", "members").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // 表头
				return styleHeader
			case row == cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			default:
				return styleValue
			}
		})
	out := t.Render()
	if n < len(opts) {
		out += "\n" + styleDim.Render(fmt.Sprintf("  … 另有 %d 个候选", len(opts)-n))
	}
	return out
}

func compoundText(parts []grammar.Part) string {
	var words []string
	var walk func(p grammar.Part)
	walk = func(p grammar.Part) {
		if p.Separator != "" && p.Separator != grammar.CartoucheSeparator {
			words = append(words, p.Separator)
		}
		if p.IsNested() {
			for _, sub := range p.Parts() {
				walk(sub)
			}
			return
		}
		words = append(words, p.Tokens()...)
	}
	for _, p := range parts {
		walk(p)
	}
	return strings.Join(words, " ")
}

func printStats(s pipeline.Stats) {
	items := []string{
		fmt.Sprintf("%d sentences", s.Sentences),
		fmt.Sprintf("%d compounds", s.Compounds),
		fmt.Sprintf("%d options", s.Options),
		"layout " + s.LayoutTime.String(),
	}
	fmt.Println("  " + styleDim.Render(strings.Join(items, " · ")))
	if len(s.Unknown) > 0 {
		printWarning("未收录的词: %s", strings.Join(s.Unknown, ", "))
	}
}
