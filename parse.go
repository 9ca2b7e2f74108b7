package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/sitelen/grammar"
	"github.com/ByLCY/sitelen/renderer/graphviz"
)

func (c *cli) parseCommand() *cobra.Command {
	var (
		asJSON            bool
		dotPath, dataJSON string
	)
	cmd := &cobra.Command{
		Use:   "parse [text|-]",
		Short: "输出句子的语法成分树",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			if text, err = bindData(text, dataJSON); err != nil {
				return err
			}
			runner, closeCache, err := c.newRunner(c.cfgOptions())
			if err != nil {
				return err
			}
			defer closeCache()

			sentences, stats, err := runner.Parse(cmd.Context(), text)
			if err != nil {
				return err
			}

			if dotPath != "" {
				dot := graphviz.ToDOT(sentences)
				data := []byte(dot)
				if !strings.HasSuffix(strings.ToLower(dotPath), ".dot") {
					if data, err = graphviz.RenderSVG(dot); err != nil {
						return err
					}
				}
				if err := writeFile(dotPath, data); err != nil {
					return err
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sentences)
			}

			for i, s := range sentences {
				fmt.Println(styleTitle.Render(fmt.Sprintf("%d. %s", i+1, s.Raw)))
				for _, p := range s.Parts {
					printPart(p, 1)
				}
			}
			fmt.Println()
			printKeyValue("sentences", styleNumber.Render(fmt.Sprint(stats.Sentences)))
			printKeyValue("parse", stats.ParseTime.String())
			if stats.Implicit > 0 {
				printWarning("%d 句缺少句末标点", stats.Implicit)
			}
			if len(stats.Unknown) > 0 {
				printWarning("未收录的词: %s", strings.Join(stats.Unknown, ", "))
			}
			if dotPath != "" {
				printFile(dotPath)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 输出")
	cmd.Flags().StringVar(&dotPath, "dot", "", "输出成分树图 (.svg 或 .dot)")
	cmd.Flags().StringVar(&dataJSON, "data", "", "插值用的 JSON 数据，@file 从文件读取")
	return cmd
}

func printPart(p grammar.Part, depth int) {
	indent := strings.Repeat("  ", depth)
	head := p.Role.String()
	if p.Separator != "" {
		head += " " + styleDim.Render("("+p.Separator+")")
	}
	if !p.IsNested() {
		fmt.Println(indent + head + " " + styleValue.Render(strings.Join(p.Tokens(), " ")))
		return
	}
	fmt.Println(indent + head)
	for _, sub := range p.Parts() {
		printPart(sub, depth+1)
	}
}
