package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	canvasrenderer "github.com/ByLCY/sitelen/renderer/canvas"
)

func (c *cli) pickCommand() *cobra.Command {
	var (
		output, format, dataJSON string
		sel                      selectFlags
	)
	cmd := &cobra.Command{
		Use:   "pick text",
		Short: "交互式挑选每段的排法并输出",
		// 标准输入留给交互界面。
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			if text, err = bindData(text, dataJSON); err != nil {
				return err
			}
			opts, err := c.options(sel)
			if err != nil {
				return err
			}
			ropts, err := renderOptions(c.cfg, format, output)
			if err != nil {
				return err
			}
			runner, closeCache, err := c.newRunner(opts)
			if err != nil {
				return err
			}
			defer closeCache()

			candidates, err := runner.Candidates(cmd.Context(), text)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(newPickModel(candidates, opts.Target), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("交互界面出错: %w", err)
			}
			m := final.(pickModel)
			if !m.confirmed {
				printInfo("已取消")
				return nil
			}

			out, err := canvasrenderer.NewRenderer(ropts).Render(m.document())
			if err != nil {
				return fmt.Errorf("渲染 %s 失败: %w", ropts.Format, err)
			}
			if err := writeFile(output, out); err != nil {
				return err
			}
			printSuccess("已生成 %d 段", len(candidates))
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "output/sitelen.svg", "输出路径")
	cmd.Flags().StringVarP(&format, "format", "f", "", "输出格式 svg|pdf (默认按扩展名或配置)")
	cmd.Flags().StringVar(&dataJSON, "data", "", "插值用的 JSON 数据，@file 从文件读取")
	sel.register(cmd)
	return cmd
}
