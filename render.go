package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/sitelen/config"
	"github.com/ByLCY/sitelen/layout"
	canvasrenderer "github.com/ByLCY/sitelen/renderer/canvas"
)

func (c *cli) renderCommand() *cobra.Command {
	var (
		output, format, dataJSON, debugPath string
		sel                                 selectFlags
	)
	cmd := &cobra.Command{
		Use:   "render [text|-]",
		Short: "排版并输出 SVG 或 PDF",
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

			result, err := runner.Run(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("布局计算失败: %w", err)
			}
			if debugPath != "" {
				if err := writeDebug(result, debugPath); err != nil {
					return err
				}
			}

			out, err := canvasrenderer.NewRenderer(ropts).Render(result.Document)
			if err != nil {
				return fmt.Errorf("渲染 %s 失败: %w", ropts.Format, err)
			}
			if output == "-" {
				_, err := cmd.OutOrStdout().Write(out)
				return err
			}
			if err := writeFile(output, out); err != nil {
				return err
			}

			printSuccess("已生成 %s：%d 句，%d 段", strings.ToUpper(string(ropts.Format)), result.Stats.Sentences, result.Stats.Compounds)
			printFile(output)
			if debugPath != "" {
				printFile(debugPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "output/sitelen.svg", "输出路径，- 表示标准输出")
	cmd.Flags().StringVarP(&format, "format", "f", "", "输出格式 svg|pdf (默认按扩展名或配置)")
	cmd.Flags().StringVar(&dataJSON, "data", "", "插值用的 JSON 数据，@file 从文件读取")
	cmd.Flags().StringVar(&debugPath, "debug", "", "布局调试 JSON 输出路径")
	sel.register(cmd)
	return cmd
}

// renderOptions 依次取 --format、输出扩展名、配置文件决定格式。
func renderOptions(cfg config.Config, format, output string) (canvasrenderer.Options, error) {
	opts := canvasrenderer.DefaultOptions()
	opts.Unit = cfg.Render.Unit
	opts.Gap = cfg.Render.Gap

	if format == "" {
		switch ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), "."); ext {
		case "svg", "pdf":
			format = ext
		default:
			format = cfg.Render.Format
		}
	}
	f, err := canvasrenderer.ParseFormat(format)
	if err != nil {
		return opts, err
	}
	opts.Format = f
	return opts, nil
}

func writeDebug(v any, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(v, path); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}
	return nil
}
