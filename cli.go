package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ByLCY/sitelen/binding"
	"github.com/ByLCY/sitelen/cache"
	"github.com/ByLCY/sitelen/config"
	"github.com/ByLCY/sitelen/layout"
	"github.com/ByLCY/sitelen/pipeline"
)

// cli 保存各子命令共享的状态。
type cli struct {
	logger *log.Logger
	cfg    config.Config

	configPath string
	verbose    bool
	noCache    bool
}

func newCLI(w io.Writer) *cli {
	return &cli{
		logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           log.InfoLevel,
		}),
		cfg: config.Default(),
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sitelen",
		Short:         "sitelen 将 Toki Pona 文本排版为 sitelen sitelen 字块",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.logger.SetLevel(log.DebugLevel)
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML 配置文件路径")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "输出调试日志")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "禁用缓存")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	return root
}

// selectFlags 是 render / layout / pick 共用的挑选参数，零值表示沿用配置。
type selectFlags struct {
	target float64
	mode   string
	seed   uint64
}

func (f *selectFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.target, "target", 0, "目标高宽比 (默认取配置)")
	cmd.Flags().StringVar(&f.mode, "mode", "", "挑选方式 closest|random")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random 模式的种子")
}

func (c *cli) cfgOptions() pipeline.Options {
	return pipeline.FromConfig(c.cfg)
}

// options 把命令行参数叠加到配置上。
func (c *cli) options(f selectFlags) (pipeline.Options, error) {
	opts := c.cfgOptions()
	if f.target < 0 {
		return opts, fmt.Errorf("--target 必须为正数")
	}
	if f.target > 0 {
		opts.Target = f.target
	}
	if f.mode != "" {
		m, err := layout.ParseMode(f.mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}
	if f.seed != 0 {
		opts.Seed = f.seed
	}
	return opts, nil
}

// newRunner 打开缓存并创建流水线。返回的 close 负责释放缓存。
func (c *cli) newRunner(opts pipeline.Options) (*pipeline.Runner, func(), error) {
	store, err := c.openCache()
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			c.logger.Warn("close cache", "err", err)
		}
	}
	return pipeline.NewRunner(store, c.logger, opts), closeFn, nil
}

// openCache 按配置打开缓存；打不开时降级为不缓存。
func (c *cli) openCache() (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	store, err := cache.Open(c.cfg.CacheOptions())
	if err != nil {
		c.logger.Warn("cache disabled", "backend", c.cfg.Cache.Backend, "err", err)
		return cache.NewNullCache(), nil
	}
	return store, nil
}

// readText 取得待排版文本：参数拼接，"-" 或无参数时读标准输入。
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("读取标准输入失败: %w", err)
	}
	return string(data), nil
}

// bindData 解析 --data (JSON 字符串，或 @file) 并插值到文本中。
func bindData(text, dataFlag string) (string, error) {
	if dataFlag == "" {
		return text, nil
	}
	raw := []byte(dataFlag)
	if path, ok := strings.CutPrefix(dataFlag, "@"); ok {
		var err error
		if raw, err = os.ReadFile(path); err != nil {
			return "", fmt.Errorf("读取 data 文件失败: %w", err)
		}
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return binding.Interpolate(text, data), nil
}
