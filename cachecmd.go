package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/sitelen/cache"
)

func (c *cli) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "管理解析缓存",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *cli) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "清空文件缓存",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Cache.Backend != cache.BackendFile {
				printInfo("当前缓存后端为 %s，无需清理", c.cfg.Cache.Backend)
				return nil
			}
			fc, err := cache.NewFileCache(c.cfg.Cache.Dir)
			if err != nil {
				return fmt.Errorf("打开缓存目录失败: %w", err)
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}
			printSuccess("已清除 %d 条缓存", count)
			printDetail("目录: %s", fc.Dir())
			return nil
		},
	}
}

func (c *cli) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "输出缓存位置",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c.cfg.Cache.Backend {
			case cache.BackendFile:
				fmt.Fprintln(cmd.OutOrStdout(), c.cfg.Cache.Dir)
			case cache.BackendRedis:
				fmt.Fprintln(cmd.OutOrStdout(), c.cfg.Cache.RedisURL)
			default:
				printKeyValue("backend", c.cfg.Cache.Backend)
			}
			return nil
		},
	}
}
