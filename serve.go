package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ByLCY/sitelen/server"
)

func (c *cli) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			ropts, err := renderOptions(c.cfg, "", "")
			if err != nil {
				return err
			}
			runner, closeCache, err := c.newRunner(c.cfgOptions())
			if err != nil {
				return err
			}
			defer closeCache()

			httpServer := &http.Server{
				Addr:         addr,
				Handler:      server.NewServer(runner, server.Options{Render: ropts, Timeout: c.cfg.Server.Timeout.Duration}, c.logger),
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 120 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx := cmd.Context()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					c.logger.Warn("shutdown", "err", err)
				}
			}()

			c.logger.Info("starting sitelen", "addr", addr, "cache", c.cfg.Cache.Backend)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			c.logger.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "监听地址 (默认取配置)")
	return cmd
}
