package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ByLCY/sitelen/layout"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("默认配置应当合法: %v", err)
	}
	opts := cfg.LayoutOptions()
	if opts.PhrasePrune != 2 || opts.CompoundPrune != 3 || opts.Corners != layout.CornersBoth || opts.MaxUnits != layout.DefaultMaxUnits {
		t.Fatalf("默认排版参数不对: %+v", opts)
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Layout.TargetRatio != 0.8 {
		t.Fatalf("target ratio = %g", cfg.Layout.TargetRatio)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitelen.toml")
	data := `
[layout]
target_ratio = 1.5
mode = "random"
seed = 7
corner_rule = "down"
max_units = 8

[render]
format = "pdf"
unit = "4pt"

[cache]
backend = "memory"
ttl = "90m"

[server]
timeout = "5s"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Layout.TargetRatio != 1.5 || cfg.Layout.Mode != "random" || cfg.Layout.Seed != 7 {
		t.Fatalf("layout 覆盖失败: %+v", cfg.Layout)
	}
	if cfg.Layout.PhrasePrune != 2 {
		t.Fatalf("未写出的键应保留默认值, phrase_prune = %g", cfg.Layout.PhrasePrune)
	}
	if cfg.Render.Unit.Unit != layout.UnitPT || cfg.Render.Unit.Value != 4 {
		t.Fatalf("unit = %+v", cfg.Render.Unit)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Fatalf("ttl = %v", cfg.Cache.TTL)
	}
	if cfg.LayoutOptions().Corners != layout.CornersDownOnly {
		t.Fatalf("corner rule 未生效")
	}
	if cfg.LayoutOptions().MaxUnits != 8 || cfg.Server.Timeout.Duration != 5*time.Second {
		t.Fatalf("max_units / timeout 未生效: %d %v", cfg.LayoutOptions().MaxUnits, cfg.Server.Timeout)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("addr 应保留默认值, 得到 %q", cfg.Server.Addr)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse("[layout]\ntarget = 1.0\n")
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("未知键应返回 ErrInvalid, 得到 %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"target", func(c *Config) { c.Layout.TargetRatio = 0 }},
		{"range", func(c *Config) { c.Layout.MinRatio, c.Layout.MaxRatio = 2, 1 }},
		{"mode", func(c *Config) { c.Layout.Mode = "best" }},
		{"prune", func(c *Config) { c.Layout.PhrasePrune = 1 }},
		{"corner", func(c *Config) { c.Layout.CornerRule = "right" }},
		{"workers", func(c *Config) { c.Layout.Workers = -1 }},
		{"max units", func(c *Config) { c.Layout.MaxUnits = -1 }},
		{"timeout", func(c *Config) { c.Server.Timeout.Duration = -time.Second }},
		{"format", func(c *Config) { c.Render.Format = "png" }},
		{"gap", func(c *Config) { c.Render.Gap = -1 }},
		{"backend", func(c *Config) { c.Cache.Backend = "mongo" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("期望 ErrInvalid, 得到 %v", err)
			}
		})
	}
}

func TestOpenRangeWithoutUpperBound(t *testing.T) {
	cfg := Default()
	cfg.Layout.MaxRatio = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("max_ratio = 0 表示没有上限: %v", err)
	}
}
