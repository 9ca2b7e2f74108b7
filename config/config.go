// Package config loads the TOML configuration shared by the CLI and the server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ByLCY/sitelen/cache"
	"github.com/ByLCY/sitelen/layout"
)

// ErrInvalid 表示配置值不合法。
var ErrInvalid = errors.New("配置无效")

// Config 是完整配置。
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig 控制搜索与选择。
type LayoutConfig struct {
	TargetRatio   float64 `toml:"target_ratio"`
	MinRatio      float64 `toml:"min_ratio"`
	MaxRatio      float64 `toml:"max_ratio"`
	Mode          string  `toml:"mode"`
	Seed          uint64  `toml:"seed"`
	PhrasePrune   float64 `toml:"phrase_prune"`
	CompoundPrune float64 `toml:"compound_prune"`
	StrictPrune   bool    `toml:"strict_prune"`
	CornerRule    string  `toml:"corner_rule"`
	Workers       int     `toml:"workers"`
	MaxUnits      int     `toml:"max_units"`
}

// RenderConfig 控制输出。
type RenderConfig struct {
	Format string        `toml:"format"`
	Unit   layout.Length `toml:"unit"`
	Gap    float64       `toml:"gap"`
}

// CacheConfig 选择缓存后端。
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	TTL      Duration `toml:"ttl"`
	RedisURL string   `toml:"redis_url"`
}

// ServerConfig 控制 HTTP 服务。
type ServerConfig struct {
	Addr string `toml:"addr"`
	// Timeout 限制单个请求的排版时间，0 表示不限。
	Timeout Duration `toml:"timeout"`
}

// Duration 以 "24h" 这样的字符串读写。
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default 返回内置默认配置。
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			TargetRatio:   0.8,
			MinRatio:      0,
			MaxRatio:      100,
			Mode:          layout.Closest.String(),
			Seed:          layout.DefaultSeed,
			PhrasePrune:   layout.DefaultPhrasePrune,
			CompoundPrune: layout.DefaultCompoundPrune,
			CornerRule:    layout.CornersBoth.String(),
			MaxUnits:      layout.DefaultMaxUnits,
		},
		Render: RenderConfig{
			Format: "svg",
			Unit:   layout.Length{Value: 10, Unit: layout.UnitMM},
			Gap:    0.5,
		},
		Cache: CacheConfig{
			Backend:  cache.BackendFile,
			Dir:      DefaultCacheDir(),
			TTL:      Duration{24 * time.Hour},
			RedisURL: "redis://localhost:6379/0",
		},
		Server: ServerConfig{Addr: ":8080", Timeout: Duration{30 * time.Second}},
	}
}

// DefaultCacheDir 返回用户缓存目录下的 sitelen 子目录。
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "sitelen")
}

// Load 读取 path 并叠加到默认配置上。path 为空时只返回默认配置。
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置失败: %w", err)
	}
	return Parse(string(data))
}

// Parse 解析 TOML 文本。未知的键视为错误。
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("解析配置失败: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%w: 未知的键 %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = DefaultCacheDir()
	}
	return cfg, cfg.Validate()
}

// Validate 检查取值范围。
func (c Config) Validate() error {
	l := c.Layout
	if l.TargetRatio <= 0 {
		return fmt.Errorf("%w: target_ratio 必须为正数", ErrInvalid)
	}
	if l.MinRatio < 0 || (l.MaxRatio > 0 && l.MaxRatio <= l.MinRatio) {
		return fmt.Errorf("%w: 比例范围 [%g, %g) 为空", ErrInvalid, l.MinRatio, l.MaxRatio)
	}
	if _, err := layout.ParseMode(l.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if l.PhrasePrune <= 1 || l.CompoundPrune <= 1 {
		return fmt.Errorf("%w: 剪枝系数必须大于 1", ErrInvalid)
	}
	if _, err := layout.ParseCornerRule(l.CornerRule); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if l.Workers < 0 {
		return fmt.Errorf("%w: workers 不能为负数", ErrInvalid)
	}
	if l.MaxUnits < 0 {
		return fmt.Errorf("%w: max_units 不能为负数", ErrInvalid)
	}

	switch c.Render.Format {
	case "svg", "pdf":
	default:
		return fmt.Errorf("%w: 不支持的输出格式 %q", ErrInvalid, c.Render.Format)
	}
	if c.Render.Unit.Value <= 0 {
		return fmt.Errorf("%w: render.unit 必须为正数", ErrInvalid)
	}
	if c.Render.Gap < 0 {
		return fmt.Errorf("%w: render.gap 不能为负数", ErrInvalid)
	}

	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendMemory, cache.BackendFile, cache.BackendRedis:
	default:
		return fmt.Errorf("%w: 未知的缓存后端 %q", ErrInvalid, c.Cache.Backend)
	}
	if c.Server.Timeout.Duration < 0 {
		return fmt.Errorf("%w: server.timeout 不能为负数", ErrInvalid)
	}
	return nil
}

// LayoutOptions 转换为排版参数。
func (c Config) LayoutOptions() layout.Options {
	rule, _ := layout.ParseCornerRule(c.Layout.CornerRule)
	return layout.Options{
		PhrasePrune:   c.Layout.PhrasePrune,
		CompoundPrune: c.Layout.CompoundPrune,
		StrictPrune:   c.Layout.StrictPrune,
		Corners:       rule,
		MaxUnits:      c.Layout.MaxUnits,
	}
}

// CacheOptions 转换为缓存参数。
func (c Config) CacheOptions() cache.Config {
	return cache.Config{
		Backend:  c.Cache.Backend,
		Dir:      c.Cache.Dir,
		RedisURL: c.Cache.RedisURL,
	}
}
