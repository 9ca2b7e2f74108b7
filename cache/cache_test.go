package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("null cache 不应命中")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	data := []byte("value")
	if err := c.Set(ctx, "a", data, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	data[0] = 'X'
	got, ok, err := c.Get(ctx, "a")
	if err != nil || !ok || string(got) != "value" {
		t.Fatalf("get = %q, %v, %v", got, ok, err)
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatalf("过期条目不应命中")
	}
	if c.Len() != 0 {
		t.Fatalf("过期条目应被删除")
	}

	_ = c.Set(ctx, "b", []byte("1"), 0)
	_ = c.Delete(ctx, "b")
	if _, ok, _ := c.Get(ctx, "b"); ok {
		t.Fatalf("删除后不应命中")
	}
}

func TestFileCache(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	key := Key("clause", []string{"jan", "pona"})
	if err := c.Set(ctx, key, []byte(`[{"role":"subject"}]`), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok || string(got) != `[{"role":"subject"}]` {
		t.Fatalf("get = %q, %v, %v", got, ok, err)
	}

	if err := c.Set(ctx, "expired", []byte("x"), -time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "expired"); !ok {
		t.Fatalf("ttl<=0 表示不过期")
	}

	// 损坏的文件视为未命中并被删除。
	path := c.path(key)
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok, err := c.Get(ctx, key); ok || err != nil {
		t.Fatalf("损坏条目应为未命中, ok=%v err=%v", ok, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("损坏条目应被删除")
	}

	n, err := c.Clear()
	if err != nil || n != 1 {
		t.Fatalf("clear = %d, %v", n, err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Fatalf("clear 后目录应为空, 剩余 %d 项", len(entries))
	}
}

func TestFileCacheShardsByHash(t *testing.T) {
	c := &FileCache{dir: "/cache"}
	p := c.path("k")
	h := Hash([]byte("k"))
	if p != filepath.Join("/cache", h[:2], h[2:]+".json") {
		t.Fatalf("path = %s", p)
	}
}

func TestKeyAndHash(t *testing.T) {
	a := Key("clause", []string{"jan", "pona"})
	b := Key("clause", []string{"jan", "pona"})
	c := Key("clause", []string{"jan pona"})
	if a != b || a == c {
		t.Fatalf("key 不稳定或冲突: %s %s %s", a, b, c)
	}
	if !strings.HasPrefix(a, "clause:") || len(a) != len("clause:")+64 {
		t.Fatalf("key = %s", a)
	}
}

func TestOpen(t *testing.T) {
	for _, backend := range []string{"", BackendNone, BackendMemory} {
		c, err := Open(Config{Backend: backend})
		if err != nil || c == nil {
			t.Fatalf("Open(%q) = %v, %v", backend, c, err)
		}
	}
	c, err := Open(Config{Backend: BackendFile, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	if _, ok := c.(*FileCache); !ok {
		t.Fatalf("expected *FileCache, got %T", c)
	}
	r, err := Open(Config{Backend: BackendRedis, RedisURL: "redis://localhost:6379/3"})
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	if rc := r.(*RedisCache); rc.key("x") != DefaultRedisPrefix+"x" {
		t.Fatalf("redis key = %s", rc.key("x"))
	}
	_ = r.Close()

	if _, err := Open(Config{Backend: "mongo"}); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
	if _, err := Open(Config{Backend: BackendRedis, RedisURL: "://bad"}); err == nil {
		t.Fatalf("invalid redis url should fail")
	}
}
