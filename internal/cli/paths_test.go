package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/rdftree/pkg/cache"
	"github.com/matzehuels/rdftree/pkg/config"
)

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if want := filepath.Join(xdg, "rdftree"); dir != want {
		t.Errorf("cacheDir = %q, want %q", dir, want)
	}
}

func TestCacheDirHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", home)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if want := filepath.Join(home, ".cache", "rdftree"); dir != want {
		t.Errorf("cacheDir = %q, want %q", dir, want)
	}
}

func TestNewCache(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	configured := filepath.Join(t.TempDir(), "renders")

	tests := []struct {
		name    string
		cfg     config.CacheConfig
		noCache bool
		wantDir string // "" means caching is off
	}{
		{"no-cache flag", config.CacheConfig{Dir: configured}, true, ""},
		{"disabled in config", config.CacheConfig{Disabled: true}, false, ""},
		{"configured dir", config.CacheConfig{Dir: configured}, false, configured},
		{"xdg default", config.CacheConfig{}, false, filepath.Join(xdg, "rdftree")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCache(context.Background(), tt.cfg, tt.noCache)
			if err != nil {
				t.Fatalf("newCache: %v", err)
			}
			if tt.wantDir == "" {
				if _, ok := c.(cache.NullCache); !ok {
					t.Errorf("cache = %T, want NullCache", c)
				}
				return
			}
			fc, ok := c.(*cache.FileCache)
			if !ok {
				t.Fatalf("cache = %T, want *FileCache", c)
			}
			if fc.Dir() != tt.wantDir {
				t.Errorf("Dir = %q, want %q", fc.Dir(), tt.wantDir)
			}
		})
	}
}
