package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/matzehuels/sparsestress/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", xdg)

		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join(xdg, "sparsestress"); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", "")
		t.Setenv("HOME", home)

		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join(home, ".cache", "sparsestress"); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestResolveCacheSpec(t *testing.T) {
	tests := []struct {
		name string
		flag string
		env  string
		want string
	}{
		{"unset", "", "", ""},
		{"env", "", "redis://localhost:6379/0", "redis://localhost:6379/0"},
		{"flag wins", "none", "redis://localhost:6379/0", "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envCache, tt.env)
			c := New(io.Discard, LogInfo)
			c.cacheSpec = tt.flag
			if got := c.resolveCacheSpec(); got != tt.want {
				t.Errorf("resolveCacheSpec() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCache(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	t.Setenv(envCache, "")
	c := New(io.Discard, LogInfo)
	ctx := context.Background()

	store, err := c.newCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	fc, ok := store.(*cache.FileCache)
	if !ok {
		t.Fatalf("default cache is %T, want *cache.FileCache", store)
	}
	if want := filepath.Join(xdg, "sparsestress"); fc.Dir() != want {
		t.Errorf("cache dir = %q, want %q", fc.Dir(), want)
	}

	off, err := c.newCache(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := off.(*cache.NullCache); !ok {
		t.Errorf("--no-cache gives %T, want *cache.NullCache", off)
	}

	c.cacheSpec = "none"
	none, err := c.newCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := none.(*cache.NullCache); !ok {
		t.Errorf("--cache none gives %T, want *cache.NullCache", none)
	}
}
