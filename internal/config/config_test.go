package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/wayfind-dev/wayfind/pkg/pattern"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

const validConfig = `{
  "name": "demo",
  "server": {"port": 9000},
  "routes": [
    {"pattern": "/", "handler": "home", "title": "Home", "default": true},
    {"pattern": "/articles/(\\d+)", "handler": "article", "title": "Article"}
  ]
}`

func TestLoadValid(t *testing.T) {
	dir := writeConfig(t, validConfig)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "demo" {
		t.Errorf("Name = %q, want demo", cfg.Name)
	}
	if got := cfg.Addr(); got != "localhost:9000" {
		t.Errorf("Addr() = %q, want localhost:9000 (default host, configured port)", got)
	}
	if len(cfg.Routes) != 2 {
		t.Fatalf("Routes = %d, want 2", len(cfg.Routes))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load should fail without a config file")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIs  error
	}{
		{
			"malformed pattern",
			`{"routes": [{"pattern": "/broken/(", "handler": "h", "default": true}]}`,
			pattern.ErrMalformed,
		},
		{
			"no default",
			`{"routes": [{"pattern": "/", "handler": "h"}]}`,
			router.ErrNoDefaultRoute,
		},
		{
			"two defaults",
			`{"routes": [
				{"pattern": "/a", "handler": "h", "default": true},
				{"pattern": "/b", "handler": "h", "default": true}
			]}`,
			router.ErrNoDefaultRoute,
		},
		{
			"missing handler",
			`{"routes": [{"pattern": "/", "handler": "", "default": true}]}`,
			nil,
		},
		{
			"no routes",
			`{"routes": []}`,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeConfig(t, tt.content)
			_, err := Load(dir)
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("error = %v, want %v", err, tt.wantIs)
			}
		})
	}
}

func TestBuildTable(t *testing.T) {
	dir := writeConfig(t, validConfig)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	nop := func(ctx context.Context, params []string) error { return nil }

	tbl, err := cfg.BuildTable(map[string]router.Handler{
		"home":    nop,
		"article": nop,
	}, logger)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
	def := tbl.Default()
	if def == nil || def.Pattern().String() != "/" {
		t.Error("default route not carried into the table")
	}
	if def.Title() != "Home" {
		t.Errorf("default title = %q, want Home", def.Title())
	}
}

func TestBuildTableUnknownHandler(t *testing.T) {
	dir := writeConfig(t, validConfig)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err = cfg.BuildTable(map[string]router.Handler{}, logger)
	if !errors.Is(err, router.ErrUnknownHandler) {
		t.Errorf("error = %v, want router.ErrUnknownHandler", err)
	}
}
