package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Static.RootDir != "./public" {
		t.Errorf("Static.RootDir = %q, want ./public", cfg.Static.RootDir)
	}
	if cfg.Static.AssetsDir != "./public/assets" {
		t.Errorf("Static.AssetsDir = %q, want ./public/assets", cfg.Static.AssetsDir)
	}
	if cfg.Static.DirectoryListing {
		t.Error("directory listing should default to false")
	}
	if cfg.Static.CorsAllowOrigins != "" {
		t.Errorf("CorsAllowOrigins = %q, want empty", cfg.Static.CorsAllowOrigins)
	}
	if cfg.AccessLog.Path != "" {
		t.Errorf("AccessLog.Path = %q, want empty", cfg.AccessLog.Path)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
server:
  port: 9090
static:
  root_dir: /srv/www
  assets_dir: /srv/www/static
  cors_allow_origins: "a.com, b.com"
  directory_listing: true
access_log:
  path: /var/lib/serveur/access.db
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Static.RootDir != "/srv/www" {
		t.Errorf("Static.RootDir = %q", cfg.Static.RootDir)
	}
	if cfg.Static.CorsAllowOrigins != "a.com, b.com" {
		t.Errorf("CorsAllowOrigins = %q", cfg.Static.CorsAllowOrigins)
	}
	if !cfg.Static.DirectoryListing {
		t.Error("directory listing should be enabled")
	}
	if cfg.AccessLog.Path != "/var/lib/serveur/access.db" {
		t.Errorf("AccessLog.Path = %q", cfg.AccessLog.Path)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("static:\n  root_dir: /srv/file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SERVE_STATIC__ROOT_DIR", "/srv/env")
	t.Setenv("SERVE_SERVER__PORT", "3000")
	t.Setenv("SERVE_STATIC__DIRECTORY_LISTING", "true")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Static.RootDir != "/srv/env" {
		t.Errorf("Static.RootDir = %q, want env override /srv/env", cfg.Static.RootDir)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if !cfg.Static.DirectoryListing {
		t.Error("directory listing should be enabled via env")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("static: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
