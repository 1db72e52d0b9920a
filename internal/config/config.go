// Package config loads server configuration from an optional YAML file
// and SERVE_-prefixed environment variables, with env taking precedence.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Static    StaticConfig    `koanf:"static"`
	AccessLog AccessLogConfig `koanf:"access_log"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// StaticConfig describes the serving tree and per-response policies.
// It is immutable after startup; all request handling reads it
// concurrently without synchronization.
type StaticConfig struct {
	// RootDir is the directory all request paths resolve under.
	RootDir string `koanf:"root_dir"`

	// AssetsDir is the directory whose base name selects the long-lived
	// cache policy for matching request prefixes.
	AssetsDir string `koanf:"assets_dir"`

	// Page404Path and Page50xPath are substituted for 404 and 5xx bodies.
	// They are read lazily on first error, not validated at startup.
	Page404Path string `koanf:"page_404_path"`
	Page50xPath string `koanf:"page_50x_path"`

	// CorsAllowOrigins is empty (disabled), "*" (any origin), or a
	// comma-separated origin whitelist.
	CorsAllowOrigins string `koanf:"cors_allow_origins"`

	// DirectoryListing enables rendering an index for directories that
	// lack an index file.
	DirectoryListing bool `koanf:"directory_listing"`
}

// AccessLogConfig configures optional persistent access logging.
// An empty Path disables the SQLite store; structured logs still apply.
type AccessLogConfig struct {
	Path string `koanf:"path"`
}

const (
	defaultConfigFile = "config.yaml"
	envPrefix         = "SERVE_"
)

// Load reads defaultConfigFile if present, then overlays environment
// variables: SERVE_STATIC__ROOT_DIR maps to static.root_dir and so on.
func Load() (*Config, error) {
	return LoadFile(defaultConfigFile)
}

// LoadFile is Load with an explicit config file path. A missing file is
// not an error; environment variables and defaults still apply.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	defaults := map[string]any{
		"server.host":               "",
		"server.port":               8080,
		"static.root_dir":           "./public",
		"static.assets_dir":         "./public/assets",
		"static.page_404_path":      "./public/404.html",
		"static.page_50x_path":      "./public/50x.html",
		"static.cors_allow_origins": "",
		"static.directory_listing":  false,
	}
	for key, val := range defaults {
		if !k.Exists(key) {
			k.Set(key, val)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
