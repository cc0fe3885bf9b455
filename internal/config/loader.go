package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the YAML layers.
const (
	EnvAddr        = "QUIZHUB_ADDR"
	EnvDB          = "QUIZHUB_DB"
	EnvAuthSecret  = "QUIZHUB_AUTH_SECRET"
	EnvLogLevel    = "QUIZHUB_LOG_LEVEL"
	EnvSSHAddr     = "QUIZHUB_SSH_ADDR"
	EnvLibraryRoot = "QUIZHUB_LIBRARY_ROOT"
)

// Load builds the configuration.
// Search order: customPath -> ./quizhub.yaml -> ~/.quizhub/quizhub.yaml -> embedded default.
// The first file found is decoded over the defaults, so partial files are fine.
// envFile (usually ".env") is loaded into the process environment if it
// exists; variables already set are left alone. Game tuning that no game
// could start from is rejected.
func Load(customPath, envFile string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
	} else {
		for _, p := range searchPaths() {
			data, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", p, err)
			}
			break
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}
	applyEnv(&cfg)

	if err := cfg.Games.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func searchPaths() []string {
	paths := []string{"quizhub.yaml"}
	if dir := userDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "quizhub.yaml"))
	}
	return paths
}

func applyEnv(cfg *Config) {
	set := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	set(EnvAddr, &cfg.Server.Addr)
	set(EnvDB, &cfg.Storage.Path)
	set(EnvAuthSecret, &cfg.Auth.Secret)
	set(EnvLogLevel, &cfg.Log.Level)
	set(EnvSSHAddr, &cfg.SSH.Addr)
	set(EnvLibraryRoot, &cfg.Library.Root)
}

// userDir returns ~/.quizhub, or empty if home is unavailable.
func userDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".quizhub")
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
