// Package paths resolves the configuration and cache directories of the
// liuren command.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppDirName is the directory created under the platform config and cache
// roots.
const AppDirName = "liuren"

// ConfigFile is the configuration file name inside the config directory.
const ConfigFile = "config.yaml"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "LIUREN_CONFIG_DIR"
	EnvCacheDir  = "LIUREN_CACHE_DIR"
)

// platformDir holds platform lookups that tests can replace.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	userCacheDir  func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	userCacheDir:  os.UserCacheDir,
}

// DefaultConfigDir returns the platform default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/liuren (fallback ~/.config/liuren)
// macOS:   ~/Library/Application Support/liuren
// Windows: %APPDATA%/liuren
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDirName), nil
}

// DefaultCacheDir returns the platform default cache directory.
//
// Linux:   $XDG_CACHE_HOME/liuren (fallback ~/.cache/liuren)
// macOS:   ~/Library/Caches/liuren
// Windows: %LocalAppData%/liuren
func DefaultCacheDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CACHE_HOME", ".cache")
	}
	dir, err := platformDir.userCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDirName), nil
}

func xdgDir(env, fallback string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppDirName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > LIUREN_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveCacheDir returns the cache directory following the precedence
// chain: flag > cache.dir in config.yaml > LIUREN_CACHE_DIR env >
// DefaultCacheDir().
func ResolveCacheDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvCacheDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultCacheDir()
}
