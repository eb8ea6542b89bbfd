package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/liuren/internal/paths"
	"github.com/mesh-intelligence/liuren/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// envPrefix maps LIUREN_LOG_LEVEL to log_level, LIUREN_CACHE_BACKEND to
	// cache.backend, and so on.
	envPrefix = "LIUREN"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# liuren configuration

# debug, info, warn or error
log_level: warn

# Time zone used when no date is given
timezone: Asia/Shanghai

cache:
  # none or sqlite
  backend: none
  # dir: ~/.cache/liuren

board:
  # command runs an external board engine; file reads a board document
  source: command
  # command: kinliuren-board
  args: ["{term}", "{month}", "{day}", "{hour}"]
  timeout: 10s
  # file: board.yaml

search:
  min_year: -4000
  max_year: 3000
  progress_every: 20
`

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run. A missing config.yaml
// is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("timezone", d.Timezone)
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("board.source", d.Board.Source)
	v.SetDefault("board.command", d.Board.Command)
	v.SetDefault("board.args", d.Board.Args)
	v.SetDefault("board.timeout", d.Board.Timeout)
	v.SetDefault("board.file", d.Board.File)
	v.SetDefault("search.min_year", d.Search.MinYear)
	v.SetDefault("search.max_year", d.Search.MaxYear)
	v.SetDefault("search.progress_every", d.Search.ProgressEvery)
}

// decodeConfig unmarshals and validates the loaded settings.
func decodeConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("config %s: %w", v.ConfigFileUsed(), err)
	}
	return cfg, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, paths.ConfigFile)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
