package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level repolens configuration.
type Config struct {
	ScanPaths         []string   `mapstructure:"scan_paths"`
	MaxDepth          int        `mapstructure:"max_depth"`
	IgnoredDirs       []string   `mapstructure:"ignored_directories"`
	IgnoredFiles      []string   `mapstructure:"ignored_files"`
	CacheTTLSeconds   int        `mapstructure:"cache_ttl_seconds"`
	ScoreAlpha        float64    `mapstructure:"score_alpha"`
	FileLength        FileLength `mapstructure:"file_length"`
	TriggerFiles      []string   `mapstructure:"trigger_files"`
	TriggerExtensions []string   `mapstructure:"trigger_extensions"`
	Output            Output     `mapstructure:"output"`
}

// FileLength defines the recommended file length and alert thresholds
// expressed as multiples of the limit.
type FileLength struct {
	Limit    int     `mapstructure:"limit"`
	Warning  float64 `mapstructure:"warning"`
	Critical float64 `mapstructure:"critical"`
	Severe   float64 `mapstructure:"severe"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("scan_paths", DefaultScanPaths)
	v.SetDefault("max_depth", DefaultMaxDepth)
	v.SetDefault("ignored_directories", DefaultIgnoredDirs)
	v.SetDefault("ignored_files", DefaultIgnoredFiles)
	v.SetDefault("cache_ttl_seconds", DefaultCacheTTLSeconds)
	v.SetDefault("score_alpha", DefaultScoreAlpha)
	v.SetDefault("file_length.limit", DefaultFileLength.Limit)
	v.SetDefault("file_length.warning", DefaultFileLength.Warning)
	v.SetDefault("file_length.critical", DefaultFileLength.Critical)
	v.SetDefault("file_length.severe", DefaultFileLength.Severe)
	v.SetDefault("trigger_files", DefaultTriggerFiles)
	v.SetDefault("trigger_extensions", DefaultTriggerExtensions)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	v.SetEnvPrefix("REPOLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Expand paths.
	for i, p := range cfg.ScanPaths {
		cfg.ScanPaths[i] = expandPath(p)
	}

	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
