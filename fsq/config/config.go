package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	internal "github.com/ZanzyTHEbar/fsquery/fsq"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Scan   ScanConfig   `mapstructure:"scan"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// ScanConfig controls directory traversal and per-entry evaluation.
type ScanConfig struct {
	Workers         int   `mapstructure:"workers"`
	MaxDepth        int   `mapstructure:"maxDepth"`
	Hidden          bool  `mapstructure:"hidden"`
	Gitignore       bool  `mapstructure:"gitignore"`
	Archives        bool  `mapstructure:"archives"`
	FollowSymlinks  bool  `mapstructure:"followSymlinks"`
	MaxContentBytes int64 `mapstructure:"maxContentBytes"`
}

// OutputConfig selects the result formatter.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// LogConfig stores logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// EffectiveWorkers returns the worker count, deriving it from the CPU count when unset.
func (s ScanConfig) EffectiveWorkers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	// I/O bound: cores * 2, bounded
	return min(max(runtime.NumCPU()*2, 4), 32)
}

// Validate checks values viper cannot constrain on its own.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output.Format) {
	case "table", "json", "jsonl", "csv":
	default:
		return fmt.Errorf("unsupported output format %q (supported: table, json, jsonl, csv)", c.Output.Format)
	}
	if c.Scan.MaxDepth < -1 {
		return fmt.Errorf("scan.maxDepth must be -1 (unlimited) or >= 0, got %d", c.Scan.MaxDepth)
	}
	if c.Scan.MaxContentBytes < 0 {
		return fmt.Errorf("scan.maxContentBytes cannot be negative")
	}
	return nil
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("scan.workers", 0)
	v.SetDefault("scan.maxDepth", -1)
	v.SetDefault("scan.hidden", true)
	v.SetDefault("scan.gitignore", false)
	v.SetDefault("scan.archives", false)
	v.SetDefault("scan.followSymlinks", false)
	v.SetDefault("scan.maxContentBytes", 0)
	v.SetDefault("output.format", internal.DefaultOutputFormat)
	v.SetDefault("log.level", internal.DefaultLogLevel)
	v.SetDefault("log.pretty", false)
}

// LoadConfig reads configuration from file or environment variables into v.
// A missing config file is not an error; defaults are used.
func LoadConfig(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(internal.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	SetDefaults(v)

	v.SetEnvPrefix(internal.DefaultEnvPrefix)
	v.AutomaticEnv()                                   // Read in environment variables that match
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // scan.maxDepth becomes FSQ_SCAN_MAXDEPTH

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
