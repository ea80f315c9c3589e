package internal

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

var (
	// DefaultAppName is used for config lookup and the env prefix
	DefaultAppName      = "fsq"
	DefaultConfigPath   = filepath.Join(getHomeDir(), ".config", DefaultAppName)
	DefaultConfigFile   = filepath.Join(DefaultConfigPath, "config.yaml")
	DefaultEnvPrefix    = strings.ToUpper(DefaultAppName)
	DefaultLogLevel     = "warn"
	DefaultOutputFormat = "table"
	DefaultIgnoreFile   = ".gitignore"
)

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current working directory if home directory is unavailable
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			log.Printf("Unable to get home or working directory, using /tmp: %v", err)
			return "/tmp"
		}
		log.Printf("Unable to get home directory, using current working directory: %v", err)
		return cwd
	}
	return homeDir
}

// GetLogger returns a properly configured zerolog logger instance.
// Unknown levels fall back to DefaultLogLevel.
func GetLogger(level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl, _ = zerolog.ParseLevel(DefaultLogLevel)
	}

	if pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
