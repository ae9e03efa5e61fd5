// Package config loads the txsearch configuration and the optional .env file.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"fjacquet/txsearch/internal/fileutils"
	"fjacquet/txsearch/internal/logging"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnv loads environment variables from a .env file in the working
// directory or its parent, if one exists. Variables already set in the
// environment win. Only the first call has an effect.
func LoadEnv(logger logging.Logger) {
	if logger == nil {
		logger = logging.Discard()
	}
	envOnce.Do(func() {
		envFile, ok := findEnvFile()
		if !ok {
			logger.Debug("No .env file found, using environment variables")
			return
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file")
			return
		}
		logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, envFile))
	})
}

func findEnvFile() (string, bool) {
	return fileutils.FirstExisting(".env", filepath.Join("..", ".env"))
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

// NewLogger builds the application logger from the log section.
func NewLogger(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
