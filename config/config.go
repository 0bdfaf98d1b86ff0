// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mhpenta/portraitgen"
)

// Config holds the settings read at startup.
type Config struct {
	// APIKey for the generation service. May be empty; calls then fail.
	APIKey string

	// Model passed to the generation service
	Model portraitgen.Model

	// OutputDir is where downloaded results are written
	OutputDir string
}

// HasAPIKey reports whether a credential was found.
func (c Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// Load reads an optional .env file, then the environment.
//
// A missing API key is logged but does not fail: the first generation call reports it instead.
func Load(logger *slog.Logger, envFiles ...string) Config {
	if logger == nil {
		logger = slog.Default()
	}

	if err := godotenv.Load(envFiles...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug(".env file not found, using environment variables")
		} else {
			logger.Warn("failed to load .env file", "error", err.Error())
		}
	}

	cfg := Config{
		APIKey:    firstEnv("API_KEY", "GEMINI_API_KEY"),
		Model:     portraitgen.Model(getEnv("PORTRAITGEN_MODEL", string(portraitgen.ModelDefault))),
		OutputDir: getEnv("PORTRAITGEN_OUTPUT_DIR", "output"),
	}

	if !cfg.HasAPIKey() {
		logger.Error("API_KEY environment variable is not set")
	}

	logger.Info("configuration loaded",
		"model", string(cfg.Model),
		"output_dir", cfg.OutputDir,
		"api_key_set", cfg.HasAPIKey(),
	)

	return cfg
}

// getEnv returns the trimmed value of key, or defaultValue when unset or blank.
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := getEnv(key, ""); value != "" {
			return value
		}
	}
	return ""
}
