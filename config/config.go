// Package config loads runtime settings for the gridsnake binary from flags,
// falling back to environment variables and then defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/brensch/gridsnake/logging"
)

type Config struct {
	LogPath   string
	LogLevel  slog.Level
	LogPretty bool

	// SpectateAddr is the listen address for the websocket spectator feed.
	// Empty disables it.
	SpectateAddr string

	// RecordDir receives one parquet file per finished game. Empty disables
	// recording.
	RecordDir string

	// Seed fixes food placement. Zero picks a time-based seed.
	Seed uint64
}

// Load parses args (without the program name).
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("gridsnake", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	logPath := fs.String("log-path", getEnvOrDefault("LOG_PATH", "gridsnake.log"), "File to append JSON logs to (empty disables logging)")
	logLevel := fs.String("log-level", getEnvOrDefault("LOG_LEVEL", "info"), "Minimum log level: debug, info, warn, error")
	logPretty := fs.Bool("log-pretty", getEnvBoolOrDefault("LOG_PRETTY", false), "Indent JSON log records")
	spectateAddr := fs.String("spectate-addr", getEnvOrDefault("SPECTATE_ADDR", ""), "Listen address for the websocket spectator feed, e.g. :8080")
	recordDir := fs.String("record-dir", getEnvOrDefault("RECORD_DIR", ""), "Directory for per-game parquet turn logs")
	seed := fs.Uint64("seed", getEnvUintOrDefault("SEED", 0), "Random seed for food placement (0 = time based)")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		return Config{}, err
	}

	return Config{
		LogPath:      *logPath,
		LogLevel:     level,
		LogPretty:    *logPretty,
		SpectateAddr: *spectateAddr,
		RecordDir:    *recordDir,
		Seed:         *seed,
	}, nil
}

// Environment variable helpers
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvUintOrDefault(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(key); val != "" {
		var u uint64
		if _, err := fmt.Sscanf(val, "%d", &u); err == nil {
			return u
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
