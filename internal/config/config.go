// Package config consolidates environment variable reading for the CLI.
// Values only provide flag defaults; explicit flags always win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	CodecVar     = "ARCBATCH_CODEC"
	CodecArgsVar = "ARCBATCH_CODEC_ARGS"
	ExtensionVar = "ARCBATCH_EXTENSION"
	TempDirVar   = "ARCBATCH_TEMP_DIR"
	LogLevelVar  = "ARCBATCH_LOG_LEVEL"
)

const (
	DefaultCodec    = "arctool"
	DefaultLogLevel = "INFO"
)

// Env holds the flag defaults read from the environment
type Env struct {
	Codec     string
	CodecArgs []string
	Extension string
	TempDir   string
	LogLevel  string
}

// LoadDotEnv loads the given .env files (or ./.env when none is given).
// A missing file is not an error.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

// Read returns the current environment with defaults applied
func Read() Env {
	e := Env{
		Codec:     DefaultCodec,
		Extension: os.Getenv(ExtensionVar),
		TempDir:   os.Getenv(TempDirVar),
		LogLevel:  DefaultLogLevel,
	}
	if v := os.Getenv(CodecVar); v != "" {
		e.Codec = v
	}
	if v := os.Getenv(CodecArgsVar); v != "" {
		e.CodecArgs = strings.Fields(v)
	}
	if v := os.Getenv(LogLevelVar); v != "" {
		e.LogLevel = v
	}
	return e
}

// ParseLevel maps DEBUG, INFO, WARN and ERROR (any case) to a slog level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
