// Package config loads kernel configuration from the environment, reading a
// .env file first when one is present.
package config

import (
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/centraunit/bindery/binding"
)

// Config is the typed kernel configuration.
type Config struct {
	// DefaultScope is applied to every binding the kernel creates.
	DefaultScope binding.Scope
	// Env is "production" for JSON logs, anything else for console logs.
	Env       string
	LogLevel  string
	DebugAddr string
}

// Load reads the named env files, or .env when none are named, and populates
// a Config from environment variables. A missing default .env is ignored; a
// named file that cannot be read is an error, as is an unknown scope name.
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(err, "config: load env files")
		}
	}

	scope, err := binding.ParseScope(env("BINDERY_DEFAULT_SCOPE", string(binding.ScopeTransient)))
	if err != nil {
		return nil, errors.Wrap(err, "config: BINDERY_DEFAULT_SCOPE")
	}

	return &Config{
		DefaultScope: scope,
		Env:          env("BINDERY_ENV", "local"),
		LogLevel:     env("BINDERY_LOG_LEVEL", "info"),
		DebugAddr:    env("BINDERY_DEBUG_ADDR", ""),
	}, nil
}

// Level parses LogLevel, defaulting to info.
func (c *Config) Level() zapcore.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}

// Logger builds a zap logger: JSON in production, console otherwise.
func (c *Config) Logger() (*zap.Logger, error) {
	var zc zap.Config
	if c.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(c.Level())
	return zc.Build()
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
