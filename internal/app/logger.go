package app

import (
	"log/slog"
	"os"
)

// NewLogger returns the slog.Logger used across both binaries. The
// pretty (text) format is the development default; production deploys
// set LOG_FORMAT=json.
func NewLogger(cfg *Config) *slog.Logger {
	var handler slog.Handler
	if cfg != nil && cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	return slog.New(handler).With(slog.String("env", envName(cfg)))
}

func envName(cfg *Config) string {
	if cfg == nil {
		return "development"
	}
	return cfg.AppEnv
}
