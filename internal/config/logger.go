package config

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds a zap logger from LoggingConfig, mirroring arxos's
// split between a human-readable console encoder for local runs and a
// JSON encoder for anything piped or shipped.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zcfg.Level = level

	if cfg.Format == "console" {
		zcfg.Encoding = "console"
	} else {
		zcfg.Encoding = "json"
	}

	return zcfg.Build()
}
