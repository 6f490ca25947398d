package logger

import (
	"github.com/aleister1102/tixwatch/internal/config"
	"github.com/rs/zerolog"
)

// ConfigConverter converts config.LogConfig to Settings
type ConfigConverter struct {
	levelParser  *LogLevelParser
	formatParser *LogFormatParser
}

// NewConfigConverter creates a new config converter
func NewConfigConverter() *ConfigConverter {
	return &ConfigConverter{
		levelParser:  NewLogLevelParser(),
		formatParser: NewLogFormatParser(),
	}
}

// ConvertConfig converts application config to logger config.
// An unknown level falls back to info and is reported through the error.
func (cc *ConfigConverter) ConvertConfig(cfg config.LogConfig) (Settings, error) {
	level, err := cc.levelParser.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return Settings{
		Level:      level,
		Format:     cc.formatParser.ParseFormat(cfg.LogFormat),
		Console:    true,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  positiveOr(cfg.MaxLogSizeMB, config.DefaultMaxLogSizeMB),
		MaxBackups: positiveOr(cfg.MaxLogBackups, config.DefaultMaxLogBackups),
	}, err
}

func positiveOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
