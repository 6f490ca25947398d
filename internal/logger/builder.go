package logger

import (
	"io"
	stdlog "log" // Standard Go log package, aliased to avoid conflict with zerolog field

	"github.com/aleister1102/tixwatch/internal/common"
	"github.com/aleister1102/tixwatch/internal/config"
	"github.com/rs/zerolog"
)

// LoggerBuilder provides fluent interface for building loggers
type LoggerBuilder struct {
	settings  Settings
	factory   *WriterFactory
	converter *ConfigConverter
	convErr   error
}

// NewLoggerBuilder creates a new logger builder
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		settings: Settings{
			Level:      zerolog.InfoLevel,
			Format:     FormatConsole,
			Console:    true,
			MaxSizeMB:  config.DefaultMaxLogSizeMB,
			MaxBackups: config.DefaultMaxLogBackups,
		},
		factory:   NewWriterFactory(),
		converter: NewConfigConverter(),
	}
}

// WithConfig sets the logger configuration
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	lb.settings, lb.convErr = lb.converter.ConvertConfig(cfg)
	return lb
}

// WithConsoleOutput redirects console output, mostly for tests
func (lb *LoggerBuilder) WithConsoleOutput(w io.Writer) *LoggerBuilder {
	lb.factory.console = w
	return lb
}

// Build creates the logger instance
func (lb *LoggerBuilder) Build() (zerolog.Logger, error) {
	if lb.convErr != nil {
		return zerolog.Nop(), lb.convErr
	}
	if err := lb.validateConfig(); err != nil {
		return zerolog.Nop(), err
	}

	writers, err := lb.createWriters()
	if err != nil {
		return zerolog.Nop(), err
	}
	if len(writers) == 0 {
		return zerolog.Nop(), common.NewError("no output writers configured")
	}

	zerologInstance := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lb.settings.Level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(lb.settings.Level)
	lb.configureStandardLog(zerologInstance)

	return zerologInstance, nil
}

// validateConfig validates the logger configuration
func (lb *LoggerBuilder) validateConfig() error {
	if lb.settings.MaxSizeMB <= 0 {
		return common.NewConfigError("log.max_log_size_mb", "max size must be positive", nil)
	}
	return nil
}

// createWriters creates the appropriate writers based on configuration
func (lb *LoggerBuilder) createWriters() ([]io.Writer, error) {
	var writers []io.Writer

	if lb.settings.Console {
		writers = append(writers, lb.factory.CreateConsoleWriter(lb.settings.Format))
	}

	if lb.settings.FileEnabled() {
		fileWriter, err := lb.factory.CreateFileWriter(lb.settings)
		if err != nil {
			return nil, common.WrapErrorf(err, "failed to open log file '%s'", lb.settings.FilePath)
		}
		writers = append(writers, fileWriter)
	}

	return writers, nil
}

// configureStandardLog configures standard Go log package
func (lb *LoggerBuilder) configureStandardLog(logger zerolog.Logger) {
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)
}
