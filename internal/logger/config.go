package logger

import "github.com/rs/zerolog"

// LogFormat selects how entries are encoded
type LogFormat int

const (
	FormatConsole LogFormat = iota
	FormatJSON
	FormatText
)

var formatNames = map[LogFormat]string{
	FormatConsole: "console",
	FormatJSON:    "json",
	FormatText:    "text",
}

func (lf LogFormat) String() string {
	if name, ok := formatNames[lf]; ok {
		return name
	}
	return formatNames[FormatConsole]
}

// Settings is the resolved form of config.LogConfig the builder works from.
// A non-empty FilePath adds a rotating file writer next to the console.
type Settings struct {
	Level      zerolog.Level
	Format     LogFormat
	Console    bool
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
}

// FileEnabled reports whether a log file was configured
func (s Settings) FileEnabled() bool {
	return s.FilePath != ""
}
