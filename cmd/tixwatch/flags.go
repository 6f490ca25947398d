package main

import (
	"flag"
	"io"
)

// AppFlags holds the command-line overrides
type AppFlags struct {
	ConfigFile string
	Mode       string
	LogLevel   string
	Once       bool
}

// ParseFlags parses args (without the program name). Help output goes to out.
func ParseFlags(args []string, out io.Writer) (AppFlags, error) {
	fs := flag.NewFlagSet("tixwatch", flag.ContinueOnError)
	fs.SetOutput(out)

	configFile := fs.String("config", "", "Path to the YAML configuration file. If not set, searches default locations and creates config.yaml when none exists.")
	configFileAlias := fs.String("c", "", "Alias for -config")

	modeFlag := fs.String("mode", "", "Detection mode: static or scripted (overrides config file if set)")
	modeFlagAlias := fs.String("m", "", "Alias for -mode")

	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error (overrides config file if set)")
	once := fs.Bool("once", false, "Run a single check and exit")

	if err := fs.Parse(args); err != nil {
		return AppFlags{}, err
	}

	flags := AppFlags{LogLevel: *logLevel, Once: *once}

	if *configFile != "" {
		flags.ConfigFile = *configFile
	} else if *configFileAlias != "" {
		flags.ConfigFile = *configFileAlias
	}

	if *modeFlag != "" {
		flags.Mode = *modeFlag
	} else if *modeFlagAlias != "" {
		flags.Mode = *modeFlagAlias
	}

	return flags, nil
}
