package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath determines the configuration file path.
// Priority:
// 1. -config command-line flag (returned even if the file is missing, so it can be created)
// 2. TIXWATCH_CONFIG_PATH environment variable
// 3. config.yaml in the current working directory
// 4. config.yaml in the executable's directory
// When nothing exists, config.yaml in the working directory is returned.
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" {
		return configFilePathFlag
	}

	if envPath := os.Getenv(ConfigPathEnv); envPath != "" {
		return envPath
	}

	var locations []string
	cwd, errCwd := os.Getwd()
	if errCwd == nil {
		locations = append(locations, cwd)
	}
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		if errCwd != nil || exeDir != cwd {
			locations = append(locations, exeDir)
		}
	}

	for _, loc := range locations {
		path := filepath.Join(loc, DefaultConfigFileName)
		if fileExists(path) {
			return path
		}
	}

	return DefaultConfigFileName
}

// Helper function to check if a file exists
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
