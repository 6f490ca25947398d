package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aleister1102/tixwatch/internal/common"
	"gopkg.in/yaml.v3"
)

// ErrConfigCreated is returned by LoadOrCreate when no config file existed and
// defaults were written. Startup must halt until the operator edits the file.
var ErrConfigCreated = errors.New("default configuration file created")

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	MonitorConfig      MonitorConfig      `json:"monitor" yaml:"monitor"`
	DetectorConfig     DetectorConfig     `json:"detector" yaml:"detector"`
	BrowserConfig      BrowserConfig      `json:"browser" yaml:"browser"`
	HTTPConfig         HTTPConfig         `json:"http" yaml:"http"`
	NotificationConfig NotificationConfig `json:"notification" yaml:"notification"`
	LogConfig          LogConfig          `json:"log" yaml:"log"`
	ResourceConfig     ResourceConfig     `json:"resource" yaml:"resource"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		MonitorConfig:      NewDefaultMonitorConfig(),
		DetectorConfig:     NewDefaultDetectorConfig(),
		BrowserConfig:      NewDefaultBrowserConfig(),
		HTTPConfig:         NewDefaultHTTPConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
		LogConfig:          NewDefaultLogConfig(),
		ResourceConfig:     NewDefaultResourceConfig(),
	}
}

// LoadGlobalConfig reads the YAML file at filePath over the defaults.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadGlobalConfig(filePath string) (*GlobalConfig, error) {
	if filePath == "" {
		return nil, common.NewConfigError("config_file", "no configuration file path given", nil)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.NewConfigError("config_file", fmt.Sprintf("config file '%s' does not exist", filePath), err)
		}
		return nil, common.NewConfigError("config_file", fmt.Sprintf("failed to read '%s'", filePath), err)
	}

	cfg := NewDefaultGlobalConfig()
	if err := parseYAMLConfig(data, cfg); err != nil {
		return nil, common.NewConfigError("", fmt.Sprintf("failed to parse '%s'", filePath), err)
	}

	return cfg, nil
}

// LoadOrCreate loads the config at filePath, writing the defaults there first when
// the file is missing. In that case the written path and ErrConfigCreated are returned.
func LoadOrCreate(filePath string) (*GlobalConfig, error) {
	if filePath == "" {
		filePath = DefaultConfigFileName
	}

	if !fileExists(filePath) {
		if err := WriteDefaultConfig(filePath); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w at '%s'", ErrConfigCreated, filePath)
	}

	cfg, err := LoadGlobalConfig(filePath)
	if err != nil {
		return nil, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteDefaultConfig writes the default configuration as YAML to filePath
func WriteDefaultConfig(filePath string) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return common.NewConfigError("config_file", fmt.Sprintf("failed to create directory '%s'", dir), err)
		}
	}

	data, err := MarshalYAML(NewDefaultGlobalConfig())
	if err != nil {
		return common.NewConfigError("", "failed to encode default configuration", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return common.NewConfigError("config_file", fmt.Sprintf("failed to write '%s'", filePath), err)
	}
	return nil
}

// MarshalYAML encodes cfg with two-space indentation
func MarshalYAML(cfg *GlobalConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// parseYAMLConfig decodes YAML over cfg, rejecting unknown fields
func parseYAMLConfig(data []byte, cfg *GlobalConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
