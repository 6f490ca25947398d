package models

import (
	"fmt"
	"strings"
)

// DetectionMode selects how page content is retrieved.
type DetectionMode string

const (
	// ModeStatic fetches the page with a single HTTP GET.
	ModeStatic DetectionMode = "static"
	// ModeScripted renders the page in a headless browser session.
	ModeScripted DetectionMode = "scripted"
)

// String returns the string representation of DetectionMode
func (m DetectionMode) String() string {
	return string(m)
}

// IsValid reports whether m is a known detection mode
func (m DetectionMode) IsValid() bool {
	return m == ModeStatic || m == ModeScripted
}

// ParseDetectionMode parses a detection mode, case-insensitively.
// The legacy boolean spellings ("true"/"false" for use-browser) are accepted.
func ParseDetectionMode(s string) (DetectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static", "http", "false":
		return ModeStatic, nil
	case "scripted", "browser", "true":
		return ModeScripted, nil
	default:
		return "", fmt.Errorf("unknown detection mode %q (expected static or scripted)", s)
	}
}
