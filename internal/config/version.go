package config

import (
	"os"
	"strings"
)

// GetVersion returns the toolkit version: the APP_VERSION environment
// variable when set by CI, else the VERSION file, else a fallback.
func GetVersion() string {
	if v := os.Getenv("APP_VERSION"); v != "" {
		return v
	}
	if content, err := os.ReadFile("VERSION"); err == nil {
		if v := strings.TrimSpace(string(content)); v != "" {
			return v
		}
	}
	return "0.1.0"
}
