package logger

import (
	"os"
	"strings"
)

var global = NewDefault()

func init() {
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		if level, ok := ParseLevel(s); ok {
			global.SetLevel(level)
		}
	}
	if s := os.Getenv("LOG_FORMAT"); s != "" {
		if format, ok := ParseFormat(s); ok {
			global.SetFormat(format)
		}
	}
}

// ParseLevel parses a level name; ok is false for unknown names.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DebugLevel, true
	case "INFO":
		return InfoLevel, true
	case "WARN", "WARNING":
		return WarnLevel, true
	case "ERROR":
		return ErrorLevel, true
	}
	return InfoLevel, false
}

// ParseFormat parses a format name; ok is false for unknown names.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "json":
		return JSONFormat, true
	case "text":
		return TextFormat, true
	}
	return TextFormat, false
}

// Global returns the process-wide logger.
func Global() *Logger { return global }

// SetGlobal replaces the process-wide logger.
func SetGlobal(l *Logger) { global = l }

// Debug logs a debug message on the global logger.
func Debug(message string, fields ...map[string]interface{}) { global.Debug(message, fields...) }

// Info logs an info message on the global logger.
func Info(message string, fields ...map[string]interface{}) { global.Info(message, fields...) }

// Warn logs a warning on the global logger.
func Warn(message string, fields ...map[string]interface{}) { global.Warn(message, fields...) }

// Error logs an error message on the global logger.
func Error(message string, err error, fields ...map[string]interface{}) {
	global.Error(message, err, fields...)
}

// Debugf logs a formatted debug message on the global logger.
func Debugf(format string, args ...interface{}) { global.Debugf(format, args...) }

// Infof logs a formatted info message on the global logger.
func Infof(format string, args ...interface{}) { global.Infof(format, args...) }

// Warnf logs a formatted warning on the global logger.
func Warnf(format string, args ...interface{}) { global.Warnf(format, args...) }

// Errorf logs a formatted error message on the global logger.
func Errorf(format string, args ...interface{}) { global.Errorf(format, args...) }
