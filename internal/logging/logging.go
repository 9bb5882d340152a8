// ABOUTME: Leveled logging over the standard log package
// ABOUTME: Level comes from LOG_LEVEL or DEBUG environment variables
package logging

import (
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents the severity of a log message
type Level int

const (
	// LevelDebug is the debug log level
	LevelDebug Level = iota
	// LevelInfo is the info log level
	LevelInfo
	// LevelWarn is the warning log level
	LevelWarn
	// LevelError is the error log level
	LevelError
)

var (
	currentLevel Level
	levelOnce    sync.Once
)

func initLevel() {
	levelOnce.Do(func() {
		if debug := os.Getenv("DEBUG"); debug != "" {
			switch strings.ToLower(debug) {
			case "1", "true", "yes", "on":
				currentLevel = LevelDebug
				return
			}
		}

		switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
		case "debug":
			currentLevel = LevelDebug
		case "info":
			currentLevel = LevelInfo
		case "warn", "warning":
			currentLevel = LevelWarn
		case "error":
			currentLevel = LevelError
		default:
			currentLevel = LevelInfo
		}
	})
}

// GetLevel returns the current log level
func GetLevel() Level {
	initLevel()
	return currentLevel
}

// SetLevel overrides the environment-derived level (used by tests)
func SetLevel(l Level) {
	initLevel()
	currentLevel = l
}

// Debugf logs at debug level
func Debugf(format string, v ...interface{}) {
	if GetLevel() <= LevelDebug {
		log.Printf("[DEBUG] "+format, v...)
	}
}

// Infof logs at info level
func Infof(format string, v ...interface{}) {
	if GetLevel() <= LevelInfo {
		log.Printf("[INFO] "+format, v...)
	}
}

// Warnf logs at warning level
func Warnf(format string, v ...interface{}) {
	if GetLevel() <= LevelWarn {
		log.Printf("[WARN] "+format, v...)
	}
}

// Errorf logs at error level
func Errorf(format string, v ...interface{}) {
	if GetLevel() <= LevelError {
		log.Printf("[ERROR] "+format, v...)
	}
}
