package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorWhite  = "\033[97m"
)

// Log levels
const (
	LevelCrit   = iota // 0 - Critical errors (fatal, app should stop)
	LevelError         // 1 - Errors (non-fatal but important)
	LevelWarn          // 2 - Warnings (malformed data lines, skipped rows)
	LevelNotice        // 3 - Important info (startup, rebuilds, import totals)
	LevelInfo          // 4 - General info
	LevelDebug         // 5 - Debug details
)

var (
	// Logger is the package-level logger used across the project.
	Logger = log.New(os.Stdout, "", 0) // We'll handle our own formatting
	// Level controls verbosity. Default to NOTICE for sane production defaults.
	Level      = LevelNotice
	UseColors  = true // Enable colors by default
	TimeFormat = "Jan 02 15:04:05.000"
)

// SetLevel sets the logger verbosity level.
func SetLevel(l int) {
	Level = l
}

// SetOutput sets the output destination for logs
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// DisableColors disables color output
func DisableColors() {
	UseColors = false
}

// ParseLevel maps a level name (e.g. "DEBUG", "warn") to its numeric level.
// Unknown names fall back to LevelNotice.
func ParseLevel(name string) int {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "CRIT", "CRITICAL":
		return LevelCrit
	case "ERROR":
		return LevelError
	case "WARN", "WARNING":
		return LevelWarn
	case "NOTICE":
		return LevelNotice
	case "INFO":
		return LevelInfo
	case "DEBUG":
		return LevelDebug
	}
	return LevelNotice
}

// formatLog formats a log message with timestamp, colored level (3-letter), and message
func formatLog(levelAbbrev, color, message string) string {
	timestamp := time.Now().Format(TimeFormat)

	if UseColors {
		return fmt.Sprintf("%s %s%s%s %s", timestamp, color, levelAbbrev, colorReset, message)
	}

	return fmt.Sprintf("%s %s %s", timestamp, levelAbbrev, message)
}

// Crit logs critical errors (application should stop)
func Crit(format string, v ...interface{}) {
	if Level >= LevelCrit {
		msg := fmt.Sprintf(format, v...)
		Logger.Print(formatLog("CRT", colorRed, msg))
	}
}

// Error logs error-level messages (non-fatal but important)
func Error(format string, v ...interface{}) {
	if Level >= LevelError {
		msg := fmt.Sprintf(format, v...)
		Logger.Print(formatLog("ERR", colorRed, msg))
	}
}

// Warn logs warning-level messages
func Warn(format string, v ...interface{}) {
	if Level >= LevelWarn {
		msg := fmt.Sprintf(format, v...)
		Logger.Print(formatLog("WRN", colorYellow, msg))
	}
}

// Notice logs important informational messages (startup, rebuilds, totals)
func Notice(format string, v ...interface{}) {
	if Level >= LevelNotice {
		msg := fmt.Sprintf(format, v...)
		Logger.Print(formatLog("NOT", colorCyan, msg))
	}
}

// Info logs general informational messages
func Info(format string, v ...interface{}) {
	if Level >= LevelInfo {
		msg := fmt.Sprintf(format, v...)
		Logger.Print(formatLog("INF", colorWhite, msg))
	}
}

// Debug logs very verbose diagnostic messages
func Debug(format string, v ...interface{}) {
	if Level >= LevelDebug {
		msg := fmt.Sprintf(format, v...)
		Logger.Print(formatLog("DBG", colorGray, msg))
	}
}
