// Package logx provides the category-tagged logger used across the
// module, rotated through lumberjack the way the node's own logger is.
package logx

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
)

const (
	defaultLogFile  = "./logs/core.log"
	defaultMaxSizeMB = 50
	defaultMaxAgeDays = 14
)

var (
	lumberjackLogger = &lumberjack.Logger{
		Filename: getLogFilename(),
		MaxSize:  getEnvInt("LOGFILE_MAX_SIZE_MB", defaultMaxSizeMB),
		MaxAge:   getEnvInt("LOGFILE_MAX_AGE_DAYS", defaultMaxAgeDays),
	}

	logger = log.New(lumberjackLogger, "", log.Ldate|log.Ltime|log.Lmicroseconds)
)

func getLogFilename() string {
	if logFile := os.Getenv("LOGFILE"); logFile != "" {
		return "./logs/" + logFile
	}
	return defaultLogFile
}

// getEnvInt reads an int from env, falling back to def instead of
// panicking: a validation library must keep working in an unconfigured
// environment, unlike the long-lived node process this was adapted from.
func getEnvInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func Info(category string, content ...interface{}) {
	logger.Printf("%s: %s", tag(ColorGreen, "INFO", category), fmt.Sprint(content...))
}

func Error(category string, content ...interface{}) {
	logger.Printf("%s: %s", tag(ColorRed, "ERROR", category), fmt.Sprint(content...))
}

func Warn(category string, content ...interface{}) {
	logger.Printf("%s: %s", tag(ColorYellow, "WARN", category), fmt.Sprint(content...))
}

func Debug(category string, content ...interface{}) {
	logger.Printf("%s: %s", tag(ColorBlue, "DEBUG", category), fmt.Sprint(content...))
}

func tag(color, level, category string) string {
	return fmt.Sprintf("%s[%s][%s]%s", color, level, category, ColorReset)
}

// Errorf logs an error message and returns a formatted error, matching
// call sites that want to both log and propagate a failure.
func Errorf(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	Error("ERROR", err.Error())
	return err
}

// ValidationFailed logs the first-failing rule of a Block.Verify or
// Block.IsSuccessorOf call at warn level, per the node's convention of
// naming the offending check rather than dumping the whole record.
func ValidationFailed(category, check string) {
	Warn(category, "validation failed: "+check)
}
