package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
	WarnLogger  *log.Logger

	minLevel atomic.Int32
)

func init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLogger = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	minLevel.Store(int32(LevelInfo))
}

// ParseLevel accepts debug, info, warn/warning and error; anything else is info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func SetLevel(level Level) {
	minLevel.Store(int32(level))
}

func enabled(level Level) bool {
	return int32(level) >= minLevel.Load()
}

// calldepth 3 makes Lshortfile report the caller of Info/Warn/... rather than this file.
func output(l *log.Logger, level Level, format string, v ...interface{}) {
	if !enabled(level) {
		return
	}
	l.Output(3, fmt.Sprintf(format, v...))
}

func Info(format string, v ...interface{}) {
	output(InfoLogger, LevelInfo, format, v...)
}

func Error(format string, v ...interface{}) {
	output(ErrorLogger, LevelError, format, v...)
}

func Debug(format string, v ...interface{}) {
	output(DebugLogger, LevelDebug, format, v...)
}

func Warn(format string, v ...interface{}) {
	output(WarnLogger, LevelWarn, format, v...)
}

// LogRequestError records a failed side effect of a collection request operation.
func LogRequestError(requestID, action string, err error) {
	Warn("Collection request side effect failed: action=%s, requestID=%s, error=%v", action, requestID, err)
}
