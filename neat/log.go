package neat

import (
	"log"
	"os"

	"github.com/pkg/errors"
)

// LoggerLevel identifies one of the four logging levels.
type LoggerLevel string

const (
	LogLevelDebug   LoggerLevel = "debug"
	LogLevelInfo    LoggerLevel = "info"
	LogLevelWarning LoggerLevel = "warn"
	LogLevelError   LoggerLevel = "error"
)

var (
	// LogLevel is the currently active package log level.
	LogLevel LoggerLevel = LogLevelInfo

	loggerDebug = log.New(os.Stdout, "DEBUG: ", log.Ltime|log.Lshortfile)
	loggerInfo  = log.New(os.Stdout, "INFO: ", log.Ltime|log.Lshortfile)
	loggerWarn  = log.New(os.Stdout, "WARN: ", log.Ltime|log.Lshortfile)
	loggerError = log.New(os.Stderr, "ERROR: ", log.Ltime|log.Lshortfile)

	// DebugLog emits a message if the current level allows debug output.
	DebugLog = func(message string) {
		if acceptLogLevel(LogLevel, LogLevelDebug) {
			_ = loggerDebug.Output(2, message)
		}
	}
	// InfoLog emits a message if the current level allows info output.
	InfoLog = func(message string) {
		if acceptLogLevel(LogLevel, LogLevelInfo) {
			_ = loggerInfo.Output(2, message)
		}
	}
	// WarnLog emits a message if the current level allows warning output.
	WarnLog = func(message string) {
		if acceptLogLevel(LogLevel, LogLevelWarning) {
			_ = loggerWarn.Output(2, message)
		}
	}
	// ErrorLog emits a message if the current level allows error output.
	ErrorLog = func(message string) {
		if acceptLogLevel(LogLevel, LogLevelError) {
			_ = loggerError.Output(2, message)
		}
	}
)

// InitLogger sets the package log level from its string name.
func InitLogger(level string) error {
	switch LoggerLevel(level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
		LogLevel = LoggerLevel(level)
	case "":
		LogLevel = LogLevelInfo
	default:
		return errors.Errorf("unsupported log level: %q", level)
	}
	return nil
}

func acceptLogLevel(current, target LoggerLevel) bool {
	rank := map[LoggerLevel]int{
		LogLevelDebug:   0,
		LogLevelInfo:    1,
		LogLevelWarning: 2,
		LogLevelError:   3,
	}
	cr, ok := rank[current]
	if !ok {
		cr = rank[LogLevelInfo]
	}
	return rank[target] >= cr
}
