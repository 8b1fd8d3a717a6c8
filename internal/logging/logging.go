// Package logging owns the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"

	// DefaultLogFormat is the format used until SetLogFormat is called.
	DefaultLogFormat = LogFormatText

	// DefaultLogLevel is the default log level we want to use for our logrus.Formatter
	DefaultLogLevel logrus.Level = logrus.InfoLevel
)

// DefaultLogger is the base logrus logger. It is different from the logrus
// default to avoid external dependencies from writing out unexpectedly
var DefaultLogger = initializeDefaultLogger()

func initializeDefaultLogger() (logger *logrus.Logger) {
	logger = logrus.New()
	logger.SetFormatter(GetFormatter(DefaultLogFormat))
	logger.SetLevel(DefaultLogLevel)
	return
}

// GetFormatter returns a configured logrus.Formatter with some specific values
// we want to have
func GetFormatter(format LogFormat) logrus.Formatter {
	switch format {
	case LogFormatJSON:
		return &logrus.JSONFormatter{
			DisableTimestamp: true,
		}
	default:
		return &logrus.TextFormatter{
			DisableTimestamp: true,
			DisableColors:    true,
		}
	}
}

// ParseLogFormat validates a user supplied format name.
func ParseLogFormat(s string) (LogFormat, error) {
	switch f := LogFormat(strings.ToLower(s)); f {
	case LogFormatText, LogFormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("incorrect log format %q, expected 'text' or 'json'", s)
}

// SetLogFormat updates the DefaultLogger with a new LogFormat
func SetLogFormat(format LogFormat) {
	DefaultLogger.SetFormatter(GetFormatter(format))
}

// SetLogLevel updates the DefaultLogger with a new logrus.Level
func SetLogLevel(level logrus.Level) {
	DefaultLogger.SetLevel(level)
}

// SetLogLevelToDebug updates the DefaultLogger with the logrus.DebugLevel
func SetLogLevelToDebug() {
	DefaultLogger.SetLevel(logrus.DebugLevel)
}

// SetOutput redirects the DefaultLogger.
func SetOutput(w io.Writer) {
	DefaultLogger.SetOutput(w)
}
