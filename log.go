package memhog

import (
	"fmt"
	"os"
	"strings"

	mlog "mosn.io/pkg/log"
)

// Logger is the part of mlog.ErrorLogger memhog writes diagnostics to.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// NewStdLogger returns a logger writing to stderr at the default level.
func NewStdLogger() mlog.ErrorLogger {
	return NewFileLog("", defaultLogLevel)
}

// NewFileLog returns a logger writing to path. An empty path means stderr.
func NewFileLog(path string, level mlog.Level) mlog.ErrorLogger {
	logger, err := mlog.GetOrCreateLogger(path, nil)
	if err != nil {
		// fall back to stderr
		fmt.Fprintf(os.Stderr, "memhog: create logger %q failed: %v\n", path, err)
		logger, _ = mlog.GetOrCreateLogger("", nil)
	}
	return &mlog.SimpleErrorLog{
		Logger: logger,
		Level:  level,
	}
}

var levelNames = map[string]mlog.Level{
	"FATAL": mlog.FATAL,
	"ERROR": mlog.ERROR,
	"WARN":  mlog.WARN,
	"INFO":  mlog.INFO,
	"DEBUG": mlog.DEBUG,
	"TRACE": mlog.TRACE,
}

// ParseLogLevel maps a level name such as "info" to an mlog.Level.
func ParseLogLevel(s string) (mlog.Level, error) {
	level, ok := levelNames[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return defaultLogLevel, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// CloseLogs flushes and closes every logger created through mlog.
func CloseLogs() {
	if err := mlog.CloseAll(); err != nil {
		fmt.Fprintln(os.Stderr, "memhog: close logs:", err)
	}
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}
