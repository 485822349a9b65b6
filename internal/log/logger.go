package log

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"f3os/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single structured key/value attached to a log line
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Option configures a Logger
type Option func(*logrus.Logger)

// WithOutput sends log lines to w
func WithOutput(w io.Writer) Option {
	return func(l *logrus.Logger) {
		l.SetOutput(w)
	}
}

// WithJSON switches to one JSON object per line
func WithJSON() Option {
	return func(l *logrus.Logger) {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	}
}

type Logger struct {
	entry *logrus.Entry
}

func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05",
		DisableColors:    true,
		QuoteEmptyFields: true,
	})
	// Debug filtering happens in Debug/Debugf so SetDebug applies to every logger.
	base.SetLevel(logrus.DebugLevel)
	for _, opt := range opts {
		opt(base)
	}
	return &Logger{entry: logrus.NewEntry(base)}
}

// Configure replaces the package logger
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// SetOutput redirects the package logger
func SetOutput(w io.Writer) {
	logger.entry.Logger.SetOutput(w)
}

func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// IsDebug reports whether debug lines are emitted
func IsDebug() bool {
	return isDebug.Load()
}

// With returns a child logger carrying the given fields
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data)}
}

func (l *Logger) Info(msg string)                           { l.entry.Info(msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warn(msg string)                           { l.entry.Warn(msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Error(msg string)                          { l.entry.Error(msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

func (l *Logger) Debug(msg string) {
	if isDebug.Load() {
		l.entry.Debug(msg)
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		l.entry.Debugf(format, args...)
	}
}

// LogWithFields returns the package logger with fields attached
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError attaches err and whatever its concrete type knows about itself
func LogWithError(err error) *Logger {
	if err == nil {
		return logger
	}
	fields := []Field{F("error", err.Error()), F("error_kind", int(errors.KindOf(err)))}

	var fileErr *errors.FileError
	var configErr *errors.ConfigError
	var cmdErr *errors.CommandError
	switch {
	case errors.As(err, &fileErr):
		fields = append(fields, F("path", fileErr.Path()))
	case errors.As(err, &configErr):
		fields = append(fields, F("param", configErr.Param()))
	case errors.As(err, &cmdErr):
		fields = append(fields, F("verb", cmdErr.Verb()))
	}
	return logger.With(fields...)
}

// LogError logs err at error level with msg
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.Debug(msg)
		return
	}
	logger.Debugf(argsFormat(msg, len(args)), args...)
}

// argsFormat appends one verb per argument after msg
func argsFormat(msg string, n int) string {
	return msg + ":" + strings.Repeat(" %v", n)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Error logs an error message with arguments
func Error(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.Error(msg)
		return
	}
	logger.Errorf(argsFormat(msg, len(args)), args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Warn logs a warning message with arguments
func Warn(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.Warn(msg)
		return
	}
	logger.Warnf(argsFormat(msg, len(args)), args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}
