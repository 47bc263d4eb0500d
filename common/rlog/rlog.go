package rlog

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger = newLogger()
)

// errors
var (
	ErrInvalidLevel = errors.New("invalid log level")
)

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return l.Sugar()
}

// SetLevel changes the minimum level such as "debug", "info", "warn"
func SetLevel(lv string) error {
	if err := level.UnmarshalText([]byte(lv)); err != nil {
		return errors.Wrap(ErrInvalidLevel, lv)
	}
	return nil
}

// Replace swaps the underlying logger, tests use it with zaptest or zap.NewNop
func Replace(l *zap.Logger) {
	logger = l.Sugar()
}

// With returns a logger carrying the key value pairs
func With(kv ...interface{}) *zap.SugaredLogger {
	return logger.With(kv...)
}

// Println calls l.Output to print to the logger.
func Println(v ...interface{}) {
	logger.Info(fmt.Sprintln(v...))
}

// Printf prints the formatted message at info level
func Printf(format string, v ...interface{}) {
	logger.Infof(format, v...)
}

// Debugw logs a message with key value pairs at debug level
func Debugw(msg string, kv ...interface{}) {
	logger.Debugw(msg, kv...)
}

// Infow logs a message with key value pairs at info level
func Infow(msg string, kv ...interface{}) {
	logger.Infow(msg, kv...)
}

// Errorw logs a message with key value pairs at error level
func Errorw(msg string, kv ...interface{}) {
	logger.Errorw(msg, kv...)
}

// Fatal is equivalent to Println() followed by a call to os.Exit(1).
func Fatal(v ...interface{}) {
	logger.Fatal(v...)
}

// Sync flushes buffered entries
func Sync() error {
	return logger.Sync()
}
