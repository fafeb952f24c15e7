// Package logger builds the logr.Logger used by the repr command, backed by
// a zap JSON logger.
package logger

import (
	"errors"
	"io"
	"strings"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	TimeStampKey = "timestamp"
	MessageKey   = "message"
)

// Logger pairs the logr.Logger handed to the library with the zap logger
// that must be synced before exit.
type Logger struct {
	logr.Logger
	zap *zap.Logger
}

// New returns a logger writing JSON lines to w. Verbosity 0 logs info
// messages, each additional level enables logr's V(n) messages.
func New(w io.Writer, verbosity int) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	// zapr maps V(n) to zap level -n
	level := zapcore.Level(-max(verbosity, 0))
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(level),
	)
	zl := zap.New(core, zap.AddStacktrace(zap.ErrorLevel))
	return &Logger{Logger: zapr.NewLogger(zl), zap: zl}
}

// Sync flushes buffered entries, ignoring the errors returned when the
// output is a terminal or a pipe.
func (l *Logger) Sync() error {
	if err := l.zap.Sync(); err != nil && !isIgnorableSyncError(err) {
		return err
	}
	return nil
}

func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}
