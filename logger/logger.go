// Package logger provides the coloured, prefixed leveled logger every component writes through.
package logger

import (
	"errors"
	"io"

	"github.com/beka-birhanu/vinom-agent/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006/01/02 15:04:05"

var (
	ErrEmptyName = errors.New("logger name is empty")
	ErrNilWriter = errors.New("logger writer is nil")
)

var levelLabels = map[zapcore.Level]string{
	zapcore.DebugLevel: config.LogDebugColor + "[DEBUG]" + config.LogColorReset,
	zapcore.InfoLevel:  config.LogInfoColor + "[INFO]" + config.LogColorReset,
	zapcore.WarnLevel:  config.LogWarningColor + "[WARNING]" + config.LogColorReset,
	zapcore.ErrorLevel: config.LogErrorColor + "[ERROR]" + config.LogColorReset,
}

// Logger writes console lines of the form "time [LEVEL] [NAME] message".
type Logger struct {
	level zap.AtomicLevel
	zl    *zap.Logger
}

// New creates a logger named name. Its name is printed in color.
func New(name, color string, w io.Writer) (*Logger, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if w == nil {
		return nil, ErrNilWriter
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:    "time",
		LevelKey:   "level",
		NameKey:    "logger",
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
		EncodeTime: zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			label, ok := levelLabels[l]
			if !ok {
				label = "[" + l.CapitalString() + "]"
			}
			enc.AppendString(label)
		},
		EncodeName: func(n string, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(color + "[" + n + "]" + config.LogColorReset)
		},
		ConsoleSeparator: " ",
	})
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)

	return &Logger{
		level: level,
		zl:    zap.New(core).Named(name),
	}, nil
}

// SetDebug turns debug output on or off. It is off by default.
func (l *Logger) SetDebug(on bool) {
	if on {
		l.level.SetLevel(zapcore.DebugLevel)
		return
	}
	l.level.SetLevel(zapcore.InfoLevel)
}

func (l *Logger) Info(msg string) {
	l.zl.Info(msg)
}

func (l *Logger) Warning(msg string) {
	l.zl.Warn(msg)
}

func (l *Logger) Error(msg string) {
	l.zl.Error(msg)
}

func (l *Logger) Debug(msg string) {
	l.zl.Debug(msg)
}

// Zap returns the underlying logger for callers that want typed fields.
func (l *Logger) Zap() *zap.Logger {
	return l.zl
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}
