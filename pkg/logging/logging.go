package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger writing to stdout.
// Valid levels: debug, info, warn, error. Valid formats: json, console.
func New(level, format string) (logger *zap.Logger, err error) {
	logger, err = NewWithWriter(level, format, os.Stdout)
	return logger, err
}

// NewWithWriter builds a logger writing to w.
func NewWithWriter(level, format string, w io.Writer) (logger *zap.Logger, err error) {
	var zapLevel zapcore.Level
	err = zapLevel.UnmarshalText([]byte(level))
	if err != nil {
		err = errors.Wrapf(err, "invalid log level %q", level)
		return logger, err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	switch format {
	case "", "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		err = errors.Errorf("invalid log format %q", format)
		return logger, err
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zapLevel)
	logger = zap.New(core, zap.AddCaller())

	return logger, err
}
