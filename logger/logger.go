package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

var (
	logger *zap.Logger
	sugar  *zap.SugaredLogger
	once   sync.Once
	level  = zap.NewAtomicLevel()
)

// Init initializes the global logger with the given level and encoding.
// Valid levels: debug, info, warn, error, dpanic, panic, fatal
// Valid formats: json (default), console
func Init(level, format string) {
	once.Do(func() {
		build(level, format, os.Stdout)
	})
}

func build(lvl, format string, out io.Writer) {
	level.SetLevel(parseLevel(lvl))

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
	if format == FormatConsole {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), level)

	logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Named("rice-survey")
	sugar = logger.Sugar()
}

func parseLevel(lvl string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(strings.ToLower(lvl))); err != nil {
		return zap.InfoLevel
	}
	return zapLevel
}

// SetLevel changes the level of the running logger. Unknown levels fall back to info.
func SetLevel(lvl string) {
	level.SetLevel(parseLevel(lvl))
}

// Sugar returns the global sugared logger, initializing it at info level if needed
func Sugar() *zap.SugaredLogger {
	if sugar == nil {
		Init("info", FormatJSON)
	}
	return sugar
}

// GetLogger returns the global zap logger
func GetLogger() *zap.Logger {
	if logger == nil {
		Init("info", FormatJSON)
	}
	return logger
}

// With returns a child sugared logger carrying the given key/value pairs.
// The caller skip of the global logger is removed so call sites are reported correctly.
func With(keysAndValues ...interface{}) *zap.SugaredLogger {
	return GetLogger().WithOptions(zap.AddCallerSkip(-1)).Sugar().With(keysAndValues...)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

func Debug(args ...interface{}) {
	Sugar().Debug(args...)
}

func Info(args ...interface{}) {
	Sugar().Info(args...)
}

func Warn(args ...interface{}) {
	Sugar().Warn(args...)
}

func Error(args ...interface{}) {
	Sugar().Error(args...)
}

func Debugf(template string, args ...interface{}) {
	Sugar().Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	Sugar().Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	Sugar().Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	Sugar().Errorf(template, args...)
}
