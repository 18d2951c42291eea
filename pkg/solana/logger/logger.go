package logger

import (
	"os"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Logger is the structured logger shared by the monitor service and the admin tooling.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Criticalw(msg string, keysAndValues ...interface{})
	Fatalw(msg string, keysAndValues ...interface{})

	Debugf(format string, values ...interface{})
	Infof(format string, values ...interface{})
	Warnf(format string, values ...interface{})
	Errorf(format string, values ...interface{})

	With(keysAndValues ...interface{}) Logger
	Sync() error
}

// Config controls how New builds the zap core.
type Config struct {
	Level       zapcore.Level
	JSONConsole bool
}

var _ Logger = (*zapLogger)(nil)

type zapLogger struct {
	*zap.SugaredLogger
}

// New returns a Logger writing to stderr.
func New(cfg Config) (Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.Level)
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.Encoding = "console"
	if cfg.JSONConsole {
		zcfg.Encoding = "json"
	}
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	l, err := zcfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &zapLogger{l.Sugar()}, nil
}

// NewFromEnv reads LOG_LEVEL and LOG_JSON and falls back to info/console.
func NewFromEnv() (Logger, error) {
	cfg := Config{Level: zapcore.InfoLevel}
	if lvl, ok := os.LookupEnv("LOG_LEVEL"); ok {
		if err := cfg.Level.UnmarshalText([]byte(lvl)); err != nil {
			return nil, err
		}
	}
	if v, ok := os.LookupEnv("LOG_JSON"); ok && (v == "true" || v == "1") {
		cfg.JSONConsole = true
	}
	return New(cfg)
}

// Test returns a Logger that writes through t.Log.
func Test(t testing.TB) Logger {
	return &zapLogger{zaptest.NewLogger(t).Sugar()}
}

// Nop discards everything.
func Nop() Logger {
	return &zapLogger{zap.NewNop().Sugar()}
}

// Criticalw logs at DPanic level, which only panics in development builds.
func (l *zapLogger) Criticalw(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.DPanicw(msg, keysAndValues...)
}

func (l *zapLogger) With(keysAndValues ...interface{}) Logger {
	return &zapLogger{l.SugaredLogger.With(keysAndValues...)}
}
