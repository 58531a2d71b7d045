package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin wrapper around Uber's Zap logger.
// The underlying zap.Logger is exposed for call sites that need
// Zap-specific functionality, but most logging should go through the
// wrapper methods so entries keep a uniform shape.
type Logger struct {
	// Zap is the underlying zap.Logger instance.
	Zap *zap.Logger
}

// NewLogger builds a configured Zap logger.
//
// The logger is configured with:
//   - JSON encoding for structured logging (console in Development mode)
//   - ISO8601 timestamps under the "timestamp" key
//   - Capital level encoding ("INFO", "ERROR")
//   - Process id and service name as initial fields
//   - Caller information, output to stderr
//
// If Zap fails to build the configuration, the process terminates; a
// component that cannot log is not worth starting.
func NewLogger(cfg Config) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	logLevel := zap.InfoLevel
	switch cfg.Level {
	case Debug:
		logLevel = zap.DebugLevel
	case Info:
		logLevel = zap.InfoLevel
	case Warning:
		logLevel = zap.WarnLevel
	case Error:
		logLevel = zap.ErrorLevel
	}

	encoding := "json"
	if cfg.Development {
		encoding = "console"
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(logLevel),
		Development:       cfg.Development,
		DisableCaller:     false,
		DisableStacktrace: cfg.Development,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	zl, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		log.Fatal(err)
	}

	return &Logger{Zap: zl}
}

// Debug logs a message at debug level with optional structured fields.
func (l *Logger) Debug(msg string, err error, fields map[string]interface{}) {
	l.Zap.Debug(msg, l.zapFields(err, fields)...)
}

// Info logs a message at info level with optional structured fields.
func (l *Logger) Info(msg string, err error, fields map[string]interface{}) {
	l.Zap.Info(msg, l.zapFields(err, fields)...)
}

// Warn logs a message at warning level with optional structured fields.
func (l *Logger) Warn(msg string, err error, fields map[string]interface{}) {
	l.Zap.Warn(msg, l.zapFields(err, fields)...)
}

// Error logs a message at error level with optional structured fields.
func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	l.Zap.Error(msg, l.zapFields(err, fields)...)
}

func (l *Logger) zapFields(err error, fields map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+1)
	if err != nil {
		out = append(out, zap.Error(err))
	}
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
