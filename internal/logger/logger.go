package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the sugared surface the mission journal writes through.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Sync() error
}

type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
}

// NewJournal appends one JSON line per entry to config.Path. A disabled
// journal discards everything.
func NewJournal(config JournalConfig) (Logger, error) {
	if !config.Enabled || config.Path == "" {
		return NewNopJournal(), nil
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Encoding = "json"
	zapConfig.EncoderConfig = encoderConfig()
	zapConfig.OutputPaths = []string{config.Path}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	zapConfig.Sampling = nil
	zapConfig.DisableCaller = true
	zapConfig.DisableStacktrace = true

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named("mission").Sugar(), nil
}

func NewNopJournal() Logger {
	return zap.NewNop().Sugar()
}

// NewJournalFromCore is used to point the journal at a custom sink.
func NewJournalFromCore(core zapcore.Core) Logger {
	return zap.New(core).Named("mission").Sugar()
}
