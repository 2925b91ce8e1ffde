package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"eventhire/internal/config"
)

// New builds the process logger. Production JSON output is used in
// prod-like environments or when JSON is forced, console output otherwise.
func New(appEnv string, cfg config.LoggingConfig) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.JSON || config.IsProdLike(appEnv) {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.With(zap.String("env", appEnv)), nil
}
