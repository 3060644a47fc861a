// Package logging builds the zap logger used across Mimic.
package logging

import (
	"fmt"
	"os"

	"github.com/Project-Sylos/Mimic/internal/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// New builds a zap logger writing to stderr from cfg
func New(cfg types.LoggerConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	c := zap.NewProductionConfig()
	c.Level = level
	c.Encoding = cfg.Encoding
	c.Sampling = nil
	c.OutputPaths = []string{"stderr"}
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Encoding == "console" && term.IsTerminal(int(os.Stderr.Fd())) {
		c.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	log, err := c.Build(
		zap.AddStacktrace(zap.NewAtomicLevelAt(zap.FatalLevel)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return log, nil
}
