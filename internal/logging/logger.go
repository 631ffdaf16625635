package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config holds logging configuration.
type Config struct {
	Level  string
	Format string
}

// NewDefaultConfig returns info-level console output.
func NewDefaultConfig() Config {
	return Config{Level: "info", Format: FormatConsole}
}

// Validate checks the level and format values.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	switch c.Format {
	case FormatConsole, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid log format %q: must be %q or %q", c.Format, FormatConsole, FormatJSON)
	}
}

// New creates a logger writing to w. A nil w means stderr.
func New(cfg Config, w io.Writer) (*zap.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	level, _ := zapcore.ParseLevel(cfg.Level)

	if w == nil {
		w = os.Stderr
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), zapcore.AddSync(w), level)
	return zap.New(core), nil
}

// newEncoder creates a JSON or console encoder.
func newEncoder(format string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == FormatConsole {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}

// Sync flushes the logger, ignoring the errors stdout/stderr return on
// Linux when they are not regular files.
func Sync(l *zap.Logger) error {
	err := l.Sync()
	if err != nil && isStdoutSyncError(err) {
		return nil
	}
	return err
}

func isStdoutSyncError(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EBADF)
}
