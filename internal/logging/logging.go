// Package logging sets up zerolog output for the mailbox demo binary and
// adapts it to the small logger interfaces used by other packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// Config selects log outputs and verbosity.
type Config struct {
	Level       string    // trace, debug, info, warn, error
	ConsoleOut  io.Writer // human-readable console output; nil disables
	FileOut     io.Writer // JSON output, typically the session log file; nil disables
	GraylogAddr string    // GELF UDP address; empty disables
}

// New builds the root logger. At least one output is always active: with
// nothing configured, JSON goes to stderr.
func New(cfg Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var writers []io.Writer
	if cfg.ConsoleOut != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        cfg.ConsoleOut,
			TimeFormat: time.RFC3339,
		})
	}
	if cfg.FileOut != nil {
		writers = append(writers, cfg.FileOut)
	}
	if cfg.GraylogAddr != "" {
		gelfWriter, err := gelf.NewWriter(cfg.GraylogAddr)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("connecting GELF writer: %w", err)
		}
		writers = append(writers, gelfWriter)
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()
	return logger, nil
}

// FilePath builds a session log file path using OS-appropriate separators.
func FilePath(logsDir, appName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", appName, sessionStart.Format("20060102_150405")),
	)
}
