package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/OCAP2/mailbox/internal/config"
	"github.com/OCAP2/mailbox/internal/influx"
	"github.com/OCAP2/mailbox/internal/storage"
)

// newRunID builds a timestamped run identifier.
func newRunID() string {
	return fmt.Sprintf("run_%s", time.Now().Format("20060102_150405"))
}

// openBackend builds and initializes the configured storage backend.
func openBackend() (storage.Backend, error) {
	cfg := config.GetStorageConfig()
	backend, err := storage.NewBackend(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := backend.Init(); err != nil {
		return nil, fmt.Errorf("initializing %s storage: %w", cfg.Type, err)
	}
	logger.Info().Str("type", cfg.Type).Msg("storage backend ready")
	return backend, nil
}

// closeBackend closes the backend and logs the export path if it wrote one.
func closeBackend(backend storage.Backend) {
	if err := backend.Close(); err != nil {
		logger.Error().Err(err).Msg("closing storage backend")
		return
	}
	if exp, ok := backend.(storage.Exportable); ok && exp.ExportedFilePath() != "" {
		logger.Info().Str("path", exp.ExportedFilePath()).Msg("run data exported")
	}
}

// openInflux connects the metric exporter when enabled, nil otherwise. A
// failed connection disables metrics rather than failing the run.
func openInflux() *influx.Manager {
	cfg := config.GetInfluxConfig()
	if !cfg.Enabled {
		return nil
	}

	backupPath := filepath.Join(
		config.GetString("logsDir"),
		fmt.Sprintf("influx_backup_%s.lp.gz", sessionStart.Format("20060102_150405")),
	)
	m := influx.NewManager(cfg, logger, backupPath)
	if err := m.Connect(); err != nil {
		logger.Error().Err(err).Msg("influx connect failed, metrics disabled")
		return nil
	}
	return m
}
