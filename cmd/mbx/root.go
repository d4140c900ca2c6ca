package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/OCAP2/mailbox/internal/config"
	"github.com/OCAP2/mailbox/internal/logging"
)

var (
	configDir string
	logLevel  string

	sessionStart = time.Now()

	logger  zerolog.Logger
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "mbx",
	Short: "Bounded blocking channel demo pipelines",
	Long: `mbx runs demonstration pipelines built on the mailbox package:
rendezvous hand-offs, ping-pong round trips, and producer/consumer
worker pools with channel depth monitoring and run recording.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardown()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".",
		"directory containing mailbox.cfg.json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"override the configured log level")
}

// setup loads configuration and builds the session logger. A missing config
// file is fine: defaults apply.
func setup() error {
	if err := config.Load(configDir); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	level := config.GetString("logLevel")
	if logLevel != "" {
		level = logLevel
	}

	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := logging.FilePath(logsDir, "mbx", sessionStart)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening session log file: %w", err)
	}
	logFile = f

	var gelfAddr string
	if gl := config.GetGraylogConfig(); gl.Enabled {
		gelfAddr = gl.Address
	}

	logger, err = logging.New(logging.Config{
		Level:       level,
		ConsoleOut:  os.Stdout,
		FileOut:     logFile,
		GraylogAddr: gelfAddr,
	})
	if err != nil {
		return err
	}

	logger.Info().
		Str("version", CurrentVersion).
		Str("buildDate", BuildDate).
		Msg("mbx starting")
	return nil
}

func teardown() {
	if logFile != nil {
		_ = logFile.Close()
	}
}
