// Package config loads the demo binary configuration from a JSON file via
// viper and exposes typed views of the sections other packages consume.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	Type     string // memory, sqlite or postgres
	Memory   MemoryConfig
	SQLite   SQLiteConfig
	Postgres PostgresConfig
}

// MemoryConfig holds in-memory/JSON storage backend settings.
type MemoryConfig struct {
	OutputDir      string
	CompressOutput bool
}

// SQLiteConfig holds SQLite storage backend settings.
type SQLiteConfig struct {
	Path string
}

// PostgresConfig holds Postgres storage backend settings.
type PostgresConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// InfluxConfig holds InfluxDB metric output settings.
type InfluxConfig struct {
	Enabled  bool
	Protocol string
	Host     string
	Port     string
	Token    string
	Org      string
	Bucket   string
}

// GraylogConfig holds GELF log forwarding settings.
type GraylogConfig struct {
	Enabled bool
	Address string
}

// PipelineConfig holds the knobs for the demo scenarios.
type PipelineConfig struct {
	Capacity       int           // closable job channel capacity
	Workers        int           // consumer count for jobs/soak
	Producers      int           // producer count for soak
	Messages       int           // messages per producer for soak
	SampleInterval time.Duration // monitor sampling interval
}

// Load reads configuration from a JSON file in configDir and sets default
// values for everything the file omits.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("pipeline.capacity", 5)
	viper.SetDefault("pipeline.workers", 4)
	viper.SetDefault("pipeline.producers", 2)
	viper.SetDefault("pipeline.messages", 1000)
	viper.SetDefault("pipeline.sampleInterval", "1s")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./runs")
	viper.SetDefault("storage.memory.compressOutput", false)
	viper.SetDefault("storage.sqlite.path", "./runs/mailbox.db")
	viper.SetDefault("storage.postgres.host", "localhost")
	viper.SetDefault("storage.postgres.port", "5432")
	viper.SetDefault("storage.postgres.username", "postgres")
	viper.SetDefault("storage.postgres.password", "postgres")
	viper.SetDefault("storage.postgres.database", "mailbox")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "mailbox-metrics")
	viper.SetDefault("influx.bucket", "mailbox_metrics")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetConfigName("mailbox.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetStorageConfig returns the storage section.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("storage.postgres.host"),
			Port:     viper.GetString("storage.postgres.port"),
			Username: viper.GetString("storage.postgres.username"),
			Password: viper.GetString("storage.postgres.password"),
			Database: viper.GetString("storage.postgres.database"),
		},
	}
}

// GetInfluxConfig returns the influx section.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:  viper.GetBool("influx.enabled"),
		Protocol: viper.GetString("influx.protocol"),
		Host:     viper.GetString("influx.host"),
		Port:     viper.GetString("influx.port"),
		Token:    viper.GetString("influx.token"),
		Org:      viper.GetString("influx.org"),
		Bucket:   viper.GetString("influx.bucket"),
	}
}

// GetGraylogConfig returns the graylog section.
func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}

// GetPipelineConfig returns the pipeline section.
func GetPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Capacity:       viper.GetInt("pipeline.capacity"),
		Workers:        viper.GetInt("pipeline.workers"),
		Producers:      viper.GetInt("pipeline.producers"),
		Messages:       viper.GetInt("pipeline.messages"),
		SampleInterval: viper.GetDuration("pipeline.sampleInterval"),
	}
}
