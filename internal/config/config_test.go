package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mailbox.cfg.json"), []byte(content), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"pipeline": { "capacity": 16, "workers": 8 },
		"storage": { "type": "sqlite" }
	}`)

	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, 16, viper.GetInt("pipeline.capacity"))
	assert.Equal(t, 8, viper.GetInt("pipeline.workers"))
	assert.Equal(t, "sqlite", viper.GetString("storage.type"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{}`)
	require.NoError(t, Load(dir))

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./logs", viper.GetString("logsDir"))
	assert.Equal(t, 5, viper.GetInt("pipeline.capacity"))
	assert.Equal(t, 4, viper.GetInt("pipeline.workers"))
	assert.Equal(t, 2, viper.GetInt("pipeline.producers"))
	assert.Equal(t, 1000, viper.GetInt("pipeline.messages"))
	assert.Equal(t, "1s", viper.GetString("pipeline.sampleInterval"))
	assert.Equal(t, "memory", viper.GetString("storage.type"))
	assert.Equal(t, "./runs", viper.GetString("storage.memory.outputDir"))
	assert.Equal(t, false, viper.GetBool("storage.memory.compressOutput"))
	assert.Equal(t, "./runs/mailbox.db", viper.GetString("storage.sqlite.path"))
	assert.Equal(t, "localhost", viper.GetString("storage.postgres.host"))
	assert.Equal(t, "5432", viper.GetString("storage.postgres.port"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
	assert.Equal(t, "mailbox-metrics", viper.GetString("influx.org"))
	assert.Equal(t, false, viper.GetBool("graylog.enabled"))
	assert.Equal(t, "localhost:12201", viper.GetString("graylog.address"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetString(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	assert.Equal(t, "testValue", GetString("testKey"))
}

func TestGetStorageConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"storage": {
			"type": "postgres",
			"memory": { "outputDir": "/tmp/out", "compressOutput": true },
			"sqlite": { "path": "/tmp/test.db" },
			"postgres": { "host": "10.0.0.1", "port": "5433", "database": "runs" }
		}
	}`)
	require.NoError(t, Load(dir))

	cfg := GetStorageConfig()
	assert.Equal(t, "postgres", cfg.Type)
	assert.Equal(t, "/tmp/out", cfg.Memory.OutputDir)
	assert.Equal(t, true, cfg.Memory.CompressOutput)
	assert.Equal(t, "/tmp/test.db", cfg.SQLite.Path)
	assert.Equal(t, "10.0.0.1", cfg.Postgres.Host)
	assert.Equal(t, "5433", cfg.Postgres.Port)
	assert.Equal(t, "runs", cfg.Postgres.Database)
	// Defaults fill what the file omits.
	assert.Equal(t, "postgres", cfg.Postgres.Username)
}

func TestGetInfluxConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"influx": { "enabled": true, "host": "influx.local", "token": "secret" }
	}`)
	require.NoError(t, Load(dir))

	cfg := GetInfluxConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "http", cfg.Protocol)
	assert.Equal(t, "influx.local", cfg.Host)
	assert.Equal(t, "8086", cfg.Port)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "mailbox_metrics", cfg.Bucket)
}

func TestGetGraylogConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"graylog": { "enabled": true, "address": "gl.local:12201" }
	}`)
	require.NoError(t, Load(dir))

	cfg := GetGraylogConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "gl.local:12201", cfg.Address)
}

func TestGetPipelineConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"pipeline": {
			"capacity": 0,
			"workers": 2,
			"producers": 3,
			"messages": 25,
			"sampleInterval": "250ms"
		}
	}`)
	require.NoError(t, Load(dir))

	cfg := GetPipelineConfig()
	assert.Equal(t, 0, cfg.Capacity)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 3, cfg.Producers)
	assert.Equal(t, 25, cfg.Messages)
	assert.Equal(t, 250*time.Millisecond, cfg.SampleInterval)
}
