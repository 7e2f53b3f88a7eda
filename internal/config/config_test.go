package config

import (
	"os"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("CHATBOT_MODE", "online")
	t.Setenv("RECOGNITION_MIN_CONFIDENCE", "80.5")
	t.Setenv("APP_HOST", "waste.example.com")

	cfg := Load()

	assert.Equal(t, "waste.example.com", cfg.AppHost)
	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "online", cfg.Assistant.Mode)
	assert.Equal(t, 80.5, cfg.Recognition.MinConfidence)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CHATBOT_MODE", "")
	t.Setenv("RECOGNITION_PROVIDER", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("APP_HOST", "")

	cfg := Load()

	assert.Empty(t, cfg.AppHost, "swagger falls back to the serving host")
	assert.Equal(t, "auto", cfg.Assistant.Mode)
	assert.Equal(t, "none", cfg.Recognition.Provider)
	assert.Equal(t, 5*1024*1024, cfg.MaxUploadBytes)
	assert.Equal(t, 10, cfg.Recognition.MaxLabels)
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{Timezone: "Asia/Jakarta"}
	loc := cfg.Location()
	assert.Equal(t, "Asia/Jakarta", loc.String())

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvFloat(t *testing.T) {
	key := "TEST_FLOAT_VAR"

	os.Setenv(key, "0.25")
	assert.Equal(t, 0.25, getEnvFloat(key, 1))

	os.Setenv(key, "abc")
	assert.Equal(t, 1.0, getEnvFloat(key, 1))

	os.Unsetenv(key)
	assert.Equal(t, 1.0, getEnvFloat(key, 1))
}
