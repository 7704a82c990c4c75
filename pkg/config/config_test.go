package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SofyMastertech/Gestion-Stock-CMA/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "gestion-stock-cma", cfg.App.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.HTTP.IdleTimeout)
	assert.True(t, cfg.Swagger.Enabled)
	assert.Equal(t, "./docs/swagger.json", cfg.Swagger.FilePath)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_WRITE_TIMEOUT_SECONDS", "30")
	t.Setenv("SWAGGER_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	assert.False(t, cfg.Swagger.Enabled)
}

func TestLoad_ValoresInvalidos(t *testing.T) {
	t.Setenv("SWAGGER_ENABLED", "quizás")
	t.Setenv("HTTP_READ_TIMEOUT_SECONDS", "diez")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Swagger.Enabled, "un booleano ilegible conserva el valor por defecto")
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)

	t.Setenv("HTTP_PORT", "70000")
	_, err = config.Load()
	assert.Error(t, err)
}
