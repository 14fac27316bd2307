package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")

	cfg := Load()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "idcard", cfg.MongoDB)
	assert.Equal(t, 20, cfg.MongoMaxPool)
	assert.Equal(t, 5*time.Second, cfg.MongoSelectTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.RedisAddr)
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg := Load()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidateRejectsBadPool(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("MONGO_MAX_POOL", "0")

	err := Load().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_MAX_POOL")
}

func TestCORSOriginListParsing(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("CORS_ORIGINS", " https://admin.example.edu , http://localhost:3000 ,")

	cfg := Load()
	assert.Equal(t, []string{"https://admin.example.edu", "http://localhost:3000"}, cfg.CORSOrigins)
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("MONGO_SOCKET_TIMEOUT", "not-a-duration")

	cfg := Load()
	assert.Equal(t, 10*time.Second, cfg.MongoSocketTimeout)
}
