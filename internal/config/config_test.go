package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads values from the yml file", func(t *testing.T) {
		// Given: a config file overriding a few values
		path := writeConfig(t, `
log-level: debug
http-port: "8080"
rooms:
  code-length: 8
  sweep-interval: 1m
redis:
  enabled: true
  host: cache
`)

		// When: loading it
		conf, err := Load(path)

		// Then: file values win and the rest falls back to defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, 8, conf.Rooms.CodeLength)
		assert.Equal(t, time.Minute, conf.Rooms.SweepInterval)
		assert.Equal(t, time.Hour, conf.Rooms.EmptyRetention)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Falls back to environment when the file is missing", func(t *testing.T) {
		// Given: no config file and a port in the environment
		t.Setenv("PORT", "4000")
		t.Setenv("ROOM_EMPTY_RETENTION", "30m")

		// When: loading a path that does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: environment and defaults are used
		require.NoError(t, err)
		assert.Equal(t, "4000", conf.HTTPPort)
		assert.Equal(t, 6, conf.Rooms.CodeLength)
		assert.Equal(t, 5*time.Minute, conf.Rooms.SweepInterval)
		assert.Equal(t, 30*time.Minute, conf.Rooms.EmptyRetention)
		assert.Equal(t, []string{"*"}, conf.CORS.AllowedOrigins)
		assert.False(t, conf.Redis.Enabled)
	})

	t.Run("Rejects a ping interval longer than the read timeout", func(t *testing.T) {
		// Given: a misconfigured keepalive
		path := writeConfig(t, `
websocket:
  ping-interval: 2m
  read-timeout: 1m
`)

		// When: loading it
		_, err := Load(path)

		// Then: validation fails
		require.ErrorIs(t, err, ErrInvalidTimeouts)
	})
}

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	path := writeConfig(t, "rooms:\n  code-length: -1\n")

	assert.Panics(t, func() {
		MustLoad(path)
	})
}

func TestValidate_CodeLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		length := rapid.IntRange(-100, 100).Draw(t, "length")

		conf := validConfig()
		conf.Rooms.CodeLength = length

		err := conf.Validate()
		if length > 0 && err != nil {
			t.Fatalf("expected length %d to be valid, got %v", length, err)
		}
		if length <= 0 && err == nil {
			t.Fatalf("expected length %d to be rejected", length)
		}
	})
}

func TestValidate_WebSocketLimits(t *testing.T) {
	conf := validConfig()
	conf.WebSocket.SendBuffer = 0

	require.ErrorIs(t, conf.Validate(), ErrInvalidLimits)

	conf = validConfig()
	conf.WebSocket.MaxMessageSize = -1

	require.ErrorIs(t, conf.Validate(), ErrInvalidLimits)
	require.NoError(t, validConfig().Validate())
}

func validConfig() *Config {
	return &Config{
		Rooms: Rooms{
			CodeLength:     6,
			SweepInterval:  5 * time.Minute,
			EmptyRetention: time.Hour,
		},
		WebSocket: WebSocket{
			PingInterval:   30 * time.Second,
			ReadTimeout:    time.Minute,
			WriteTimeout:   10 * time.Second,
			MaxMessageSize: 4096,
			SendBuffer:     64,
		},
	}
}
