package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SYNC_FETCH_TIMEOUT", "SYNC_PRIMARY_SUBJECT", "DB_DRIVER", "OTEL_ENABLED", "INSTANCE_ID", "GO_ENV"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.Sync.FetchTimeout)
	assert.Equal(t, "Civil Law", cfg.Sync.PrimarySubject)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.NotEmpty(t, cfg.App.InstanceID)
	assert.False(t, cfg.Tracing.Enabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SYNC_FETCH_TIMEOUT", "3s")
	t.Setenv("SYNC_PRIMARY_SUBJECT", "Criminal Law")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("GO_ENV", "production")
	t.Setenv("INSTANCE_ID", "node-a")

	cfg := Load()

	assert.Equal(t, 3*time.Second, cfg.Sync.FetchTimeout)
	assert.Equal(t, "Criminal Law", cfg.Sync.PrimarySubject)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Tracing.Enabled)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "node-a", cfg.App.InstanceID)
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 10 * time.Second},
		{"250ms", 250 * time.Millisecond},
		{"7", 7 * time.Second},
		{"-5s", 10 * time.Second},
		{"soon", 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION", 10*time.Second))
		})
	}
}
