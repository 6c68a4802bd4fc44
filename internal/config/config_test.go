package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("REMINDER_INTERVAL", "")
	t.Setenv("REPORTS_BUCKET", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, time.Hour, cfg.ReminderInterval)
	assert.Equal(t, 24*time.Hour, cfg.ReminderWindow)
	assert.False(t, cfg.Reports.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REMINDER_INTERVAL", "15m")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("REPORTS_BUCKET", "crm-reports")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 15*time.Minute, cfg.ReminderInterval)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.True(t, cfg.Reports.Enabled())
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvAsDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("JWT_TTL", "not-a-duration")
	assert.Equal(t, 24*time.Hour, getEnvAsDuration("JWT_TTL", 24*time.Hour))

	t.Setenv("JWT_TTL", "-5m")
	assert.Equal(t, 24*time.Hour, getEnvAsDuration("JWT_TTL", 24*time.Hour))
}

func TestGetTimezone(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want string
	}{
		{"empty", "", "America/Sao_Paulo"},
		{"valid", "America/Manaus", "America/Manaus"},
		{"utc", "UTC", "UTC"},
		{"unknown", "Brasil/Centro", "America/Sao_Paulo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TIMEZONE", tt.env)
			assert.Equal(t, tt.want, Load().Timezone)
		})
	}
}
