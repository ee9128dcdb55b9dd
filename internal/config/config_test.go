package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ESP_TOKEN", "")
	t.Setenv("STATUS_POLL_INTERVAL", "")
	t.Setenv("CHANNEL_ID", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()
	assert.Equal(t, "", cfg.ESPToken)
	assert.Equal(t, DefaultStatusPollIntervalSec, cfg.StatusPollInterval)
	assert.Equal(t, int64(0), cfg.ChannelID)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ESP_TOKEN", "abc")
	t.Setenv("STATUS_POLL_INTERVAL", "1800")
	t.Setenv("CHANNEL_ID", "-1001234567890")
	t.Setenv("PORT", "9000")

	cfg := Load()
	assert.Equal(t, "abc", cfg.ESPToken)
	assert.Equal(t, 1800, cfg.StatusPollInterval)
	assert.Equal(t, int64(-1001234567890), cfg.ChannelID)
	assert.Equal(t, "9000", cfg.Port)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("STATUS_POLL_INTERVAL", "soon")
	t.Setenv("CHANNEL_ID", "channel")

	cfg := Load()
	assert.Equal(t, DefaultStatusPollIntervalSec, cfg.StatusPollInterval)
	assert.Equal(t, int64(0), cfg.ChannelID)
}

func TestLoadRejectsNonPositivePollInterval(t *testing.T) {
	for _, v := range []string{"0", "-60"} {
		t.Setenv("STATUS_POLL_INTERVAL", v)

		cfg := Load()
		assert.Equal(t, DefaultStatusPollIntervalSec, cfg.StatusPollInterval, v)
	}
}
