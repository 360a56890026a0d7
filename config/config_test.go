package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	defer viper.Reset()
	SetupViper()

	cfg, err := New()
	assert.NoError(t, err)
	assert.False(t, cfg.Debug)
	assert.Equal(t, uint64(250), cfg.DefaultTimeout)
	assert.Equal(t, "https://c.amazon-adsystem.com/aax2/amzn_ads.js", cfg.Adapters["amazon"].ScriptURL)
	assert.Equal(t, "https://aax.amazon-adsystem.com/e/dtb/bid", cfg.Adapters["amazon"].Endpoint)
	assert.Empty(t, cfg.Metrics.Host)
}

func TestOverrides(t *testing.T) {
	defer viper.Reset()
	SetupViper()
	viper.Set("debug", true)
	viper.Set("adapters.amazon.endpoint", "http://localhost/bid")

	cfg, err := New()
	assert.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "http://localhost/bid", cfg.Adapters["amazon"].Endpoint)
}
