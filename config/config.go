package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Configuration for the client auction framework.
type Configuration struct {
	// Debug turns on framework-wide debug mode. Adapter debug overrides (such
	// as amazon's fake-ads flag) only survive a round when this is set.
	Debug          bool               `mapstructure:"debug"`
	DefaultTimeout uint64             `mapstructure:"default_timeout_ms"`
	Metrics        Metrics            `mapstructure:"metrics"`
	Adapters       map[string]Adapter `mapstructure:"adapters"`
}

// Adapter holds the per-bidder endpoints.
type Adapter struct {
	// Endpoint is the bidder's ad-lookup endpoint.
	Endpoint string `mapstructure:"endpoint"`
	// ScriptURL is the bidder's client script, for bidders bootstrapped by a
	// script load.
	ScriptURL string `mapstructure:"script_url"`
}

type Metrics struct {
	Host     string `mapstructure:"host"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// New uses viper to get our configuration.
func New() (*Configuration, error) {
	var c Configuration
	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("viper failed to unmarshal app config: %v", err)
	}
	return &c, nil
}

// SetupViper sets the config file location and the defaults. Call once before
// config.New.
func SetupViper() {
	viper.SetConfigName("pbc")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/config")

	viper.SetDefault("debug", false)
	viper.SetDefault("default_timeout_ms", 250)
	// no metrics configured by default (metrics{host|database|username|password})

	viper.SetDefault("adapters.amazon.script_url", "https://c.amazon-adsystem.com/aax2/amzn_ads.js")
	viper.SetDefault("adapters.amazon.endpoint", "https://aax.amazon-adsystem.com/e/dtb/bid")

	viper.ReadInConfig()
}
