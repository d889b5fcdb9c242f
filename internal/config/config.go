// Package config loads tool defaults from a config file and environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the tunable defaults for a validation run. Command-line
// flags override whatever is loaded here.
type Config struct {
	// BlockSizeKiB is the sampling block size in KiB.
	BlockSizeKiB int `mapstructure:"block_size_kib"`
	// NumBlocks is the number of areas the drive is divided into, one
	// sampling block each.
	NumBlocks int `mapstructure:"num_blocks"`
	// MapWidth is the column count of the terminal validation map.
	MapWidth int `mapstructure:"map_width"`
	// NoColor disables ANSI styling in the rendered output.
	NoColor bool `mapstructure:"no_color"`
}

// Load reads drivecap configuration using Viper: defaults, then an
// optional drivecap.yaml from the working directory, ~/.drivecap or
// /etc/drivecap, then DRIVECAP_* environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("drivecap")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.drivecap")
	v.AddConfigPath("/etc/drivecap")

	v.SetDefault("block_size_kib", 4)
	v.SetDefault("num_blocks", 576)
	v.SetDefault("map_width", 64)
	v.SetDefault("no_color", false)

	v.SetEnvPrefix("DRIVECAP")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file is fine, defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
