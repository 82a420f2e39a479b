// Package appconfig loads jif's run-level tunables (capture FPS, GIF
// quality knobs, tail duration) from an optional config file, following
// the same defaults-then-override shape soockee-pixel-bot-go/config's
// Config/DefaultConfig/Validate carries, but sourced through viper
// instead of a hand-rolled JSON reader.
package appconfig

import (
	"errors"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Config holds the tunables a jif run can load from config.yaml. CLI
// flags in cmd/jif always take precedence over these values; these in
// turn take precedence over the zero value by way of Default.
type Config struct {
	FPS             int     `mapstructure:"fps"`
	PaletteSize     int     `mapstructure:"palette_size"`
	UseDithering    bool    `mapstructure:"use_dithering"`
	UseLocalPalette bool    `mapstructure:"use_local_palette"`
	TailSeconds     float64 `mapstructure:"tail_seconds"`
	OutputPath      string  `mapstructure:"output_path"`
}

// Default returns the built-in tunables used when no config file exists.
func Default() Config {
	return Config{
		FPS:             10,
		PaletteSize:     256,
		UseDithering:    true,
		UseLocalPalette: false,
		TailSeconds:     0,
		OutputPath:      "out.gif",
	}
}

// Validate clamps out-of-range values to their defaults rather than
// erroring, mirroring soockee-pixel-bot-go/config.Config.Validate.
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		c.FPS = Default().FPS
	}
	if c.PaletteSize <= 0 || c.PaletteSize > 256 {
		c.PaletteSize = Default().PaletteSize
	}
	if c.TailSeconds < 0 {
		c.TailSeconds = 0
	}
	if c.OutputPath == "" {
		c.OutputPath = Default().OutputPath
	}
	return nil
}

// Load reads ~/.config/jif/config.yaml via viper, falling back silently
// to Default when no config file is present. A malformed config file
// that does exist is a hard error.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, "jif"))

	def := Default()
	v.SetDefault("fps", def.FPS)
	v.SetDefault("palette_size", def.PaletteSize)
	v.SetDefault("use_dithering", def.UseDithering)
	v.SetDefault("use_local_palette", def.UseLocalPalette)
	v.SetDefault("tail_seconds", def.TailSeconds)
	v.SetDefault("output_path", def.OutputPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
