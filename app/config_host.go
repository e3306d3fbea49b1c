//go:build !tinygo

package app

import (
	"fmt"
	"os"

	"sparkcraft/sparkos/assets"
	"sparkcraft/sparkos/quarkgl"
)

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("app: load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfigPath returns the config path from SPARKCRAFT_CONFIG, if set.
func DefaultConfigPath() string {
	return os.Getenv(ConfigEnv)
}

func loadSheet(path string) (*quarkgl.Texture, error) {
	if path == "" {
		return nil, nil
	}
	strip, err := assets.LoadStrip(path)
	if err != nil {
		return nil, fmt.Errorf("app: sheet: %w", err)
	}
	sheet, err := assets.BuildSpritesheet(strip)
	if err != nil {
		return nil, fmt.Errorf("app: sheet %s: %w", path, err)
	}
	return assets.ToTexture(sheet), nil
}
