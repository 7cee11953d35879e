// Package config loads celltint configuration files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/celltint/internal/colourmanager"
	"github.com/jmylchreest/celltint/internal/security"
)

// EnvConfigPath names the environment variable consulted when no path is given.
const EnvConfigPath = "CELLTINT_CONFIG"

// MaxFileSize bounds the size of a config file.
const MaxFileSize = 1 << 20

// ErrUnsupportedFormat is returned for config files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config extension")

// Config is the on-disk configuration.
type Config struct {
	Theme colourmanager.Theme `json:"theme" yaml:"theme" toml:"theme"`

	// MinimumContrastRatio of 0 means "not set" and resolves to 1.
	MinimumContrastRatio float64 `json:"minimum_contrast_ratio" yaml:"minimum_contrast_ratio" toml:"minimum_contrast_ratio" validate:"omitempty,gte=1,lte=21"`

	LegacyChannelOrder bool `json:"legacy_channel_order" yaml:"legacy_channel_order" toml:"legacy_channel_order"`
}

// Default returns the configuration used when no file is loaded.
func Default() Config {
	return Config{
		Theme:                colourmanager.DefaultTheme(),
		MinimumContrastRatio: colourmanager.MinContrastRatio,
	}
}

// Load reads a config file, choosing the decoder by extension.
// An empty path falls back to $CELLTINT_CONFIG, then to Default.
// Missing theme fields are filled from the default theme.
func Load(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path == "" {
		return Default(), nil
	}

	data, err := security.ReadFileLimited(path, MaxFileSize)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses raw config data in the format named by ext
// (".yaml", ".yml", ".toml" or ".json"), then validates it.
func Decode(data []byte, ext string) (Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	cfg.Theme = cfg.Theme.WithDefaults()
	if cfg.MinimumContrastRatio == 0 {
		cfg.MinimumContrastRatio = colourmanager.MinContrastRatio
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the theme colours and the contrast ratio.
func (c Config) Validate() error {
	return colourmanager.ValidationErrors(colourmanager.Validator().Struct(c))
}

// ManagerConfig returns the colour manager settings held by c.
func (c Config) ManagerConfig() colourmanager.Config {
	return colourmanager.Config{
		MinimumContrastRatio: c.MinimumContrastRatio,
		LegacyChannelOrder:   c.LegacyChannelOrder,
	}
}
