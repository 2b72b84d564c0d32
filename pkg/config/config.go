// Package config loads pathmatch's layered configuration: built-in
// defaults, then the user's config file, with command-line flags applied
// on top by the CLI layer.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/pathmatch/pkg/errors"
)

// Config holds the reporting options a user can persist.
type Config struct {
	// Slash is the separator character used in reported paths, "/" or "\".
	Slash string `koanf:"slash"`

	// Absolute reports absolute paths instead of relative ones.
	Absolute bool `koanf:"absolute"`

	// FilesOnly suppresses directory entries in the report.
	FilesOnly bool `koanf:"files_only"`

	// Limit stops reporting after this many matches per pattern; 0 means
	// unlimited.
	Limit int `koanf:"limit"`

	// Color is "auto", "always", or "never".
	Color string `koanf:"color"`
}

// Load merges the embedded defaults with the user's config file, if one
// exists at $XDG_CONFIG_HOME/pathmatch/pathmatch.toml.
func Load() (*Config, error) {
	return loadFrom(UserConfigPath())
}

// UserConfigPath returns the expected location of the user's config file.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "pathmatch", "pathmatch.toml")
}

// loadFrom builds the merged configuration, reading the user layer from
// path when the file exists.
func loadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "parsing built-in defaults")
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "loading config from %s", path)
			}
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromMap builds a Config from an explicit key/value map, merged over the
// defaults. Used by tests and by callers that manage their own sources.
func FromMap(values map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "parsing built-in defaults")
	}
	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "merging config map")
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "unmarshalling configuration")
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Slash != "/" && cfg.Slash != "\\" {
		return errors.Newf(errors.ErrInvalidInput, "slash must be %q or %q, got %q", "/", `\`, cfg.Slash)
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return errors.Newf(errors.ErrInvalidInput, "color must be auto, always or never, got %q", cfg.Color)
	}
	if cfg.Limit < 0 {
		return errors.Newf(errors.ErrInvalidInput, "limit must not be negative, got %d", cfg.Limit)
	}
	return nil
}
