// Package config holds the runtime configuration injected into the
// commands at startup: where the settings file lives and the default
// overwrite policy. Nothing else in the program derives paths from
// process-wide state.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/errors"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/settings"
)

//go:embed defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix of the environment variables the loader reads.
const EnvPrefix = "CPCLEANER_"

// Config is the runtime configuration for one invocation.
type Config struct {
	// SettingsPath is where the filter settings file lives. Empty means
	// next to the executable.
	SettingsPath string `koanf:"settings_path"`

	// Overwrite is the default overwrite policy; the --overwrite flag
	// overrides it per run.
	Overwrite bool `koanf:"overwrite"`
}

// Load builds the configuration: embedded defaults, then an optional
// .cpcleaner.toml (or cpcleaner.toml) in dir, then CPCLEANER_* env vars,
// later sources winning.
func Load(dir string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "loading built-in defaults")
	}

	for _, filename := range []string{".cpcleaner.toml", "cpcleaner.toml"} {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "loading %s", path)
			}
			break
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "loading environment overrides")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "unmarshaling configuration")
	}

	return &cfg, nil
}

// ResolveSettingsPath returns the effective settings file path.
func (c *Config) ResolveSettingsPath() (string, error) {
	if c.SettingsPath != "" {
		return c.SettingsPath, nil
	}
	return settings.DefaultPath()
}

// rawBytesProvider feeds in-memory bytes to koanf.
type rawBytesProvider struct {
	bytes []byte
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "rawBytesProvider does not support Read")
}
