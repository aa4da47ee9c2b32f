package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// PreferencesFile is the file under the catalog's base path that holds
// control values bound with prefKey.
const PreferencesFile = "prefs.yaml"

// Preferences keeps control values in a yaml file. It implements
// table.Preferences.
type Preferences struct {
	v    *viper.Viper
	path string
}

// LoadPreferences opens the preferences file under cfg's base path. A
// missing file is not an error. A nil cfg reads the config with LoadConfig.
func LoadPreferences(cfg Config) (*Preferences, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if cfg.BasePath() == "" {
		return nil, errors.New("store: base path unknown")
	}

	path := filepath.Join(cfg.BasePath(), PreferencesFile)
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("store: read preferences: %w", err)
		}
	}
	return &Preferences{v: v, path: path}, nil
}

// Preference returns the value stored under key.
func (p *Preferences) Preference(key string) (any, bool) {
	if !p.v.IsSet(key) {
		return nil, false
	}
	return p.v.Get(key), true
}

// SetPreference stores v under key and writes the file.
func (p *Preferences) SetPreference(key string, v any) error {
	p.v.Set(key, v)
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("store: create %s: %w", filepath.Dir(p.path), err)
	}
	if err := p.v.WriteConfigAs(p.path); err != nil {
		return fmt.Errorf("store: write preferences: %w", err)
	}
	return nil
}
