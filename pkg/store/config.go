package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the catalog on disk.
type Config interface {
	BasePath() string
}

// LoadConfig reads .statictable.yaml from STATICTABLE_CONFIG_PATH or the
// working directory. STATICTABLE_* environment variables override the file.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.statictable")
	v.SetConfigName(".statictable") // .yaml is implicit
	v.SetEnvPrefix("STATICTABLE")
	v.AutomaticEnv()

	if override := os.Getenv("STATICTABLE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand %q: %w", v.GetString("path"), err)
	}
	return &fileConfig{Path: path}, nil
}

// PathConfig is a Config fixed to one directory.
type PathConfig string

// BasePath implements Config.
func (p PathConfig) BasePath() string { return string(p) }

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}
