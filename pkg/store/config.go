package store

import (
	"errors"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the key-value store and carries user defaults.
type Config interface {
	BasePath() string
	DefaultFolderTitle() string
	LogLevel() string
}

// LoadConfig reads .promptdock.yaml from PROMPTDOCK_CONFIG_PATH or the working
// directory, overlaid with PROMPTDOCK_* environment variables.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.promptdock.db")
	v.SetDefault("default-title", "New Folder")
	v.SetDefault("log-level", "warn")
	v.SetConfigName(".promptdock") // .yaml is implicit
	v.SetEnvPrefix("PROMPTDOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("PROMPTDOCK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{
		Path:         path,
		DefaultTitle: v.GetString("default-title"),
		Level:        v.GetString("log-level"),
	}, nil
}

type fileConfig struct {
	Path         string `json:"path"`
	DefaultTitle string `json:"defaultTitle"`
	Level        string `json:"logLevel"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) DefaultFolderTitle() string {
	return f.DefaultTitle
}

func (f *fileConfig) LogLevel() string {
	return f.Level
}
