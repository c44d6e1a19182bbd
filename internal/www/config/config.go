package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/opattison/figureimg/internal/figure"
	"github.com/spf13/viper"
)

type AppEnv string

const (
	Development AppEnv = "development"
	Production  AppEnv = "production"
)

type Config struct {
	Port             string         `mapstructure:"port"`
	AppEnv           AppEnv         `mapstructure:"app_env"`
	ContentDir       string         `mapstructure:"content_dir"`
	FigureBaseURLKey string         `mapstructure:"figure_base_url_key"`
	Site             map[string]any `mapstructure:"site"`
}

func (c Config) IsDev() bool {
	return c.AppEnv == Development
}

func (c Config) IsProd() bool {
	return c.AppEnv == Production
}

// LoadConfig loads the configuration from the environment and an optional
// config file in the working directory.
func LoadConfig() (Config, error) {
	return load(viper.New(), ".")
}

func load(v *viper.Viper, paths ...string) (Config, error) {
	v.SetDefault("port", "8080")
	v.SetDefault("app_env", Development)
	v.SetDefault("content_dir", "content")
	v.SetDefault("figure_base_url_key", figure.DefaultBaseURLKey)
	v.SetDefault("site."+figure.DefaultBaseURLKey, "")

	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetConfigName("config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var cerr viper.ConfigFileNotFoundError
		if !errors.As(err, &cerr) {
			return Config{}, fmt.Errorf("could not read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not unmarshal config: %w", err)
	}

	// Unmarshal does not see env-only keys under site, so resolve the base URL
	// through the viper lookup.
	if cfg.Site == nil {
		cfg.Site = map[string]any{}
	}

	cfg.Site[cfg.FigureBaseURLKey] = v.GetString("site." + cfg.FigureBaseURLKey)

	return cfg, nil
}
