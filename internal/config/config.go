package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API        *APIConfig        `mapstructure:"api"`
	Gin        *GinConfig        `mapstructure:"gin"`
	Postgres   *PostgresConfig   `mapstructure:"postgres"`
	Pagination *PaginationConfig `mapstructure:"pagination"`
	Users      *UsersConfig      `mapstructure:"users"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
}

type PaginationConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"`
}

type UsersConfig struct {
	MaxBioLength int `mapstructure:"max_bio_length"`
}

func Load(path string) (*AppConfig, error) {
	viper.SetConfigFile(path)

	// Environment variables take precedence over the config file,
	// e.g. API_JWT_SIGNING_KEY overrides api.jwt_signing_key.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	if conf.Pagination == nil {
		conf.Pagination = &PaginationConfig{}
	}
	if conf.Pagination.DefaultPageSize <= 0 {
		conf.Pagination.DefaultPageSize = 10
	}
	if conf.Pagination.MaxPageSize <= 0 {
		conf.Pagination.MaxPageSize = 100
	}

	if conf.Users == nil {
		conf.Users = &UsersConfig{}
	}
	if conf.Users.MaxBioLength <= 0 {
		conf.Users.MaxBioLength = 4096
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		if err := viper.Unmarshal(conf); err != nil {
			zap.L().Error("failed to reload config", zap.Error(err))
			return
		}

		zap.L().Info("config reloaded", zap.String("file", e.Name))
	})
	viper.WatchConfig()

	return conf, nil
}
