// Package config loads mathcoach settings from a YAML file, the
// environment and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL     = "http://localhost:8000/api/v1"
	DefaultTimeout     = 30 * time.Second
	DefaultDailyTarget = 10
	DefaultServerAddr  = ":8000"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Store   StoreConfig   `mapstructure:"store"`
	Server  ServerConfig  `mapstructure:"server"`
}

type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url" validate:"required,url"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	HealthCheck bool          `mapstructure:"health_check"`
}

type SessionConfig struct {
	StudentID   string `mapstructure:"student_id" validate:"student_id"`
	DailyTarget int    `mapstructure:"daily_target" validate:"gte=1"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,required"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mathcoach")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

var envBindings = []struct {
	key string
	env string
}{
	{"api.base_url", "MATHCOACH_API_BASE_URL"},
	{"api.timeout", "MATHCOACH_API_TIMEOUT"},
	{"session.student_id", "MATHCOACH_STUDENT_ID"},
	{"store.path", "MATHCOACH_DB"},
	{"server.addr", "MATHCOACH_SERVER_ADDR"},
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("api.health_check", true)
	v.SetDefault("session.student_id", "")
	v.SetDefault("session.daily_target", DefaultDailyTarget)
	v.SetDefault("store.path", "")
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.allowed_origins", []string{"*"})

	for _, b := range envBindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", b.env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// ConfigFileUsed returns the path of the file that was read, if any.
func (loader *ConfigLoader) ConfigFileUsed() string {
	return loader.viper.ConfigFileUsed()
}

// Load is a shorthand for NewConfigLoader(configFile) followed by Load.
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}
