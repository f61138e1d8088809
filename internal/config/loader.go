package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/so-keyldzn/semantiq/internal/apperr"
)

var validate = validator.New()

// Load reads .semantiq/config.yml from the project root (or the path given
// by configFile), layers environment overrides on top via viper's
// AutomaticEnv, and validates the result. A missing config file is not an
// error — Default()'s values stand in for whatever section is absent.
// A malformed file, or a file whose values fail struct validation, returns
// an apperr.InvalidInput rather than panicking, per the Design Notes.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SEMANTIQ")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".semantiq")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	cfg := Default()
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, apperr.Wrap(apperr.InvalidInput, err, "read config file")
		}
	} else if err := v.Unmarshal(cfg); err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, err, "unmarshal config file")
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, err, "validate config")
	}

	return cfg, nil
}

// Validate runs struct validation on an already-constructed Config,
// wrapping any failure as apperr.InvalidInput. Exposed separately from
// Load so callers that build a Config programmatically (such as tests)
// get the same guarantee.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return apperr.Wrap(apperr.InvalidInput, err, "validate config")
	}
	return nil
}
