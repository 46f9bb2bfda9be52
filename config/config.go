// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	devMail        = pflag.Bool("dev-mail", false, "Logs password reset links instead of sending emails")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"sqlite", "postgres"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.frontend_origin", "host_frontend_origin")

	v.BindEnv("jwt.secret", "jwt_secret")

	v.BindEnv("security.bcrypt_cost", "security_bcrypt_cost")

	v.BindEnv("storage.driver", "storage_driver")
	v.BindEnv("storage.dsn", "storage_dsn")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender", "mail_sender")
	v.BindEnv("mail.password", "mail_password")
	v.BindEnv("mail.dev_mode", "mail_dev_mode")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 5000)
	v.SetDefault("host.frontend_origin", "http://localhost:5173")

	v.SetDefault("security.bcrypt_cost", 12)

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.dsn", "garde_manger.db")

	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.dev_mode", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if *devMail {
		v.Set("mail.dev_mode", true)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	// No generated fallback here. A signing key the operator never chose
	// makes every session token forgeable or worthless after a restart.
	if v.GetString("jwt.secret") == "" {
		return errors.New("jwt.secret is not set, refusing to start without a signing key")
	}

	cost := v.GetInt("security.bcrypt_cost")
	if cost < 4 || cost > 31 {
		return errors.New("security.bcrypt_cost must be between 4 and 31")
	}

	if !slices.Contains(validDrivers, v.GetString("storage.driver")) {
		return errors.New("invalid storage driver provided")
	}

	if v.GetString("storage.dsn") == "" {
		return errors.New("storage.dsn can't be empty")
	}

	if v.GetBool("mail.dev_mode") {
		zap.L().Warn("Mail dev mode is enabled, reset links will be logged instead of emailed")
	} else {
		if v.GetString("mail.host") == "" {
			return errors.New("mail.host can't be empty")
		}
		if v.GetString("mail.sender") == "" {
			return errors.New("mail.sender can't be empty")
		}
		if v.GetString("mail.password") == "" {
			return errors.New("mail.password can't be empty")
		}
	}

	return nil
}
