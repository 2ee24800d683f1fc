package config

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Env         string // development | production
	DBDSN       string
	JWTSecret   string
	RememberTTL time.Duration // admin "remember me" session lifetime
	IdleTTL     time.Duration // admin inactivity window
	OTPDevCode  string        // fixed code accepted by the dev OTP provider; empty disables
}

// Load reads .env (if present) and the environment. Missing keys fall
// back to development defaults so a bare checkout runs.
func Load() Config {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			log.Printf("[config] could not read .env: %v (using environment only)", err)
		}
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DB_DSN", "gizmocash.db")
	viper.SetDefault("JWT_SECRET", "dev-only-secret-change-me")
	viper.SetDefault("ADMIN_REMEMBER_TTL", "168h") // 7 days
	viper.SetDefault("ADMIN_IDLE_TTL", "30m")
	viper.SetDefault("OTP_DEV_CODE", "000000")

	cfg := Config{
		Port:        viper.GetString("PORT"),
		Env:         viper.GetString("ENV"),
		DBDSN:       viper.GetString("DB_DSN"),
		JWTSecret:   viper.GetString("JWT_SECRET"),
		RememberTTL: viper.GetDuration("ADMIN_REMEMBER_TTL"),
		IdleTTL:     viper.GetDuration("ADMIN_IDLE_TTL"),
		OTPDevCode:  viper.GetString("OTP_DEV_CODE"),
	}
	log.Printf("[config] PORT=%s ENV=%s DB_DSN=%s", cfg.Port, cfg.Env, cfg.DBDSN)
	return cfg
}
