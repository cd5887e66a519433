package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Mongo       MongoConfig
	LogLevel    string
}

type MongoConfig struct {
	URI      string
	Database string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DATABASE", "storefront")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Mongo: MongoConfig{
			URI:      getEnvOrViper("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnvOrViper("MONGODB_DATABASE", "storefront"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// getEnvOrViper prefers the real environment over values viper read
// from .env, so container env vars win.
func getEnvOrViper(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}
