package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	HTTPPort      string
	MediaPath     string
	LogLevel      string
}

func Load() *Config {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "perfume")
	viper.SetDefault("DB_PASSWORD", "perfume")
	viper.SetDefault("DB_NAME", "perfume_catalog")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_HOST", "")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("SESSION_SECRET", "default-secret-key-change-me")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("HTTP_PORT", "8080")
	viper.SetDefault("MEDIA_PATH", "./media")
	viper.SetDefault("LOG_LEVEL", "info")

	return &Config{
		DBDriver:      viper.GetString("DB_DRIVER"),
		DBHost:        viper.GetString("DB_HOST"),
		DBPort:        viper.GetString("DB_PORT"),
		DBUser:        viper.GetString("DB_USER"),
		DBPassword:    viper.GetString("DB_PASSWORD"),
		DBName:        viper.GetString("DB_NAME"),
		DBSSLMode:     viper.GetString("DB_SSLMODE"),
		RedisHost:     viper.GetString("REDIS_HOST"),
		RedisPort:     viper.GetString("REDIS_PORT"),
		SessionSecret: viper.GetString("SESSION_SECRET"),
		GinMode:       viper.GetString("GIN_MODE"),
		HTTPPort:      viper.GetString("HTTP_PORT"),
		MediaPath:     viper.GetString("MEDIA_PATH"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
	}
}
