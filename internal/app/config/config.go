package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int

	JWTSecret string

	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int

	MinIOHost      string
	MinIOPort      string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
}

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.WatchConfig()

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	cfg.JWTSecret = envOr("JWT_SECRET", "dev-secret-change-me")

	cfg.RedisHost = envOr("REDIS_HOST", "127.0.0.1")
	cfg.RedisPort = envIntOr("REDIS_PORT", 6379)
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = envIntOr("REDIS_DB", 0)

	cfg.MinIOHost = envOr("MINIO_HOST", "127.0.0.1")
	cfg.MinIOPort = envOr("MINIO_PORT", "9000")
	cfg.MinIOAccessKey = envOr("MINIO_ACCESS_KEY", "minioadmin")
	cfg.MinIOSecretKey = envOr("MINIO_SECRET_KEY", "minioadmin")
	cfg.MinIOBucket = envOr("MINIO_BUCKET", "care-log-photos")

	log.Info("config parsed")

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
