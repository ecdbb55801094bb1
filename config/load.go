package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Load builds the configs from an optional toml file, then lets environment
// variables override the fields that differ per deployment. Secrets should
// come from the environment, not the file.
func Load(path string) (Configs, error) {
	cfg := defaultConfigs()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.Database.Host = getEnv("MYSQL_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("MYSQL_PORT", cfg.Database.Port)
	cfg.Database.Database = getEnv("MYSQL_DATABASE", cfg.Database.Database)
	cfg.Database.User = getEnv("MYSQL_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("MYSQL_PASSWORD", cfg.Database.Password)
	cfg.ApiServer.Host = getEnv("API_HOST", cfg.ApiServer.Host)
	cfg.ApiServer.Port = getEnv("API_PORT", cfg.ApiServer.Port)
	cfg.Auth.TokenSecret = getEnv("TOKEN_SECRET", cfg.Auth.TokenSecret)
	cfg.Storage.AccessKey = getEnv("STORAGE_ACCESS_KEY", cfg.Storage.AccessKey)
	cfg.Storage.SecretKey = getEnv("STORAGE_SECRET_KEY", cfg.Storage.SecretKey)
	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Kafka.Addr = getEnv("KAFKA_ADDR", cfg.Kafka.Addr)

	return cfg, nil
}

func defaultConfigs() Configs {
	return Configs{
		Env:      "local",
		LogLevel: 1,
		Database: DatabaseConfigs{
			Host: "localhost",
			Port: "3306",
		},
		ApiServer: APIServerConfigs{
			ServerConfigs: ServerConfigs{Host: "localhost", Port: "8080"},
			DefaultLimit:  10,
			MaxLimit:      50,
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access-token",
				Expiration: Duration{time.Hour},
			},
			RefreshToken: TokenConfigs{
				Name:       "refresh-token",
				Expiration: Duration{7 * 24 * time.Hour},
			},
		},
		File: FileConfigs{
			MaxSize:     5 * 1024 * 1024,
			ImageBucket: "images",
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}
