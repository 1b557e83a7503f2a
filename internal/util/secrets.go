package util

import (
	"encoding/json"
	"fmt"
	"os"

	"portfoliotracker/internal/postgres"
)

type Secrets struct {
	ApiKey string       `json:"apiKey"`
	Db     DbSecrets    `json:"db"`
	Redis  RedisSecrets `json:"redis"`
}

type DbSecrets struct {
	Host      string `json:"host"`
	User      string `json:"user"`
	Port      string `json:"port"`
	Password  string `json:"password"`
	Database  string `json:"database"`
	EnableSsl bool   `json:"enableSsl"`
}

type RedisSecrets struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

func (t DbSecrets) ToConfig() *postgres.Config {
	cfg := &postgres.Config{
		Host:     t.Host,
		Port:     t.Port,
		Username: t.User,
		Password: t.Password,
		DBName:   t.Database,
	}
	if !t.EnableSsl {
		cfg.SSLMode = "disable"
	}
	return cfg.Setup()
}

// LoadSecrets reads the secrets file for the current environment. When no
// file exists, configuration falls back to environment variables so the
// service still boots in containerized setups.
func LoadSecrets() (*Secrets, error) {
	secretsFile := "secrets.json"
	if os.Getenv("TRACKER_ENV") == "dev" {
		secretsFile = "secrets-dev.json"
	} else if os.Getenv("TRACKER_ENV") == "test" {
		secretsFile = "secrets-test.json"
	}

	f, err := os.ReadFile(secretsFile)
	if os.IsNotExist(err) {
		return secretsFromEnv(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", secretsFile, err)
	}

	secrets := Secrets{}
	if err := json.Unmarshal(f, &secrets); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", secretsFile, err)
	}

	return &secrets, nil
}

func secretsFromEnv() *Secrets {
	cfg := postgres.NewConfigFromEnv().Setup()
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	return &Secrets{
		ApiKey: os.Getenv("API_KEY"),
		Db: DbSecrets{
			Host:      cfg.Host,
			User:      cfg.Username,
			Port:      cfg.Port,
			Password:  cfg.Password,
			Database:  cfg.DBName,
			EnableSsl: cfg.SSLMode != "disable",
		},
		Redis: RedisSecrets{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}
}
