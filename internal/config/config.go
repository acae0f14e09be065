package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUser          string
	DBPass          string
	DBHost          string
	DBPort          string
	DBName          string
	SSLMode         string
	RedisHost       string
	RedisPort       string
	NatsHost        string
	NatsPort        string
	ApiPort         string
	PurchaseSubject string
}

// New loads and validates configuration from environment variables.
// PurchaseSubject is the queue endpoint the purchase pipeline publishes to;
// it is injected here and nowhere else, so tests can run with a fake bus
// and no ambient environment.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBUser:          os.Getenv("GIGTIX_POSTGRES_USER"),
		DBPass:          os.Getenv("GIGTIX_POSTGRES_PASSWORD"),
		DBHost:          os.Getenv("GIGTIX_POSTGRES_HOST"),
		DBPort:          os.Getenv("GIGTIX_POSTGRES_PORT"),
		DBName:          os.Getenv("GIGTIX_POSTGRES_DB"),
		SSLMode:         os.Getenv("GIGTIX_POSTGRES_SSLMODE"),
		RedisHost:       os.Getenv("GIGTIX_REDIS_HOST"),
		RedisPort:       os.Getenv("GIGTIX_REDIS_PORT"),
		NatsHost:        os.Getenv("GIGTIX_NATS_HOST"),
		NatsPort:        os.Getenv("GIGTIX_NATS_PORT"),
		ApiPort:         getEnv("GIGTIX_API_PORT", "8080"),
		PurchaseSubject: getEnv("GIGTIX_PURCHASE_SUBJECT", "tickets.purchased"),
	}

	// Required: database
	if cfg.DBUser == "" || cfg.DBHost == "" || cfg.DBName == "" || cfg.SSLMode == "" {
		return nil, fmt.Errorf("missing required env for database: GIGTIX_POSTGRES_USER/HOST/DB/SSLMODE")
	}

	// Required: redis
	if cfg.RedisHost == "" || cfg.RedisPort == "" {
		return nil, fmt.Errorf("missing required env for redis: GIGTIX_REDIS_HOST/PORT")
	}

	// Required: nats (the ticket queue)
	if cfg.NatsHost == "" || cfg.NatsPort == "" {
		return nil, fmt.Errorf("missing required env for nats: GIGTIX_NATS_HOST/PORT")
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName, c.SSLMode)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func (c *Config) NatsAddr() string {
	return fmt.Sprintf("nats://%s:%s", c.NatsHost, c.NatsPort)
}

func (c *Config) ApiAddr() string {
	return ":" + c.ApiPort
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
