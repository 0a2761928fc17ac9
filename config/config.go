package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	env "github.com/netflix/go-env"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string `env:"SERVER_HOST,default=0.0.0.0"`
	ServerPort string `env:"SERVER_PORT,default=8080"`

	// Catalog API configuration
	CatalogBaseURL string        `env:"CATALOG_BASE_URL,default=https://www.themealdb.com/api/json/v1/1"`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT,default=0s"`

	// Browser sessions
	SessionTTL time.Duration `env:"SESSION_TTL,default=30m"`

	// CORS configuration for the JSON API, comma separated
	CORSAllowedOriginsStr string `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:5173"`
	CORSAllowedOrigins    []string
}

// LoadConfig creates a new Config instance from the environment. Outside
// production a .env file (or the one named by DOTENV_PATH) is loaded first;
// variables already set take precedence.
func LoadConfig() (*Config, error) {
	environment := GetEnvironment()
	if environment != Production {
		if err := loadDotEnv(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	cfg.Environment = environment
	cfg.CORSAllowedOrigins = splitList(cfg.CORSAllowedOriginsStr)

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

func loadDotEnv() error {
	path := os.Getenv("DOTENV_PATH")
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err == nil {
		log.Printf("Loaded environment from %s", path)
	}
	return err
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
