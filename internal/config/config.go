// Package config loads process configuration once at startup. Backend
// constructors receive values from the Config struct; nothing reads the
// environment after Load returns.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Backend names a storage implementation selected by the environment.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendCosmos   Backend = "cosmos"
	BackendMemory   Backend = "memory"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Port string

	// Relational backend
	DatabaseURL string

	// Document backend
	CosmosEndpoint  string
	CosmosDatabase  string
	CosmosContainer string

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file and then the environment.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		CosmosEndpoint:  strings.TrimSpace(os.Getenv("COSMOS_ENDPOINT")),
		CosmosDatabase:  strings.TrimSpace(os.Getenv("COSMOS_DATABASE_NAME")),
		CosmosContainer: getenv("COSMOS_CONTAINER_NAME", "entries"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		LogFormat:       os.Getenv("LOG_FORMAT"),
	}
}

// Backend reports which storage backend the configuration selects:
// postgres when DATABASE_URL is set, otherwise cosmos when
// COSMOS_ENDPOINT is set, otherwise the in-memory store.
func (c Config) Backend() Backend {
	switch {
	case c.DatabaseURL != "":
		return BackendPostgres
	case c.CosmosEndpoint != "":
		return BackendCosmos
	default:
		return BackendMemory
	}
}

// Validate rejects configurations that select a backend without the
// settings it needs.
func (c Config) Validate() error {
	if c.Backend() == BackendCosmos && c.CosmosDatabase == "" {
		return errors.New("COSMOS_DATABASE_NAME environment variable is missing")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
