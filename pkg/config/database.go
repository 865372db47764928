// pkg/config/database.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// PostgresConfig holds PostgreSQL connection parameters
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// Statement timeout
	StatementTimeout time.Duration
}

// SocrataConfig holds SODA API fetch parameters for the OATH dataset
type SocrataConfig struct {
	BaseURL  string // dataset CSV resource endpoint
	AppToken string // optional; reduces throttling

	PageLimit int // rows requested per page
	RowTarget int // stop fetching once this many rows are collected

	// Optional hearing_date server-side filter
	UseDateFilter bool
	DateField     string
	DateFrom      string

	RequestTimeout time.Duration
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables
func LoadPostgresConfig() (*PostgresConfig, error) {
	user := os.Getenv("POSTGRES_USER")
	if user == "" {
		return nil, errors.New("POSTGRES_USER environment variable is required")
	}

	password := os.Getenv("POSTGRES_PASSWORD")
	if password == "" {
		return nil, errors.New("POSTGRES_PASSWORD environment variable is required")
	}

	database := os.Getenv("POSTGRES_DB")
	if database == "" {
		return nil, errors.New("POSTGRES_DB environment variable is required")
	}

	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnvAsInt("POSTGRES_PORT", 5432)

	cfg := &PostgresConfig{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		Database: database,
		SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxOpenConns:     getEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 25),
		MaxIdleConns:     getEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 10),
		ConnMaxLifetime:  time.Duration(getEnvAsInt("POSTGRES_CONN_MAX_LIFETIME_SECONDS", 1800)) * time.Second,
		ConnMaxIdleTime:  time.Duration(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_TIME_SECONDS", 600)) * time.Second,
		StatementTimeout: time.Duration(getEnvAsInt("POSTGRES_STATEMENT_TIMEOUT_SECONDS", 300)) * time.Second,
	}

	return cfg, nil
}

// LoadSocrataConfig loads SODA API configuration from environment variables.
// Every field has a workable default, so no error is possible.
func LoadSocrataConfig() *SocrataConfig {
	return &SocrataConfig{
		BaseURL:  getEnv("SOCRATA_URL", "https://data.cityofnewyork.us/resource/jz4z-kudi.csv"),
		AppToken: getEnv("SOCRATA_APP_TOKEN", ""),

		PageLimit: getEnvAsInt("SOCRATA_PAGE_LIMIT", 10000),
		RowTarget: getEnvAsInt("SOCRATA_ROW_TARGET", 50000),

		UseDateFilter: getEnvAsBool("SOCRATA_USE_DATE_FILTER", false),
		DateField:     getEnv("SOCRATA_DATE_FIELD", "hearing_date"),
		DateFrom:      getEnv("SOCRATA_DATE_FROM", ""),

		RequestTimeout: time.Duration(getEnvAsInt("SOCRATA_REQUEST_TIMEOUT_SECONDS", 180)) * time.Second,
	}
}

// ConnectionString returns a formatted PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
	)
}
