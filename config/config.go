package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// HTTP server, the relational store and its pool, the query API, and the ingestion job.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	DB_DRIVER=postgres
//	DB_HOST=localhost
//	DB_PORT=5432
//	DB_USER=admin
//	DB_PASSWORD=secret
//	DB_NAME=finpulse
//	API_MAX_LIMIT=100
//	INGEST_API_KEY=demo
//	INGEST_SYMBOLS=IBM,AAPL
type Config struct {
	Server    ServerConfig    // HTTP server configuration
	Store     StoreConfig     // relational store connection and pool settings
	API       APIConfig       // query API behaviour
	Ingestion IngestionConfig // market-data ingestion settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// StoreConfig defines connection and pool details for the relational store.
//
// Fields:
//   - Driver: "postgres" or "mysql".
//   - Host, Port, User, Password, DBName: connection details.
//   - SSLMode: postgres SSL mode (e.g., "disable", "require").
//   - MaxOpenConns, MaxIdleConns: pool bounds.
//   - ConnMaxLifetime, ConnMaxIdleTime: connection recycling.
//   - QueryTimeout: deadline applied to every query, pool checkout included.
type StoreConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	QueryTimeout    time.Duration
}

// APIConfig controls request validation and response behaviour of the query API.
//
// Fields:
//   - DefaultLimit: page size when limit is absent or not a positive integer.
//   - MaxLimit: page size ceiling; 0 disables the ceiling.
//   - StrictStatus: map error kinds to HTTP status codes instead of always 200.
//   - RequestTimeout: deadline set on every request context.
//   - RateLimitPerMinute: per client IP request budget.
type APIConfig struct {
	DefaultLimit       int
	MaxLimit           int
	StrictStatus       bool
	RequestTimeout     time.Duration
	RateLimitPerMinute int
}

// IngestionConfig defines how daily bars are pulled from the market-data provider.
type IngestionConfig struct {
	APIKey            string
	BaseURL           string
	Symbols           []string
	Days              int
	Parallel          int
	RequestsPerMinute int
	HTTPTimeout       time.Duration
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	setDefaults()

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()
	_ = viper.BindEnv("INGEST_API_KEY", "INGEST_API_KEY", "ALPHAVANTAGE_API_KEY", "API_KEY")

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Store: StoreConfig{
			Driver:          strings.ToLower(viper.GetString("DB_DRIVER")),
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: viper.GetDuration("DB_CONN_MAX_IDLE_TIME"),
			QueryTimeout:    viper.GetDuration("DB_QUERY_TIMEOUT"),
		},
		API: APIConfig{
			DefaultLimit:       viper.GetInt("API_DEFAULT_LIMIT"),
			MaxLimit:           viper.GetInt("API_MAX_LIMIT"),
			StrictStatus:       viper.GetBool("API_STRICT_STATUS"),
			RequestTimeout:     viper.GetDuration("API_REQUEST_TIMEOUT"),
			RateLimitPerMinute: viper.GetInt("API_RATE_LIMIT_PER_MINUTE"),
		},
		Ingestion: IngestionConfig{
			APIKey:            viper.GetString("INGEST_API_KEY"),
			BaseURL:           viper.GetString("INGEST_BASE_URL"),
			Symbols:           splitList(viper.GetString("INGEST_SYMBOLS")),
			Days:              viper.GetInt("INGEST_DAYS"),
			Parallel:          viper.GetInt("INGEST_PARALLEL"),
			RequestsPerMinute: viper.GetInt("INGEST_REQUESTS_PER_MINUTE"),
			HTTPTimeout:       viper.GetDuration("INGEST_HTTP_TIMEOUT"),
		},
	}

	// Validate critical fields
	validateConfig()
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "finpulse")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")
	viper.SetDefault("DB_QUERY_TIMEOUT", "5s")

	viper.SetDefault("API_DEFAULT_LIMIT", 5)
	viper.SetDefault("API_MAX_LIMIT", 100)
	viper.SetDefault("API_STRICT_STATUS", false)
	viper.SetDefault("API_REQUEST_TIMEOUT", "10s")
	viper.SetDefault("API_RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("INGEST_BASE_URL", "https://www.alphavantage.co")
	viper.SetDefault("INGEST_SYMBOLS", "IBM,AAPL")
	viper.SetDefault("INGEST_DAYS", 14)
	viper.SetDefault("INGEST_PARALLEL", 1)
	viper.SetDefault("INGEST_REQUESTS_PER_MINUTE", 5)
	viper.SetDefault("INGEST_HTTP_TIMEOUT", "30s")
}

// splitList turns "IBM, aapl,,MSFT" into ["IBM", "AAPL", "MSFT"].
func splitList(s string) []string {
	return NormalizeSymbols(strings.Split(s, ","))
}

// NormalizeSymbols trims and upper-cases every symbol and drops blanks.
func NormalizeSymbols(in []string) []string {
	var out []string
	for _, part := range in {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing ones in a slice.
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	if missing := missingFields(AppConfig); len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}

func missingFields(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Store.Driver != "postgres" && cfg.Store.Driver != "mysql" {
		missing = append(missing, "DB_DRIVER")
	}
	if cfg.Store.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if cfg.Store.Port == 0 {
		missing = append(missing, "DB_PORT")
	}
	if cfg.Store.User == "" {
		missing = append(missing, "DB_USER")
	}
	if cfg.Store.Password == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if cfg.Store.DBName == "" {
		missing = append(missing, "DB_NAME")
	}

	return missing
}
