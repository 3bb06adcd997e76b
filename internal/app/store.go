package app

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq" // PostgreSQL driver for database/sql

	"github.com/guttosm/finpulse/config"
)

const pingTimeout = 5 * time.Second

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// InitStore opens the connection pool for the configured driver.
//
// Behavior:
//   - Builds the DSN for cfg.Store.Driver ("postgres" or "mysql").
//   - Opens a database handle with sql.Open and applies the pool bounds.
//   - Pings the store with a 5s deadline to validate connectivity.
//
// Returns:
//   - *sql.DB: an open connection pool (safe for concurrent use).
//   - error: if the driver is unknown, or opening or pinging fails.
//
// Example usage:
//
//	db, err := app.InitStore(config.AppConfig)
//	if err != nil {
//	    log.Fatalf("failed to connect: %v", err)
//	}
//	defer db.Close()
func InitStore(cfg config.Config) (*sql.DB, error) {
	s := cfg.Store

	dsn, err := DSN(s)
	if err != nil {
		return nil, err
	}

	db, err := sqlOpener(s.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.Driver, err)
	}

	db.SetMaxOpenConns(s.MaxOpenConns)
	db.SetMaxIdleConns(s.MaxIdleConns)
	db.SetConnMaxLifetime(s.ConnMaxLifetime)
	db.SetConnMaxIdleTime(s.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", s.Driver, err)
	}

	return db, nil
}

// DSN renders the driver-specific data source name for s.
func DSN(s config.StoreConfig) (string, error) {
	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))

	switch s.Driver {
	case "postgres":
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(s.User, s.Password),
			Host:     addr,
			Path:     "/" + s.DBName,
			RawQuery: url.Values{"sslmode": []string{s.SSLMode}}.Encode(),
		}
		return u.String(), nil
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = s.User
		mc.Passwd = s.Password
		mc.Net = "tcp"
		mc.Addr = addr
		mc.DBName = s.DBName
		mc.ParseTime = true
		mc.Loc = time.UTC
		return mc.FormatDSN(), nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q", s.Driver)
	}
}

// storeOpener is an indirection used by InitializeApp; overridden in tests to avoid real connections.
var storeOpener = InitStore
