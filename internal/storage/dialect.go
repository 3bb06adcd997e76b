package storage

import (
	"fmt"
	"strconv"
)

// Dialect isolates the SQL differences between the supported stores.
type Dialect interface {
	// Name is the database/sql driver name ("postgres", "mysql").
	Name() string
	// Placeholder returns the bind marker for the n-th (1-based) argument.
	Placeholder(n int) string
	// UpsertFinancialData returns the single-row upsert statement keyed by (symbol, date).
	UpsertFinancialData() string
}

// DialectFor returns the Dialect registered for driver.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}

var (
	Postgres Dialect = postgresDialect{}
	MySQL    Dialect = mysqlDialect{}
)

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

func (postgresDialect) UpsertFinancialData() string {
	return `INSERT INTO financial_data (symbol, date, open_price, close_price, volume)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (symbol, date)
		DO UPDATE SET open_price = EXCLUDED.open_price,
					  close_price = EXCLUDED.close_price,
					  volume = EXCLUDED.volume`
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string { return "mysql" }

func (mysqlDialect) Placeholder(int) string { return "?" }

func (mysqlDialect) UpsertFinancialData() string {
	return `INSERT INTO financial_data (symbol, date, open_price, close_price, volume)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE open_price = VALUES(open_price),
					  close_price = VALUES(close_price),
					  volume = VALUES(volume)`
}
