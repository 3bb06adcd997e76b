package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	goose "github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/guttosm/finpulse/internal/logger"
)

//go:embed sql/*.sql
var embedded embed.FS

const dir = "sql"

// goose keeps its FS, dialect and logger in package state.
var mu sync.Mutex

// gooseLogger routes goose output through zerolog.
type gooseLogger struct{ log zerolog.Logger }

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info().Msgf(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatal().Msgf(format, v...)
}

func prepare(driver string) error {
	goose.SetBaseFS(embedded)
	goose.SetLogger(gooseLogger{log: logger.Component("migrations")})
	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("migrations dialect %q: %w", driver, err)
	}
	return nil
}

// Up applies every pending migration.
func Up(db *sql.DB, driver string) error {
	mu.Lock()
	defer mu.Unlock()
	if err := prepare(driver); err != nil {
		return err
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(db *sql.DB, driver string) error {
	mu.Lock()
	defer mu.Unlock()
	if err := prepare(driver); err != nil {
		return err
	}
	if err := goose.Down(db, dir); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Status logs the applied state of every migration.
func Status(db *sql.DB, driver string) error {
	mu.Lock()
	defer mu.Unlock()
	if err := prepare(driver); err != nil {
		return err
	}
	if err := goose.Status(db, dir); err != nil {
		return fmt.Errorf("migrate status: %w", err)
	}
	return nil
}

// Run dispatches a migrate sub-command by name.
func Run(db *sql.DB, driver, command string) error {
	switch command {
	case "up":
		return Up(db, driver)
	case "down":
		return Down(db, driver)
	case "status":
		return Status(db, driver)
	default:
		return fmt.Errorf("unknown migrate command %q (want up, down or status)", command)
	}
}
