package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/finpulse/internal/domain/models"
	"github.com/guttosm/finpulse/internal/metrics"
)

// FinancialDataReader is the query capability used by the API.
type FinancialDataReader interface {
	ListFinancialData(ctx context.Context, filter models.QueryFilter, offset int64) ([]models.FinancialData, int64, error)
	CountFinancialData(ctx context.Context, filter models.QueryFilter) (int64, error)
	AverageFinancialData(ctx context.Context, q models.StatisticsQuery) (*models.Statistics, error)
}

// FinancialDataWriter is the upsert capability used by ingestion.
type FinancialDataWriter interface {
	UpsertFinancialData(ctx context.Context, rows []models.FinancialData) (int, error)
}

// FinancialDataRepository defines contract for DB operations on financial_data.
type FinancialDataRepository interface {
	FinancialDataReader
	FinancialDataWriter
}

type financialDataRepository struct {
	db           *sql.DB
	dialect      Dialect
	queryTimeout time.Duration
}

// NewFinancialDataRepository builds a repository over the db pool. Every call
// is bounded by queryTimeout (0 disables the bound), pool checkout included.
func NewFinancialDataRepository(db *sql.DB, dialect Dialect, queryTimeout time.Duration) FinancialDataRepository {
	return &financialDataRepository{db: db, dialect: dialect, queryTimeout: queryTimeout}
}

func (r *financialDataRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// ListFinancialData returns one page of rows ordered by date and the total
// number of rows matching the filter. The total is 0 when the page is empty.
func (r *financialDataRepository) ListFinancialData(ctx context.Context, filter models.QueryFilter, offset int64) ([]models.FinancialData, int64, error) {
	defer metrics.ObserveQuery("list", time.Now())
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query, args := BuildListingQuery(r.dialect, filter, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.FinancialData, 0, min(filter.Limit, 128))
	var total int64
	for rows.Next() {
		var d models.FinancialData
		if err := rows.Scan(&d.Symbol, &d.Date, &d.OpenPrice, &d.ClosePrice, &d.Volume, &total); err != nil {
			return nil, 0, classify(fmt.Errorf("scan financial_data row: %w", err))
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(err)
	}

	return out, total, nil
}

// CountFinancialData returns the number of rows matching the filter.
func (r *financialDataRepository) CountFinancialData(ctx context.Context, filter models.QueryFilter) (int64, error) {
	defer metrics.ObserveQuery("count", time.Now())
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query, args := BuildCountQuery(r.dialect, filter)
	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, classify(err)
	}
	return count, nil
}

// AverageFinancialData returns the mean open price, close price and volume
// for the query range, or nil when no row matched (SQL AVG yields NULL).
func (r *financialDataRepository) AverageFinancialData(ctx context.Context, q models.StatisticsQuery) (*models.Statistics, error) {
	defer metrics.ObserveQuery("average", time.Now())
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query, args := BuildAverageQuery(r.dialect, q)

	var open, closing, volume decimal.NullDecimal
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&open, &closing, &volume); err != nil {
		return nil, classify(err)
	}

	if !open.Valid || !closing.Valid || !volume.Valid {
		return nil, nil
	}

	return &models.Statistics{
		Symbol:             q.Symbol,
		StartDate:          q.StartDate,
		EndDate:            q.EndDate,
		AverageOpenPrice:   open.Decimal,
		AverageClosePrice:  closing.Decimal,
		AverageDailyVolume: volume.Decimal,
	}, nil
}

// UpsertFinancialData writes rows in a single transaction, replacing any
// existing row with the same (symbol, date).
func (r *financialDataRepository) UpsertFinancialData(ctx context.Context, rows []models.FinancialData) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	defer metrics.ObserveQuery("upsert", time.Now())
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, classify(err)
	}

	stmt, err := tx.PrepareContext(ctx, r.dialect.UpsertFinancialData())
	if err != nil {
		_ = tx.Rollback()
		return 0, classify(err)
	}

	for _, rec := range rows {
		if _, err := stmt.ExecContext(ctx,
			rec.Symbol,
			rec.Date,
			rec.OpenPrice,
			rec.ClosePrice,
			rec.Volume,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, classify(fmt.Errorf("upsert %s %s: %w", rec.Symbol, rec.Date.Format(dateLayout), err))
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return 0, classify(err)
	}
	if err := tx.Commit(); err != nil {
		return 0, classify(err)
	}

	return len(rows), nil
}
