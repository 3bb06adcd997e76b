package service

import (
	"context"
	"fmt"
	"math"

	"github.com/guttosm/finpulse/internal/apperr"
	"github.com/guttosm/finpulse/internal/domain/models"
	"github.com/guttosm/finpulse/internal/storage"
)

// FinancialDataService defines the query use cases behind the HTTP API.
type FinancialDataService interface {
	// List returns one page of rows. When nothing matches the filter it
	// returns the (empty) page together with a not_found error.
	List(ctx context.Context, filter models.QueryFilter) (*models.FinancialDataPage, error)
	// Statistics returns the averages for q, or a not_found error when no row
	// falls in the range.
	Statistics(ctx context.Context, q models.StatisticsQuery) (*models.Statistics, error)
}

type financialDataService struct {
	repo storage.FinancialDataReader
}

func NewFinancialDataService(repo storage.FinancialDataReader) FinancialDataService {
	return &financialDataService{repo: repo}
}

func (s *financialDataService) List(ctx context.Context, f models.QueryFilter) (*models.FinancialDataPage, error) {
	rows, total, err := s.repo.ListFinancialData(ctx, f, Offset(f.Page, f.Limit))
	if err != nil {
		return nil, err
	}

	// An empty page past the end carries no window count; ask for it.
	if len(rows) == 0 && f.Page > 0 {
		if total, err = s.repo.CountFinancialData(ctx, f); err != nil {
			return nil, err
		}
	}

	page := &models.FinancialDataPage{
		Rows:  rows,
		Count: total,
		Page:  f.Page,
		Limit: f.Limit,
		Pages: PageCount(total, f.Limit),
	}
	if total == 0 {
		return page, apperr.New(apperr.KindNotFound, fmt.Sprintf("No data found for symbol %s from %s to %s",
			orAny(f.Symbol), orAny(f.StartDate), orAny(f.EndDate)))
	}
	return page, nil
}

func (s *financialDataService) Statistics(ctx context.Context, q models.StatisticsQuery) (*models.Statistics, error) {
	stats, err := s.repo.AverageFinancialData(ctx, q)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, apperr.New(apperr.KindNotFound, fmt.Sprintf("No stat found for %s from %s to %s",
			q.Symbol, q.StartDate, q.EndDate))
	}
	return stats, nil
}

// Offset returns page*limit, saturating at math.MaxInt64.
func Offset(page, limit int) int64 {
	if page <= 0 || limit <= 0 {
		return 0
	}
	p, l := int64(page), int64(limit)
	if p > math.MaxInt64/l {
		return math.MaxInt64
	}
	return p * l
}

// PageCount returns ceil(count/limit). It is 1 when nothing matched.
// Written as (count-1)/limit+1 so a saturated limit cannot overflow.
func PageCount(count int64, limit int) int64 {
	if count <= 0 || limit <= 0 {
		return 1
	}
	return (count-1)/int64(limit) + 1
}

func orAny(s *string) string {
	if s == nil {
		return "any"
	}
	return *s
}
