package ingestion

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/finpulse/internal/domain/models"
)

const dateLayout = "2006-01-02"

// ParseDailySeries converts the provider series of symbol into rows, keeping
// the bars dated on or after cutoff's calendar day. Rows are returned in
// ascending date order. A malformed bar fails the whole series.
func ParseDailySeries(symbol string, series map[string]DailyBar, cutoff time.Time) ([]models.FinancialData, error) {
	from := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)

	rows := make([]models.FinancialData, 0, len(series))
	for day, bar := range series {
		date, err := time.Parse(dateLayout, day)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid date %q: %w", symbol, day, err)
		}
		if date.Before(from) {
			continue
		}

		row, err := parseBar(symbol, date, bar)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", symbol, day, err)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}

func parseBar(symbol string, date time.Time, bar DailyBar) (models.FinancialData, error) {
	open, err := decimal.NewFromString(strings.TrimSpace(bar.Open))
	if err != nil {
		return models.FinancialData{}, fmt.Errorf("open price %q: %w", bar.Open, err)
	}
	closing, err := decimal.NewFromString(strings.TrimSpace(bar.Close))
	if err != nil {
		return models.FinancialData{}, fmt.Errorf("close price %q: %w", bar.Close, err)
	}
	volume, err := strconv.ParseInt(strings.TrimSpace(bar.Volume), 10, 64)
	if err != nil {
		return models.FinancialData{}, fmt.Errorf("volume %q: %w", bar.Volume, err)
	}
	if volume < 0 {
		return models.FinancialData{}, fmt.Errorf("volume %d is negative", volume)
	}

	return models.FinancialData{
		Symbol:     symbol,
		Date:       date,
		OpenPrice:  open,
		ClosePrice: closing,
		Volume:     volume,
	}, nil
}
