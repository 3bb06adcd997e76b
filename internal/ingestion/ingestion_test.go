package ingestion

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/finpulse/internal/domain/models"
	"github.com/guttosm/finpulse/internal/metrics"
)

type fakeFetcher struct {
	mu     sync.Mutex
	series map[string]map[string]DailyBar
	errs   map[string]error
	calls  []string
}

func (f *fakeFetcher) FetchDaily(ctx context.Context, symbol string) (map[string]DailyBar, error) {
	f.mu.Lock()
	f.calls = append(f.calls, symbol)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.series[symbol], nil
}

type fakeWriter struct {
	mu   sync.Mutex
	rows map[string][]models.FinancialData
	err  error
}

func (w *fakeWriter) UpsertFinancialData(_ context.Context, rows []models.FinancialData) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.rows == nil {
		w.rows = map[string][]models.FinancialData{}
	}
	for _, r := range rows {
		w.rows[r.Symbol] = append(w.rows[r.Symbol], r)
	}
	return len(rows), nil
}

var fixedNow = func() time.Time { return time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC) }

func bars(days ...string) map[string]DailyBar {
	out := map[string]DailyBar{}
	for _, d := range days {
		out[d] = DailyBar{Open: "10.00", Close: "11.00", Volume: "100"}
	}
	return out
}

func TestRun_SkipIfError(t *testing.T) {
	fetcher := &fakeFetcher{
		series: map[string]map[string]DailyBar{
			"IBM":  bars("2023-01-13", "2023-01-12", "2022-12-01"),
			"AAPL": bars("2023-01-13"),
		},
		errs: map[string]error{"NOPE": ErrSymbolNotFound},
	}
	writer := &fakeWriter{}

	failuresBefore := testutil.ToFloat64(metrics.IngestFailuresTotal.WithLabelValues("NOPE"))
	rowsBefore := testutil.ToFloat64(metrics.IngestedRowsTotal.WithLabelValues("IBM"))

	summary, err := Run(context.Background(), fetcher, writer, Options{
		Symbols:  []string{"IBM", "NOPE", "AAPL", ""},
		Days:     14,
		Parallel: 2,
		Now:      fixedNow,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, []string{"AAPL", "IBM"}, summary.Succeeded)
	require.Len(t, summary.Failed, 2)
	assert.ErrorIs(t, summary.Failed["NOPE"], ErrSymbolNotFound)
	assert.ErrorIs(t, summary.Failed[""], ErrInvalidInput)

	assert.Len(t, writer.rows["IBM"], 2, "bars older than the window are dropped")
	assert.NotContains(t, fetcher.calls, "", "invalid input never reaches the provider")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.IngestFailuresTotal.WithLabelValues("NOPE"))-failuresBefore)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.IngestedRowsTotal.WithLabelValues("IBM"))-rowsBefore)
}

func TestRun_InvalidDays(t *testing.T) {
	fetcher := &fakeFetcher{}
	summary, err := Run(context.Background(), fetcher, &fakeWriter{}, Options{Symbols: []string{"IBM"}, Days: 0, Now: fixedNow})
	require.NoError(t, err)
	assert.Empty(t, fetcher.calls)
	assert.ErrorIs(t, summary.Failed["IBM"], ErrInvalidInput)
}

func TestRun_WriterErrorIsSkipped(t *testing.T) {
	fetcher := &fakeFetcher{series: map[string]map[string]DailyBar{"IBM": bars("2023-01-13")}}
	summary, err := Run(context.Background(), fetcher, &fakeWriter{err: errors.New("deadlock")}, Options{
		Symbols: []string{"IBM"}, Days: 14, Now: fixedNow,
	})
	require.NoError(t, err)
	assert.Zero(t, summary.Rows)
	assert.ErrorContains(t, summary.Failed["IBM"], "upsert IBM: deadlock")
}

func TestRun_NothingRecent(t *testing.T) {
	fetcher := &fakeFetcher{series: map[string]map[string]DailyBar{"IBM": bars("2020-01-02")}}
	writer := &fakeWriter{}
	summary, err := Run(context.Background(), fetcher, writer, Options{Symbols: []string{"IBM"}, Days: 14, Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, []string{"IBM"}, summary.Succeeded)
	assert.Empty(t, writer.rows)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, &fakeFetcher{}, &fakeWriter{}, Options{
		Symbols: []string{"IBM", "AAPL"}, Days: 14, RequestsPerMinute: 5, Now: fixedNow,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_RateLimited(t *testing.T) {
	fetcher := &fakeFetcher{series: map[string]map[string]DailyBar{"A": bars(), "B": bars()}}

	// 1200/min is one call every 50ms: the second call must wait.
	start := time.Now()
	_, err := Run(context.Background(), fetcher, &fakeWriter{}, Options{
		Symbols: []string{"A", "B"}, Days: 14, Parallel: 2, RequestsPerMinute: 1200, Now: fixedNow,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	assert.Len(t, fetcher.calls, 2)
}
