package ingestion

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/guttosm/finpulse/internal/logger"
	"github.com/guttosm/finpulse/internal/metrics"
	"github.com/guttosm/finpulse/internal/storage"
)

// ErrInvalidInput marks a symbol skipped because of an empty symbol or a
// non-positive look-back window.
var ErrInvalidInput = errors.New("invalid input")

// Options controls one ingestion run.
//
//   - Symbols: symbols fetched, one provider call each.
//   - Days: look-back window in calendar days; bars older than now-Days are dropped.
//   - Parallel: symbols processed concurrently (<= 0 means 1).
//   - RequestsPerMinute: provider budget shared by all workers (<= 0 disables the limit).
//   - Now: clock, defaults to time.Now.
type Options struct {
	Symbols           []string
	Days              int
	Parallel          int
	RequestsPerMinute int
	Now               func() time.Time
}

// Summary reports what a run did.
type Summary struct {
	Rows      int              // rows upserted across all symbols
	Succeeded []string         // symbols fully ingested, sorted
	Failed    map[string]error // symbols skipped and why
}

// Run fetches every symbol, keeps the bars of the last opts.Days days and
// upserts them through writer.
//
// Behavior:
//   - Every symbol is independent: a failure is logged, counted and recorded
//     in the Summary, and the remaining symbols still run.
//   - Provider calls wait on a shared rate limiter.
//   - Each symbol's rows are written in one transaction; re-running is idempotent.
//
// Returns:
//   - error: only when ctx is cancelled before the run completes.
func Run(ctx context.Context, fetcher Fetcher, writer storage.FinancialDataWriter, opts Options) (Summary, error) {
	log := logger.Component("ingestion")

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = 1
	}
	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RequestsPerMinute))
	}
	limiter := rate.NewLimiter(limit, 1)
	cutoff := now().AddDate(0, 0, -opts.Days)

	var (
		mu      sync.Mutex
		summary = Summary{Failed: map[string]error{}}
	)
	record := func(symbol string, rows int, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			summary.Failed[symbol] = err
			metrics.IngestFailuresTotal.WithLabelValues(symbol).Inc()
			return
		}
		summary.Rows += rows
		summary.Succeeded = append(summary.Succeeded, symbol)
		metrics.IngestedRowsTotal.WithLabelValues(symbol).Add(float64(rows))
	}

	log.Info().
		Strs("symbols", opts.Symbols).
		Int("days", opts.Days).
		Int("parallel", parallel).
		Msg("ingestion start")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for _, symbol := range opts.Symbols {
		symbol := symbol // per-iteration copy; go directive is below 1.22
		g.Go(func() error {
			if symbol == "" || opts.Days <= 0 {
				log.Warn().Str("symbol", symbol).Int("days", opts.Days).Msg("invalid input, skipped")
				record(symbol, 0, ErrInvalidInput)
				return nil
			}

			if err := limiter.Wait(gctx); err != nil {
				return fmt.Errorf("%s: waiting for provider budget: %w", symbol, err)
			}

			start := time.Now()
			n, err := ingestSymbol(gctx, fetcher, writer, symbol, cutoff)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Error().Err(err).Str("symbol", symbol).Msg("symbol skipped")
				record(symbol, 0, err)
				return nil
			}

			log.Info().
				Str("symbol", symbol).
				Int("rows", n).
				Dur("elapsed", time.Since(start)).
				Msg("symbol done")
			record(symbol, n, nil)
			return nil
		})
	}

	err := g.Wait()
	sort.Strings(summary.Succeeded)

	if err != nil {
		return summary, err
	}

	log.Info().
		Int("rows", summary.Rows).
		Int("succeeded", len(summary.Succeeded)).
		Int("failed", len(summary.Failed)).
		Msg("ingestion completed")
	return summary, nil
}

func ingestSymbol(ctx context.Context, fetcher Fetcher, writer storage.FinancialDataWriter, symbol string, cutoff time.Time) (int, error) {
	series, err := fetcher.FetchDaily(ctx, symbol)
	if err != nil {
		return 0, err
	}

	rows, err := ParseDailySeries(symbol, series, cutoff)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	n, err := writer.UpsertFinancialData(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("upsert %s: %w", symbol, err)
	}
	return n, nil
}
