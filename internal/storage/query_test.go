package storage

import (
	"reflect"
	"testing"

	"github.com/guttosm/finpulse/internal/domain/models"
)

func strPtr(s string) *string { return &s }

func TestBuildListingQuery(t *testing.T) {
	cases := []struct {
		name      string
		dialect   Dialect
		filter    models.QueryFilter
		offset    int64
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "no filters",
			dialect:   Postgres,
			filter:    models.QueryFilter{Limit: 5},
			wantQuery: "SELECT symbol, date, open_price, close_price, volume, COUNT(*) OVER() AS total_count FROM financial_data ORDER BY date, symbol LIMIT $1 OFFSET $2",
			wantArgs:  []any{5, int64(0)},
		},
		{
			name:      "symbol only",
			dialect:   Postgres,
			filter:    models.QueryFilter{Symbol: strPtr("IBM"), Limit: 5, Page: 2},
			offset:    10,
			wantQuery: "SELECT symbol, date, open_price, close_price, volume, COUNT(*) OVER() AS total_count FROM financial_data WHERE symbol = $1 ORDER BY date, symbol LIMIT $2 OFFSET $3",
			wantArgs:  []any{"IBM", 5, int64(10)},
		},
		{
			name:      "dates only",
			dialect:   Postgres,
			filter:    models.QueryFilter{StartDate: strPtr("2023-01-01"), EndDate: strPtr("2023-01-31"), Limit: 3},
			wantQuery: "SELECT symbol, date, open_price, close_price, volume, COUNT(*) OVER() AS total_count FROM financial_data WHERE date >= $1 AND date <= $2 ORDER BY date, symbol LIMIT $3 OFFSET $4",
			wantArgs:  []any{"2023-01-01", "2023-01-31", 3, int64(0)},
		},
		{
			name:      "all filters mysql",
			dialect:   MySQL,
			filter:    models.QueryFilter{Symbol: strPtr("AAPL"), StartDate: strPtr("2023-01-01"), EndDate: strPtr("2023-01-31"), Limit: 5},
			offset:    5,
			wantQuery: "SELECT symbol, date, open_price, close_price, volume, COUNT(*) OVER() AS total_count FROM financial_data WHERE symbol = ? AND date >= ? AND date <= ? ORDER BY date, symbol LIMIT ? OFFSET ?",
			wantArgs:  []any{"AAPL", "2023-01-01", "2023-01-31", 5, int64(5)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, args := BuildListingQuery(tc.dialect, tc.filter, tc.offset)
			if q != tc.wantQuery {
				t.Fatalf("query mismatch\n got: %s\nwant: %s", q, tc.wantQuery)
			}
			if !reflect.DeepEqual(args, tc.wantArgs) {
				t.Fatalf("args = %#v, want %#v", args, tc.wantArgs)
			}
		})
	}
}

func TestBuildCountQuery(t *testing.T) {
	q, args := BuildCountQuery(Postgres, models.QueryFilter{Symbol: strPtr("IBM"), EndDate: strPtr("2023-01-10"), Limit: 5, Page: 9})
	if q != "SELECT COUNT(*) FROM financial_data WHERE symbol = $1 AND date <= $2" {
		t.Fatalf("unexpected query %q", q)
	}
	if !reflect.DeepEqual(args, []any{"IBM", "2023-01-10"}) {
		t.Fatalf("unexpected args %#v", args)
	}

	q, args = BuildCountQuery(MySQL, models.QueryFilter{})
	if q != "SELECT COUNT(*) FROM financial_data" || len(args) != 0 {
		t.Fatalf("unexpected unfiltered count %q %v", q, args)
	}
}

func TestBuildAverageQuery(t *testing.T) {
	q, args := BuildAverageQuery(MySQL, models.StatisticsQuery{Symbol: "IBM", StartDate: "2023-01-01", EndDate: "2023-01-10"})
	if !reflect.DeepEqual(args, []any{"IBM", "2023-01-01", "2023-01-10"}) {
		t.Fatalf("unexpected args %#v", args)
	}
	want := "WHERE symbol = ? AND date >= ? AND date <= ?"
	if !containsCollapsed(q, want) {
		t.Fatalf("query %q does not contain %q", q, want)
	}
}

func TestDateBounds(t *testing.T) {
	cases := []struct {
		in, lower, upper string
	}{
		{"2023-01-15", "2023-01-15", "2023-01-15"},
		{"2023-02-28", "2023-02-28", "2023-02-28"},
		{"2023-02-30", "2023-03-01", "2023-02-28"},
		{"2024-02-30", "2024-03-01", "2024-02-29"},
		{"2023-04-31", "2023-05-01", "2023-04-30"},
		{"2023-12-31", "2023-12-31", "2023-12-31"},
		{"not-a-date", "not-a-date", "not-a-date"},
	}
	for _, tc := range cases {
		if got := lowerBound(tc.in); got != tc.lower {
			t.Errorf("lowerBound(%q) = %q, want %q", tc.in, got, tc.lower)
		}
		if got := upperBound(tc.in); got != tc.upper {
			t.Errorf("upperBound(%q) = %q, want %q", tc.in, got, tc.upper)
		}
	}
}

func TestBuildQueries_ImpossibleCalendarDates(t *testing.T) {
	_, args := BuildAverageQuery(Postgres, models.StatisticsQuery{Symbol: "IBM", StartDate: "2023-02-30", EndDate: "2023-04-31"})
	if !reflect.DeepEqual(args, []any{"IBM", "2023-03-01", "2023-04-30"}) {
		t.Fatalf("unexpected average args %#v", args)
	}

	_, args = BuildCountQuery(Postgres, models.QueryFilter{StartDate: strPtr("2023-01-01"), EndDate: strPtr("2023-02-31")})
	if !reflect.DeepEqual(args, []any{"2023-01-01", "2023-02-28"}) {
		t.Fatalf("unexpected count args %#v", args)
	}
}

func TestDialectFor(t *testing.T) {
	for _, name := range []string{"postgres", "mysql"} {
		d, err := DialectFor(name)
		if err != nil || d.Name() != name {
			t.Fatalf("DialectFor(%q) = %v, %v", name, d, err)
		}
	}
	if _, err := DialectFor("sqlite"); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
	if Postgres.Placeholder(3) != "$3" || MySQL.Placeholder(3) != "?" {
		t.Fatalf("unexpected placeholders")
	}
}
