package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/finpulse/internal/domain/models"
)

const (
	dateLayout  = "2006-01-02"
	listColumns = "symbol, date, open_price, close_price, volume"

	averageQueryTemplate = `
		SELECT AVG(open_price), AVG(close_price), AVG(volume)
		FROM financial_data
		WHERE symbol = %s AND date >= %s AND date <= %s`
)

// buildWhere renders one predicate per present filter field. Absent fields add
// nothing, so a nil filter value never excludes a row.
func buildWhere(d Dialect, f models.QueryFilter) (string, []any) {
	var conditions []string
	var args []any

	add := func(expr string, v string) {
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf(expr, d.Placeholder(len(args))))
	}
	if f.Symbol != nil {
		add("symbol = %s", *f.Symbol)
	}
	if f.StartDate != nil {
		add("date >= %s", lowerBound(*f.StartDate))
	}
	if f.EndDate != nil {
		add("date <= %s", upperBound(*f.EndDate))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// BuildListingQuery returns the page query for f. The last selected column is
// the total number of matching rows (window count), so one statement returns
// both the page and the total.
func BuildListingQuery(d Dialect, f models.QueryFilter, offset int64) (string, []any) {
	where, args := buildWhere(d, f)

	limitPH := d.Placeholder(len(args) + 1)
	offsetPH := d.Placeholder(len(args) + 2)
	args = append(args, f.Limit, offset)

	query := "SELECT " + listColumns + ", COUNT(*) OVER() AS total_count" +
		" FROM financial_data" + where +
		" ORDER BY date, symbol" +
		" LIMIT " + limitPH + " OFFSET " + offsetPH
	return query, args
}

// BuildCountQuery returns the number of rows matching f, ignoring pagination.
func BuildCountQuery(d Dialect, f models.QueryFilter) (string, []any) {
	where, args := buildWhere(d, f)
	return "SELECT COUNT(*) FROM financial_data" + where, args
}

// BuildAverageQuery returns the statistics aggregation for q.
func BuildAverageQuery(d Dialect, q models.StatisticsQuery) (string, []any) {
	query := fmt.Sprintf(averageQueryTemplate, d.Placeholder(1), d.Placeholder(2), d.Placeholder(3))
	return query, []any{q.Symbol, lowerBound(q.StartDate), upperBound(q.EndDate)}
}

// Dates such as 2023-02-30 are accepted upstream but a DATE column rejects
// them. lowerBound and upperBound rewrite such a bound to the real calendar
// date selecting the same rows: date >= 2023-02-30 is date >= 2023-03-01,
// date <= 2023-02-30 is date <= 2023-02-28. Other values pass through.
func lowerBound(s string) string {
	y, m, d, ok := splitDate(s)
	if !ok || d <= daysIn(y, m) {
		return s
	}
	return time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC).Format(dateLayout)
}

func upperBound(s string) string {
	y, m, d, ok := splitDate(s)
	if !ok || d <= daysIn(y, m) {
		return s
	}
	return time.Date(y, m, daysIn(y, m), 0, 0, 0, 0, time.UTC).Format(dateLayout)
}

func splitDate(s string) (int, time.Month, int, bool) {
	if len(s) != len(dateLayout) || s[4] != '-' || s[7] != '-' {
		return 0, 0, 0, false
	}
	y, errY := strconv.Atoi(s[:4])
	m, errM := strconv.Atoi(s[5:7])
	d, errD := strconv.Atoi(s[8:])
	if errY != nil || errM != nil || errD != nil || m < 1 || m > 12 || d < 1 {
		return 0, 0, 0, false
	}
	return y, time.Month(m), d, true
}

// daysIn returns the number of days in month m of year y.
func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
