package validator

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/guttosm/finpulse/internal/apperr"
	"github.com/guttosm/finpulse/internal/domain/models"
)

// datePattern accepts YYYY-MM-DD with a 19xx/20xx year, month 01-12 and day
// 01-31. Calendar validity (e.g. 2023-02-30) is not checked.
var datePattern = regexp.MustCompile(`^(19|20)\d{2}-(0[1-9]|1[0-2])-(0[1-9]|1\d|2\d|3[01])$`)

const (
	// DefaultLimit is the page size used when none is configured.
	DefaultLimit = 5

	MsgInvalidStartDate = "invalid start_date"
	MsgInvalidEndDate   = "invalid end_date"
	MsgRequired         = "start_date, end_date, and symbol are required parameters"
	MsgInvalidRange     = "invalid start_date/end_date"
)

// Validator turns raw query-string values into typed query inputs.
//
// A nil *string argument means the parameter was absent from the request.
// An empty value is treated the same as an absent one.
type Validator struct {
	defaultLimit int
	maxLimit     int
}

// New builds a Validator. defaultLimit <= 0 falls back to DefaultLimit;
// maxLimit <= 0 disables the page-size ceiling.
func New(defaultLimit, maxLimit int) *Validator {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit > 0 && defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	if maxLimit < 0 {
		maxLimit = 0
	}
	return &Validator{defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	return datePattern.MatchString(s)
}

// Listing validates the parameters of GET /api/financial_data.
//
// The returned filter is always usable. Malformed dates are dropped from it
// and reported through a validation error, so the caller can still run the
// query and surface the message alongside the results.
func (v *Validator) Listing(symbol, startDate, endDate *string, limit, page string) (models.QueryFilter, error) {
	f := models.QueryFilter{
		Symbol: present(symbol),
		Limit:  v.limit(limit),
		Page:   nonNegative(page, 0),
	}

	var problems []string
	if s := present(startDate); s != nil {
		if ValidDate(*s) {
			f.StartDate = s
		} else {
			problems = append(problems, MsgInvalidStartDate)
		}
	}
	if e := present(endDate); e != nil {
		if ValidDate(*e) {
			f.EndDate = e
		} else {
			problems = append(problems, MsgInvalidEndDate)
		}
	}

	if len(problems) > 0 {
		return f, apperr.New(apperr.KindValidation, strings.Join(problems, "; "))
	}
	return f, nil
}

// Statistics validates the parameters of GET /api/statistics. All three are
// required, both dates must be well formed and endDate must not precede
// startDate.
func (v *Validator) Statistics(symbol, startDate, endDate *string) (models.StatisticsQuery, error) {
	sym, start, end := present(symbol), present(startDate), present(endDate)
	if sym == nil || start == nil || end == nil {
		return models.StatisticsQuery{}, apperr.New(apperr.KindValidation, MsgRequired)
	}
	// fixed-width ISO dates order lexically
	if !ValidDate(*start) || !ValidDate(*end) || *end < *start {
		return models.StatisticsQuery{}, apperr.New(apperr.KindValidation, MsgInvalidRange)
	}
	return models.StatisticsQuery{Symbol: *sym, StartDate: *start, EndDate: *end}, nil
}

func (v *Validator) limit(raw string) int {
	n := nonNegative(raw, v.defaultLimit)
	if n == 0 {
		return v.defaultLimit
	}
	if v.maxLimit > 0 && n > v.maxLimit {
		return v.maxLimit
	}
	return n
}

func present(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// nonNegative parses an all-digit string. Anything else yields def; values
// beyond int range saturate.
func nonNegative(raw string, def int) int {
	if raw == "" {
		return def
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return def
		}
	}
	n, err := strconv.ParseInt(raw, 10, 0)
	if err != nil {
		return math.MaxInt
	}
	return int(n)
}
