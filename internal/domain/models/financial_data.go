package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialData is one daily bar for a symbol, stored in the financial_data
// table. The pair (Symbol, Date) is the primary key: re-ingesting the same
// day overwrites the existing row.
//
// Column order:
//  1. symbol
//  2. date
//  3. open_price
//  4. close_price
//  5. volume
type FinancialData struct {
	Symbol     string
	Date       time.Time // calendar date, time part is zero
	OpenPrice  decimal.Decimal
	ClosePrice decimal.Decimal
	Volume     int64
}

// QueryFilter holds the listing filters for GET /api/financial_data.
//
// A nil Symbol, StartDate or EndDate means "no constraint on that field".
// Dates are kept in their validated YYYY-MM-DD text form.
type QueryFilter struct {
	Symbol    *string
	StartDate *string
	EndDate   *string
	Limit     int
	Page      int
}

// FinancialDataPage is one page of listing results plus the totals of the
// whole match set.
type FinancialDataPage struct {
	Rows  []FinancialData
	Count int64 // rows matching the filter, ignoring pagination
	Page  int
	Limit int
	Pages int64
}
