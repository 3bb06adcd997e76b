package models

import "github.com/shopspring/decimal"

// StatisticsQuery is a validated request for GET /api/statistics.
// All fields are required and StartDate <= EndDate.
type StatisticsQuery struct {
	Symbol    string
	StartDate string
	EndDate   string
}

// Statistics holds the arithmetic means over every row of Symbol with a
// date in [StartDate, EndDate].
//
// swagger:model Statistics
type Statistics struct {
	Symbol             string
	StartDate          string
	EndDate            string
	AverageOpenPrice   decimal.Decimal
	AverageClosePrice  decimal.Decimal
	AverageDailyVolume decimal.Decimal
}
