package dto

import "github.com/guttosm/finpulse/internal/domain/models"

// StatisticsData is the data block of GET /api/statistics.
//
// The request parameters are always echoed back (null when absent); the
// averages are only present when the query found rows.
type StatisticsData struct {
	Symbol                 *string `json:"symbol" example:"IBM"`
	StartDate              *string `json:"start_date" example:"2023-01-05"`
	EndDate                *string `json:"end_date" example:"2023-01-10"`
	AverageDailyOpenPrice  string  `json:"average_daily_open_price,omitempty" example:"123.45"`
	AverageDailyClosePrice string  `json:"average_daily_close_price,omitempty" example:"234.56"`
	AverageDailyVolume     string  `json:"average_daily_volume,omitempty" example:"1000000"`
}

// StatisticsResponse is the envelope of GET /api/statistics.
type StatisticsResponse struct {
	Data StatisticsData `json:"data"`
	Info Info           `json:"info"`
}

// NewStatisticsResponse echoes the raw request parameters into an envelope
// without averages.
func NewStatisticsResponse(symbol, startDate, endDate *string) StatisticsResponse {
	return StatisticsResponse{
		Data: StatisticsData{Symbol: symbol, StartDate: startDate, EndDate: endDate},
	}
}

// SetStatistics renders the averages: prices with two fractional digits,
// volume rounded to an integer.
func (r *StatisticsResponse) SetStatistics(s *models.Statistics) {
	if s == nil {
		return
	}
	r.Data.AverageDailyOpenPrice = s.AverageOpenPrice.StringFixed(2)
	r.Data.AverageDailyClosePrice = s.AverageClosePrice.StringFixed(2)
	r.Data.AverageDailyVolume = s.AverageDailyVolume.StringFixed(0)
}
