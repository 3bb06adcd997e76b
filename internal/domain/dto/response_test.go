package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/finpulse/internal/domain/models"
)

func TestFinancialDataResponse_DefaultShape(t *testing.T) {
	resp := NewFinancialDataResponse(3, 5)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"data":[],"pagination":{"count":0,"page":3,"limit":5,"pages":1},"info":{"error":"","kind":""}}`,
		string(raw))
}

func TestFinancialDataResponse_SetPage(t *testing.T) {
	resp := NewFinancialDataResponse(0, 5)
	resp.SetPage(&models.FinancialDataPage{
		Rows: []models.FinancialData{{
			Symbol:     "IBM",
			Date:       time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC),
			OpenPrice:  decimal.RequireFromString("153.0800"),
			ClosePrice: decimal.RequireFromString("154.52"),
			Volume:     62199013,
		}},
		Count: 1, Page: 0, Limit: 5, Pages: 1,
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"data":[{"symbol":"IBM","date":"2023-01-05","open_price":153.08,"close_price":154.52,"volume":"62199013"}],
		"pagination":{"count":1,"page":0,"limit":5,"pages":1},
		"info":{"error":"","kind":""}
	}`, string(raw))
}

func TestFinancialDataResponse_SetPageNil(t *testing.T) {
	resp := NewFinancialDataResponse(1, 10)
	resp.SetPage(nil)
	assert.Empty(t, resp.Data)
	assert.NotNil(t, resp.Data)
	assert.Equal(t, int64(1), resp.Pagination.Pages)
}

func TestStatisticsResponse_SetStatistics(t *testing.T) {
	sym, start, end := "IBM", "2023-01-01", "2023-01-10"
	resp := NewStatisticsResponse(&sym, &start, &end)
	resp.SetStatistics(&models.Statistics{
		Symbol:             sym,
		StartDate:          start,
		EndDate:            end,
		AverageOpenPrice:   decimal.RequireFromString("154.5400000000000000"),
		AverageClosePrice:  decimal.RequireFromString("155.005"),
		AverageDailyVolume: decimal.RequireFromString("62199012.5"),
	})

	assert.Equal(t, "154.54", resp.Data.AverageDailyOpenPrice)
	assert.Equal(t, "155.01", resp.Data.AverageDailyClosePrice)
	assert.Equal(t, "62199013", resp.Data.AverageDailyVolume)
}

func TestStatisticsResponse_NoStatsOmitsAverages(t *testing.T) {
	sym := "XXX"
	resp := NewStatisticsResponse(&sym, nil, nil)
	resp.SetStatistics(nil)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"data":{"symbol":"XXX","start_date":null,"end_date":null},"info":{"error":"","kind":""}}`,
		string(raw))
}
