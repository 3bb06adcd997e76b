package dto

import (
	"encoding/json"
	"strconv"

	"github.com/guttosm/finpulse/internal/domain/models"
)

const dateLayout = "2006-01-02"

// FinancialDataItem is one row of GET /api/financial_data.
//
// Prices are emitted as JSON numbers using their exact decimal text; volume is
// a string so consumers that auto-parse numbers never lose integer precision.
type FinancialDataItem struct {
	Symbol     string      `json:"symbol" example:"IBM"`
	Date       string      `json:"date" example:"2023-01-05"`
	OpenPrice  json.Number `json:"open_price" swaggertype:"number" example:"153.08"`
	ClosePrice json.Number `json:"close_price" swaggertype:"number" example:"154.52"`
	Volume     string      `json:"volume" example:"62199013"`
}

// Pagination describes the page returned and the totals of the match set.
type Pagination struct {
	Count int64 `json:"count" example:"20"`
	Page  int   `json:"page" example:"2"`
	Limit int   `json:"limit" example:"3"`
	Pages int64 `json:"pages" example:"7"`
}

// FinancialDataResponse is the envelope of GET /api/financial_data.
type FinancialDataResponse struct {
	Data       []FinancialDataItem `json:"data"`
	Pagination Pagination          `json:"pagination"`
	Info       Info                `json:"info"`
}

// NewFinancialDataResponse returns the default envelope: no rows, count 0 and
// pages 1 for the requested page and limit.
func NewFinancialDataResponse(page, limit int) FinancialDataResponse {
	return FinancialDataResponse{
		Data: []FinancialDataItem{},
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Pages: 1,
		},
	}
}

// SetPage fills data and pagination from a listing page.
func (r *FinancialDataResponse) SetPage(p *models.FinancialDataPage) {
	if p == nil {
		return
	}
	r.Data = make([]FinancialDataItem, 0, len(p.Rows))
	for _, row := range p.Rows {
		r.Data = append(r.Data, NewFinancialDataItem(row))
	}
	r.Pagination = Pagination{Count: p.Count, Page: p.Page, Limit: p.Limit, Pages: p.Pages}
}

// NewFinancialDataItem shapes a stored row for the wire.
func NewFinancialDataItem(row models.FinancialData) FinancialDataItem {
	return FinancialDataItem{
		Symbol:     row.Symbol,
		Date:       row.Date.Format(dateLayout),
		OpenPrice:  json.Number(row.OpenPrice.String()),
		ClosePrice: json.Number(row.ClosePrice.String()),
		Volume:     strconv.FormatInt(row.Volume, 10),
	}
}
