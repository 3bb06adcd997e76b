package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/finpulse/internal/apperr"
	"github.com/guttosm/finpulse/internal/domain/dto"
	"github.com/guttosm/finpulse/internal/service"
	"github.com/guttosm/finpulse/internal/validator"
)

// Handler provides the HTTP handlers of the financial data API.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Call the service layer for data access
//   - Translate results and errors into the {data, info} envelope
//
// Every handled outcome, failures included, is answered with a JSON envelope;
// clients detect failure through info.error. With strict status enabled the
// HTTP status also reflects the error kind.
type Handler struct {
	svc          service.FinancialDataService
	validator    *validator.Validator
	strictStatus bool
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc: query use cases.
//   - v: request parameter validator.
//   - strictStatus: map error kinds to HTTP status codes instead of always 200.
func NewHandler(svc service.FinancialDataService, v *validator.Validator, strictStatus bool) *Handler {
	return &Handler{svc: svc, validator: v, strictStatus: strictStatus}
}

// GetFinancialData godoc
// @Summary      List daily bars
// @Description  Returns daily open/close prices and volume ordered by date, one page at a time. Every filter is optional.
// @Tags         financial_data
// @Produce      json
// @Param        symbol      query     string  false  "Stock symbol" example(IBM)
// @Param        start_date  query     string  false  "First date, YYYY-MM-DD" example(2023-01-01)
// @Param        end_date    query     string  false  "Last date, YYYY-MM-DD" example(2023-01-14)
// @Param        limit       query     int     false  "Page size" default(5)
// @Param        page        query     int     false  "Zero-based page index" default(0)
// @Success      200         {object}  dto.FinancialDataResponse  "Page (info.error set on soft errors)"
// @Failure      400         {object}  dto.FinancialDataResponse  "Invalid date (strict status only)"
// @Failure      404         {object}  dto.FinancialDataResponse  "No data (strict status only)"
// @Failure      502         {object}  dto.FinancialDataResponse  "Query failed (strict status only)"
// @Failure      503         {object}  dto.FinancialDataResponse  "Store unreachable (strict status only)"
// @Router       /api/financial_data [get]
func (h *Handler) GetFinancialData(c *gin.Context) {
	// ─── Validate params ──────────────────────────────
	filter, validationErr := h.validator.Listing(
		queryParam(c, "symbol"),
		queryParam(c, "start_date"),
		queryParam(c, "end_date"),
		c.Query("limit"),
		c.Query("page"),
	)
	resp := dto.NewFinancialDataResponse(filter.Page, filter.Limit)

	// ─── Query (runs even when a date was rejected) ───
	page, err := h.svc.List(c.Request.Context(), filter)
	resp.SetPage(page)

	// A store failure outranks a validation message; "no data" does not.
	outcome := validationErr
	switch {
	case err == nil:
	case apperr.Is(err, apperr.KindNotFound):
		if outcome == nil {
			outcome = err
		}
	default:
		_ = c.Error(err)
		outcome = err
	}

	resp.Info = dto.NewInfo(outcome)
	c.JSON(h.status(outcome), resp)
}

// GetStatistics godoc
// @Summary      Average prices and volume
// @Description  Returns the average daily open price, close price and volume of a symbol over an inclusive date range.
// @Tags         statistics
// @Produce      json
// @Param        symbol      query     string  true  "Stock symbol" example(IBM)
// @Param        start_date  query     string  true  "First date, YYYY-MM-DD" example(2023-01-01)
// @Param        end_date    query     string  true  "Last date, YYYY-MM-DD" example(2023-01-14)
// @Success      200         {object}  dto.StatisticsResponse  "Averages (info.error set on soft errors)"
// @Failure      400         {object}  dto.StatisticsResponse  "Missing or invalid parameters (strict status only)"
// @Failure      404         {object}  dto.StatisticsResponse  "No data (strict status only)"
// @Failure      502         {object}  dto.StatisticsResponse  "Query failed (strict status only)"
// @Failure      503         {object}  dto.StatisticsResponse  "Store unreachable (strict status only)"
// @Router       /api/statistics [get]
func (h *Handler) GetStatistics(c *gin.Context) {
	symbol := queryParam(c, "symbol")
	startDate := queryParam(c, "start_date")
	endDate := queryParam(c, "end_date")
	resp := dto.NewStatisticsResponse(symbol, startDate, endDate)

	// ─── Validate params (no query on failure) ────────
	q, err := h.validator.Statistics(symbol, startDate, endDate)
	if err != nil {
		resp.Info = dto.NewInfo(err)
		c.JSON(h.status(err), resp)
		return
	}

	// ─── Aggregate ────────────────────────────────────
	stats, err := h.svc.Statistics(c.Request.Context(), q)
	if err != nil && !apperr.Is(err, apperr.KindNotFound) {
		_ = c.Error(err)
	}
	resp.SetStatistics(stats)
	resp.Info = dto.NewInfo(err)
	c.JSON(h.status(err), resp)
}

func (h *Handler) status(err error) int {
	if !h.strictStatus {
		return http.StatusOK
	}
	return apperr.HTTPStatus(apperr.KindOf(err))
}

// queryParam returns nil when key is absent from the query string.
func queryParam(c *gin.Context, key string) *string {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	return &v
}
