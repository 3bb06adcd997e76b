package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrSymbolNotFound is returned when the provider does not know the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrThrottled is returned when the provider refuses the call because the
	// request budget of the API key is spent.
	ErrThrottled = errors.New("provider throttled the request")
)

// DailyBar is one entry of the provider's "Time Series (Daily)" object.
// Values are decimal strings.
type DailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

type dailyResponse struct {
	TimeSeries   map[string]DailyBar `json:"Time Series (Daily)"`
	ErrorMessage string              `json:"Error Message"`
	Note         string              `json:"Note"`
	Information  string              `json:"Information"`
}

// Fetcher returns the recent daily series of a symbol keyed by YYYY-MM-DD.
type Fetcher interface {
	FetchDaily(ctx context.Context, symbol string) (map[string]DailyBar, error)
}

// AlphaVantageClient fetches TIME_SERIES_DAILY from Alpha Vantage.
type AlphaVantageClient struct {
	client *resty.Client
	apiKey string
}

// NewAlphaVantageClient creates a client for baseURL (e.g.
// https://www.alphavantage.co) authenticated with apiKey.
func NewAlphaVantageClient(baseURL, apiKey string, timeout time.Duration) *AlphaVantageClient {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")

	return &AlphaVantageClient{client: client, apiKey: apiKey}
}

// FetchDaily gets the compact (last 100 trading days) daily series of symbol.
func (c *AlphaVantageClient) FetchDaily(ctx context.Context, symbol string) (map[string]DailyBar, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function":   "TIME_SERIES_DAILY",
			"outputsize": "compact",
			"symbol":     symbol,
			"apikey":     c.apiKey,
		}).
		Get("/query")
	if err != nil {
		return nil, fmt.Errorf("fetch daily series for %s: %w", symbol, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch daily series for %s: API error %d: %s", symbol, resp.StatusCode(), resp.String())
	}

	var body dailyResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("parse daily series for %s: %w", symbol, err)
	}

	switch {
	case body.ErrorMessage != "":
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	case body.Note != "":
		return nil, fmt.Errorf("%w: %s", ErrThrottled, body.Note)
	case body.Information != "":
		return nil, fmt.Errorf("%w: %s", ErrThrottled, body.Information)
	case body.TimeSeries == nil:
		return nil, fmt.Errorf("daily series for %s: response has no time series", symbol)
	}

	return body.TimeSeries, nil
}
