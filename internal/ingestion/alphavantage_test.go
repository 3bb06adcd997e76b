package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ibmPayload = `{
  "Meta Data": {"1. Information": "Daily Prices", "2. Symbol": "IBM"},
  "Time Series (Daily)": {
    "2023-01-06": {"1. open": "153.4300", "2. high": "155.0000", "3. low": "152.5000", "4. close": "154.9000", "5. volume": "3000000"},
    "2023-01-05": {"1. open": "153.0800", "2. high": "154.0000", "3. low": "152.0000", "4. close": "154.5200", "5. volume": "62199013"}
  }
}`

func TestAlphaVantageClient_FetchDaily(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantLen int
	}{
		{name: "series", status: 200, body: ibmPayload, wantLen: 2},
		{name: "unknown symbol", status: 200, body: `{"Error Message": "Invalid API call."}`, wantErr: ErrSymbolNotFound},
		{name: "note throttle", status: 200, body: `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute"}`, wantErr: ErrThrottled},
		{name: "information throttle", status: 200, body: `{"Information": "rate limit reached"}`, wantErr: ErrThrottled},
		{name: "no series", status: 200, body: `{}`},
		{name: "server error", status: 500, body: `oops`},
		{name: "not json", status: 200, body: `<html>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotQuery map[string]string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/query", r.URL.Path)
				q := r.URL.Query()
				gotQuery = map[string]string{
					"function":   q.Get("function"),
					"outputsize": q.Get("outputsize"),
					"symbol":     q.Get("symbol"),
					"apikey":     q.Get("apikey"),
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewAlphaVantageClient(srv.URL, "demo-key", 5*time.Second)
			series, err := c.FetchDaily(context.Background(), "IBM")

			assert.Equal(t, map[string]string{
				"function": "TIME_SERIES_DAILY", "outputsize": "compact", "symbol": "IBM", "apikey": "demo-key",
			}, gotQuery)

			if tc.wantLen > 0 {
				require.NoError(t, err)
				require.Len(t, series, tc.wantLen)
				assert.Equal(t, "153.0800", series["2023-01-05"].Open)
				assert.Equal(t, "62199013", series["2023-01-05"].Volume)
				return
			}
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
			}
		})
	}
}

func TestAlphaVantageClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ibmPayload))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAlphaVantageClient(srv.URL, "k", time.Second).FetchDaily(ctx, "IBM")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
