package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/finpulse/internal/logger"
)

func TestToString(t *testing.T) {
	if s := toString(nil); s != "" {
		t.Fatalf("nil -> %q, want empty", s)
	}
	if s := toString("abc"); s != "abc" {
		t.Fatalf("string -> %q, want 'abc'", s)
	}
	if s := toString(123); s != "" {
		t.Fatalf("non-string -> %q, want empty", s)
	}
}

func TestRequestLogger_Fields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger.InitWithWriter(&buf)
	defer logger.Init()

	router := gin.New()
	router.Use(RequestID(), RequestLogger())
	router.GET("/items/:id", func(c *gin.Context) { c.String(http.StatusNotFound, "nope") })

	req := httptest.NewRequest(http.MethodGet, "/items/7", nil)
	req.Header.Set(RequestIDHeader, "rid-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	want := map[string]any{
		"request_id": "rid-1",
		"method":     "GET",
		"path":       "/items/7",
		"route":      "/items/:id",
		"status":     float64(404),
		"level":      "warn",
		"component":  "http",
		"message":    "http_request",
	}
	for k, v := range want {
		if line[k] != v {
			t.Fatalf("field %s = %v, want %v (line %v)", k, line[k], v, line)
		}
	}
}
