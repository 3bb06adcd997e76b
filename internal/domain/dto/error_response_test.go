package dto

import (
	"errors"
	"testing"

	"github.com/guttosm/finpulse/internal/apperr"
)

func TestErrorResponse_Error(t *testing.T) {
	e := ErrorResponse{Info: Info{Error: "oops"}}
	if e.Error() != "oops" {
		t.Fatalf("want 'oops' got %q", e.Error())
	}
}

func TestNewErrorResponse(t *testing.T) {
	// without inner error
	e := NewErrorResponse(apperr.KindRateLimited, "rate limit exceeded", nil)
	if e.Info.Error != "rate limit exceeded" || e.Info.Kind != "rate_limited" || e.Data != nil {
		t.Fatalf("unexpected %+v", e)
	}

	// with inner error
	e2 := NewErrorResponse(apperr.KindInternal, "internal server error", errors.New("boom"))
	if e2.Info.Error != "internal server error: boom" || e2.Info.Kind != "internal" {
		t.Fatalf("unexpected %+v", e2)
	}
}

func TestNewInfo(t *testing.T) {
	if got := NewInfo(nil); got.Failed() || got.Kind != "" {
		t.Fatalf("nil error should be success, got %+v", got)
	}
	got := NewInfo(apperr.New(apperr.KindNotFound, "No data found"))
	if !got.Failed() || got.Error != "No data found" || got.Kind != "not_found" {
		t.Fatalf("unexpected %+v", got)
	}
	if got := NewInfo(errors.New("raw")); got.Kind != "internal" {
		t.Fatalf("unclassified errors should be internal, got %+v", got)
	}
}
