package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/finpulse/internal/apperr"
	"github.com/guttosm/finpulse/internal/domain/dto"
	"github.com/guttosm/finpulse/internal/logger"
)

// ErrorHandler logs every error attached to the context with c.Error.
//
// Handlers that already wrote their envelope are left alone; when nothing
// was written, the last error is rendered as an ErrorResponse with the
// status of its kind.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}

	rid := GetRequestID(c)
	for _, e := range c.Errors {
		logger.L().Error().
			Err(e.Err).
			Str("request_id", rid).
			Str("kind", string(apperr.KindOf(e.Err))).
			Str("path", c.Request.URL.Path).
			Msg("request error")
	}

	if c.Writer.Written() {
		return
	}

	last := c.Errors.Last().Err
	kind := apperr.KindOf(last)
	c.AbortWithStatusJSON(apperr.HTTPStatus(kind), dto.ErrorResponse{Info: dto.NewInfo(last)})
}

// AbortWithError stops the chain and writes an ErrorResponse with status.
// The kind comes from err when it is an *apperr.Error, otherwise from status.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	kind := kindForStatus(status)
	var ae *apperr.Error
	if errors.As(err, &ae) {
		kind = ae.Kind
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(kind, message, err))
}

func kindForStatus(status int) apperr.Kind {
	switch status {
	case http.StatusBadRequest:
		return apperr.KindValidation
	case http.StatusNotFound:
		return apperr.KindNotFound
	case http.StatusTooManyRequests:
		return apperr.KindRateLimited
	case http.StatusBadGateway:
		return apperr.KindStore
	case http.StatusServiceUnavailable:
		return apperr.KindStoreUnavailable
	default:
		return apperr.KindInternal
	}
}
