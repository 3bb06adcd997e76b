package dto

import (
	"github.com/guttosm/finpulse/internal/apperr"
)

// Info carries the outcome of a request inside every envelope.
//
// An empty Error means success. Kind is the machine-readable category of the
// error (see apperr.Kind) and is empty on success.
type Info struct {
	Error string `json:"error" example:""`
	Kind  string `json:"kind" example:""`
}

// NewInfo builds the Info block for err. A nil err yields the success value.
func NewInfo(err error) Info {
	if err == nil {
		return Info{}
	}
	return Info{Error: err.Error(), Kind: string(apperr.KindOf(err))}
}

// Failed reports whether the envelope describes an error.
func (i Info) Failed() bool { return i.Error != "" }

// ErrorResponse is the envelope written by middlewares (panic recovery, rate
// limiting, unhandled handler errors) when no endpoint-specific shape exists.
// It keeps the {data, info} layout of the endpoint envelopes.
type ErrorResponse struct {
	Data any  `json:"data"`
	Info Info `json:"info"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	return e.Info.Error
}

// NewErrorResponse creates an ErrorResponse of the given kind. When err is not
// nil its text is appended to message.
func NewErrorResponse(kind apperr.Kind, message string, err error) ErrorResponse {
	text := message
	if err != nil {
		text = message + ": " + err.Error()
	}
	return ErrorResponse{Info: Info{Error: text, Kind: string(kind)}}
}
