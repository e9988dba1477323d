package server

import (
	"errors"
	"net/http"

	"github.com/vinayprograms/edinburgh/internal/agents"
	"github.com/vinayprograms/edinburgh/internal/tools"
)

// Envelope is the reply for a tool call over HTTP or NATS. Exactly one of
// Result or Error is set.
type Envelope struct {
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
	Code   string      `json:"code,omitempty"`
}

// Error codes carried in Envelope.Code.
const (
	CodeInvalidArgument = "invalid_argument"
	CodeNotFound        = "not_found"
	CodeDisabled        = "disabled"
	CodeInternal        = "internal"
)

// classify maps an error to its HTTP status and envelope code.
func classify(err error) (int, string) {
	var verr *tools.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, CodeInvalidArgument
	case errors.Is(err, tools.ErrToolNotFound), errors.Is(err, agents.ErrAgentNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, tools.ErrToolDisabled):
		return http.StatusForbidden, CodeDisabled
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func errorEnvelope(err error) (int, Envelope) {
	status, code := classify(err)
	return status, Envelope{Error: err.Error(), Code: code}
}
