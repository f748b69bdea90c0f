// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/odyssey-erp/shopdesk/internal/form"
	"github.com/odyssey-erp/shopdesk/internal/remote"
)

// Sentinel errors for handlers.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

// RespondError maps errors to HTTP responses using RFC7807. Backend failures
// keep the backend's status for client errors and become 502 otherwise.
func RespondError(w http.ResponseWriter, err error) {
	if fields := form.FieldsOf(err); fields != nil {
		ValidationProblem(w, err.Error(), fields)
		return
	}
	var re *remote.Error
	if errors.As(err, &re) {
		respondRemote(w, re)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrConflict):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func respondRemote(w http.ResponseWriter, re *remote.Error) {
	switch re.Kind {
	case remote.KindValidation, remote.KindUnauthorized, remote.KindForbidden,
		remote.KindNotFound, remote.KindConflict, remote.KindRejected:
		status := re.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		Problem(w, status, http.StatusText(status), re.Message)
	case remote.KindTimeout:
		Problem(w, http.StatusGatewayTimeout, "Backend Timeout", re.Message)
	case remote.KindCanceled:
		// 499 is what nginx logs for a client that went away.
		Problem(w, 499, "Client Closed Request", "")
	default:
		Problem(w, http.StatusBadGateway, "Backend Error", re.Message)
	}
}
