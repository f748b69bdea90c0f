// Package httpx writes JSON and RFC7807 problem responses.
package httpx

import (
	"encoding/json"
	"net/http"
)

const problemContentType = "application/problem+json"

// ProblemDetail is an RFC7807 body. Errors carries per-field validation
// messages keyed by JSON field name.
type ProblemDetail struct {
	Type   string            `json:"type,omitempty"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// JSON writes data with the given status.
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, "application/json", status, data)
}

// Problem writes a problem response.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	write(w, problemContentType, status, ProblemDetail{Title: title, Status: status, Detail: detail})
}

// ValidationProblem writes a 400 listing the rejected fields.
func ValidationProblem(w http.ResponseWriter, detail string, fields map[string]string) {
	write(w, problemContentType, http.StatusBadRequest, ProblemDetail{
		Title:  "Validation Failed",
		Status: http.StatusBadRequest,
		Detail: detail,
		Errors: fields,
	})
}

func write(w http.ResponseWriter, contentType string, status int, data any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
