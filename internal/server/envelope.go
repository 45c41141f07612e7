package server

import (
	"encoding/json"
	"net/http"

	"github.com/cristianoliveira/folio/internal/logging"
	"github.com/cristianoliveira/folio/internal/query"
)

// Response is the JSON envelope of every relay response.
type Response struct {
	Result  any        `json:"result"`
	Success bool       `json:"success"`
	Errors  []APIError `json:"errors"`
}

// APIError is a single error in a Response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ListResult is the result of a list endpoint.
type ListResult struct {
	Items  any          `json:"items"`
	Facets query.Facets `json:"facets"`
	Total  int          `json:"total"`
}

// SuccessResponse wraps result in a successful envelope.
func SuccessResponse(result any) Response {
	return Response{Result: result, Success: true, Errors: []APIError{}}
}

// ErrorResponse builds a failed envelope.
func ErrorResponse(code int, message string) Response {
	return Response{Success: false, Errors: []APIError{{Code: code, Message: message}}}
}

// WriteJSON encodes resp with the given status code.
func WriteJSON(w http.ResponseWriter, status int, resp any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error("encode response failed", "err", err)
	}
}
