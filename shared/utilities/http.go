package utilities

import (
	"encoding/json"
	"net/http"

	"github.com/vasapolrittideah/devconnector-api/shared/validation"
)

const internalErrorBody = "Internal Server Error"

// ErrorResponse is the uniform error body: { "errors": [ { "msg": ..., "param": ... } ] }.
type ErrorResponse struct {
	Errors validation.Errors `json:"errors"`
}

// MessageResponse is the body of successful operations that return no resource.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteErrors writes the uniform error body.
func WriteErrors(w http.ResponseWriter, status int, errs ...validation.FieldError) {
	WriteJSON(w, status, ErrorResponse{Errors: errs})
}

// WriteError writes a single error message without field attribution.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteErrors(w, status, validation.FieldError{Msg: msg})
}

// WriteInternalError writes the plain-text 500 response. Error details never reach the client.
func WriteInternalError(w http.ResponseWriter) {
	http.Error(w, internalErrorBody, http.StatusInternalServerError)
}
