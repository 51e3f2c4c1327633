package api

import (
	"net/http"

	"github.com/taskbook/taskbook-api/internal/store"
)

// HTTP-safe messages for the error classes handlers can surface.
const (
	msgInvalidRequest = "Invalid request format"
	msgTaskNotFound   = "Task not found"
	msgInternalError  = "An internal error occurred"
)

// statusForError maps a service/store error to an HTTP status code and a
// client-safe message. Validation messages come from domain sentinels and
// carry no internal detail; everything unexpected collapses to a generic 500.
func statusForError(err error) (int, string) {
	switch {
	case store.IsValidationError(err):
		return http.StatusBadRequest, err.Error()
	case store.IsNotFoundError(err):
		return http.StatusNotFound, msgTaskNotFound
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}
