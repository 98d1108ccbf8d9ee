package assembly

import (
	"errors"
	"net/http"
)

// Domain errors for package operations.
var (
	ErrNotFound       = errors.New("package not found")
	ErrDuplicate      = errors.New("package already exists")
	ErrNoExhibits     = errors.New("case has no exhibits to assemble")
	ErrNotCompleted   = errors.New("package is not completed")
	ErrNotRunning     = errors.New("package is not running")
	ErrInvalidRequest = errors.New("invalid request")
)

// MapHTTPStatus maps package domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNoExhibits) ||
		errors.Is(err, ErrNotCompleted) ||
		errors.Is(err, ErrNotRunning) ||
		errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
