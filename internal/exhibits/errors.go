package exhibits

import (
	"errors"
	"net/http"
)

// Domain errors for exhibit operations.
var (
	ErrNotFound       = errors.New("exhibit not found")
	ErrDuplicate      = errors.New("exhibit already exists for document")
	ErrInvalidOrder   = errors.New("order is not a permutation of current exhibits")
	ErrInvalidRequest = errors.New("invalid request")
)

// MapHTTPStatus maps exhibit domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidOrder) || errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
