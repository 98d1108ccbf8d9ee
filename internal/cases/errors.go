package cases

import (
	"errors"
	"net/http"
)

// Domain errors for case operations.
var (
	ErrNotFound          = errors.New("case not found")
	ErrDuplicate         = errors.New("case already exists")
	ErrInvalidVisaType   = errors.New("unknown visa type")
	ErrInvalidStyle      = errors.New("unknown numbering style")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidRequest    = errors.New("invalid request")
)

// MapHTTPStatus maps case domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidTransition) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidVisaType) ||
		errors.Is(err, ErrInvalidStyle) ||
		errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
