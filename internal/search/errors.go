package search

import "net/http"

type ErrorCode string

const (
	ErrorCodeValidation          ErrorCode = "INVALID_REQUEST"
	ErrorCodeAuthentication      ErrorCode = "AUTHENTICATION_FAILED"
	ErrorCodeNoDestinationsFound ErrorCode = "NO_DESTINATIONS_FOUND"
	ErrorCodeNoOffersFound       ErrorCode = "NO_OFFERS_FOUND"
	ErrorCodeInternalFailure     ErrorCode = "INTERNAL_FAILURE"
)

// AppError carries the HTTP status and machine-readable code for an error
// so the handler layer can map it without string matching.
type AppError struct {
	Status  int
	Code    ErrorCode
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewInvalidRequestError(msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: ErrorCodeValidation, Message: msg}
}

func NewAuthenticationError(msg string) *AppError {
	return &AppError{Status: http.StatusBadGateway, Code: ErrorCodeAuthentication, Message: msg}
}

// NewNoDestinationsError marks the legitimate empty outcome of destination
// discovery. Callers render an empty state, not an error page.
func NewNoDestinationsError(origin string) *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Code:    ErrorCodeNoDestinationsFound,
		Message: "no destinations found for origin " + origin,
	}
}

func NewNoOffersError() *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Code:    ErrorCodeNoOffersFound,
		Message: "no flight offers matched the search criteria",
	}
}

func NewInternalError(msg string) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Code: ErrorCodeInternalFailure, Message: msg}
}
