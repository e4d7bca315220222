package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "ERR_INTERNAL"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Domain error codes surfaced over HTTP. These match the codes carried by
// shared.DomainError so the boundary can map them mechanically.
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeUnauthorized        = "AUTHENTICATION_FAILED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeUsernameTaken       = "USERNAME_TAKEN"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeOutOfStock          = "OUT_OF_STOCK"
	ErrCodeInsufficientStock   = "INSUFFICIENT_STOCK"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeInvalidCategoryRef  = "INVALID_CATEGORY_REFERENCE"
	ErrCodeCategoryInUse       = "CATEGORY_IN_USE"
	ErrCodeDatabaseUnavailable = "DATABASE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeProductNotFound: http.StatusNotFound,

	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeUsernameTaken: http.StatusConflict,
	ErrCodeCategoryInUse: http.StatusConflict,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidQuantity: http.StatusBadRequest,
	"INVALID_NAME":         http.StatusBadRequest,
	"INVALID_PRICE":        http.StatusBadRequest,
	"INVALID_STOCK":        http.StatusBadRequest,
	"INVALID_USERNAME":     http.StatusBadRequest,
	"INVALID_PASSWORD":     http.StatusBadRequest,
	"INVALID_ROLE":         http.StatusBadRequest,

	ErrCodeOutOfStock:         http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:  http.StatusUnprocessableEntity,
	ErrCodeInvalidCategoryRef: http.StatusUnprocessableEntity,

	ErrCodeDatabaseUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to
// 500 for codes outside the table
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
