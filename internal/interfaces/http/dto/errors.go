package dto

import (
	"net/http"
	"strings"
)

// Error codes emitted by the interface layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes missing from the table fall through to the prefix rules in
// GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeInternal:     http.StatusInternalServerError,

	// Authentication
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,
	"INVALID_PASSWORD":    http.StatusBadRequest,

	// Duplicates and referenced resources
	"ALREADY_EXISTS":       http.StatusConflict,
	"USERNAME_TAKEN":       http.StatusConflict,
	"SKU_TAKEN":            http.StatusConflict,
	"BRANCH_EXISTS":        http.StatusConflict,
	"CATEGORY_EXISTS":      http.StatusConflict,
	"CUSTOMER_EXISTS":      http.StatusConflict,
	"SUPPLIER_EXISTS":      http.StatusConflict,
	"ROLE_EXISTS":          http.StatusConflict,
	"ROLE_IN_USE":          http.StatusConflict,
	"CATEGORY_IN_USE":      http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rule violations
	"INVALID_STATE":           http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_CREDIT":     http.StatusUnprocessableEntity,
	"NO_ORDER_DETAIL":         http.StatusUnprocessableEntity,
	"RETURN_EXCEEDS_QUANTITY": http.StatusUnprocessableEntity,
	"PRODUCT_NOT_SELLABLE":    http.StatusUnprocessableEntity,
	"SYSTEM_ROLE":             http.StatusUnprocessableEntity,
	"DEFAULT_BRANCH":          http.StatusUnprocessableEntity,

	// Referenced entities missing from a command payload
	"PRODUCT_NOT_FOUND":  http.StatusUnprocessableEntity,
	"EMPLOYEE_NOT_FOUND": http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// INVALID_* codes default to 400; unknown codes default to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") || code == "NO_ITEMS" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
