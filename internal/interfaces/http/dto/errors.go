package dto

import "net/http"

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeValidation   = "ERR_VALIDATION"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState  = "ERR_INVALID_STATE"
	ErrCodeBusinessRule  = "ERR_BUSINESS_RULE"
	ErrCodeCrossProperty = "ERR_CROSS_PROPERTY"
	ErrCodeAgentOffline  = "ERR_AGENT_OFFLINE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeInvalidState:  http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:  http.StatusUnprocessableEntity,
	ErrCodeCrossProperty: http.StatusUnprocessableEntity,

	// No agent bridge connected: the request is fine, the backend is not
	// ready to deliver to local printers.
	ErrCodeAgentOffline: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code,
// defaulting to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to API error codes.
// Domain codes not listed here fall through NormalizeErrorCode unchanged
// and render as 422 business rule violations.
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":      ErrCodeNotFound,
	"ALREADY_EXISTS": ErrCodeAlreadyExists,
	"INVALID_INPUT":  ErrCodeInvalidInput,
	"INVALID_STATE":  ErrCodeInvalidState,
	"CROSS_PROPERTY": ErrCodeCrossProperty,
	"AGENT_OFFLINE":  ErrCodeAgentOffline,

	"INVALID_CHECK":        ErrCodeInvalidInput,
	"INVALID_QUANTITY":     ErrCodeInvalidInput,
	"INVALID_PRINTER":      ErrCodeInvalidInput,
	"INVALID_KDS_DEVICE":   ErrCodeInvalidInput,
	"INVALID_KDS_TICKET":   ErrCodeInvalidInput,
	"INVALID_ORDER_DEVICE": ErrCodeInvalidInput,
	"INVALID_ROUTE":        ErrCodeInvalidInput,
	"INVALID_PRINT_JOB":    ErrCodeInvalidInput,
	"INVALID_PRINT_CLASS":  ErrCodeInvalidInput,
	"INVALID_MENU_ITEM":    ErrCodeInvalidInput,
	"INVALID_PROPERTY":     ErrCodeInvalidInput,
	"INVALID_RVC":          ErrCodeInvalidInput,
	"INVALID_PAYMENT":      ErrCodeInvalidInput,
	"INVALID_TENDER":       ErrCodeInvalidInput,
	"VOID_REASON_REQUIRED": ErrCodeInvalidInput,
	"CHECK_NOT_OPEN":       ErrCodeInvalidState,
	"CHECK_UNPAID":         ErrCodeInvalidState,
	"INVALID_JOB_STATE":    ErrCodeInvalidState,
	"INVALID_TICKET_STATE": ErrCodeInvalidState,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
