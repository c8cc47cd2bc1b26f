package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeCrossProperty))
	assert.Equal(t, http.StatusServiceUnavailable, GetHTTPStatus(ErrCodeAgentOffline))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("NO_SUCH_CODE"))
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeCrossProperty, NormalizeErrorCode("CROSS_PROPERTY"))
	assert.Equal(t, ErrCodeInvalidState, NormalizeErrorCode("CHECK_NOT_OPEN"))
	assert.Equal(t, "CUSTOM", NormalizeErrorCode("CUSTOM"), "unknown codes pass through")
}

func TestErrorResponseEnvelope(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "printer not found", "req-1")
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "req-1", resp.RequestID)
}
