package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestErrorHandler_StringMessage(t *testing.T) {
	c, rec := newErrorContext(t)

	ErrorHandler(echo.NewHTTPError(http.StatusNotFound, "booking not found"), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "booking not found", body["message"])
}

func TestErrorHandler_StructuredMessage(t *testing.T) {
	c, rec := newErrorContext(t)

	ErrorHandler(echo.NewHTTPError(http.StatusConflict, echo.Map{
		"message":   "ticket type 2 has 1 seats left, 5 requested",
		"available": 1,
	}), c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["available"])
	assert.Contains(t, body["message"], "1 seats left")
}

func TestErrorHandler_PlainError(t *testing.T) {
	c, rec := newErrorContext(t)

	ErrorHandler(errors.New("connection reset"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "connection reset", body["message"])
}
