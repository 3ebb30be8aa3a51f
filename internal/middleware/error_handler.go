package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as JSON. Plain string messages are
// wrapped as {"message": ...}; structured payloads (such as the seat
// availability details on booking conflicts) are rendered as-is.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var body any = map[string]string{"message": err.Error()}

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch msg := he.Message.(type) {
		case string:
			body = map[string]string{"message": msg}
		default:
			body = msg
		}
	}

	_ = c.JSON(code, body)
}
