package serviceutils

import (
	"github.com/labstack/echo/v4"

	"github.com/locvowork/payroll_report_sample/internal/logger"
)

// APIResponse is the JSON envelope every handler returns.
type APIResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ResponseSuccess writes a success envelope.
func ResponseSuccess(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, APIResponse{Message: message, Data: data})
}

// ResponseError logs the error and writes a failure envelope.
func ResponseError(c echo.Context, status int, message string, err error) error {
	resp := APIResponse{Message: message}
	if err != nil {
		logger.ErrorLog(c.Request().Context(), message, err)
		resp.Error = err.Error()
	}
	return c.JSON(status, resp)
}
