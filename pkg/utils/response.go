package utils

import "github.com/labstack/echo/v4"

// JSON writes the standard {"status","message","data"} envelope.
func JSON(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"status":  status,
		"message": message,
		"data":    data,
	})
}
