package handler

import (
	stdErrors "errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-reporter/errors"
)

// respondError maps an error to its JSON representation. Application
// errors carry their own HTTP status; anything else becomes a generic 500
// so internals never leak to clients.
func respondError(c echo.Context, err error) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return c.JSON(appErr.HTTPCode, appErr)
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) {
		return c.JSON(httpErr.Code, map[string]interface{}{
			"error": httpErr.Message,
		})
	}

	return c.JSON(http.StatusInternalServerError, errors.ErrInternal(err))
}

// splitParticipants parses a comma separated participant list form field
func splitParticipants(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}
