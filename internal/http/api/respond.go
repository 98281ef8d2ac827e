package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bjh.co.th/clinicops/internal/apperr"
	"bjh.co.th/clinicops/internal/middleware"
	"bjh.co.th/clinicops/internal/postgres"
	"bjh.co.th/clinicops/internal/respcache"
	"bjh.co.th/clinicops/internal/sheets"
)

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case postgres.IsUniqueConstraintError(err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// errorBody builds {success: false, error} plus whatever detail the error
// kind carries.
func errorBody(err error) map[string]any {
	body := map[string]any{
		"success": false,
		"error":   apperr.Message(err),
	}

	var headers *sheets.HeadersNotFoundError
	if errors.As(err, &headers) {
		body["availableHeaders"] = headers.Available
	}
	var missing *apperr.MissingConfig
	if errors.As(err, &missing) {
		body["missing"] = missing.Vars
	}
	return body
}

func fail(c echo.Context, err error) error {
	return failWith(c, err, nil)
}

// failWith writes the error envelope, adding extra fields such as an empty
// data list for dashboard routes.
func failWith(c echo.Context, err error, extra map[string]any) error {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		middleware.Logger(c.Request().Context()).Error("request failed", zap.Error(err))
	}

	body := errorBody(err)
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(status, body)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"success": false,
		"error":   msg,
	})
}

func cacheStatus(c echo.Context, s respcache.Status) {
	c.Response().Header().Set(respcache.HeaderName, string(s))
}
