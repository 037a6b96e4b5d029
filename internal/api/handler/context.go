package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/store-rating/internal/api/middleware"
	"github.com/storerating/store-rating/internal/core/domain"
)

// ctxClaims extracts the caller identity injected by the Auth middleware.
// Both values must be present; their absence means the route was mounted
// without Auth.
func ctxClaims(c echo.Context) (email string, role domain.Role, err error) {
	email, _ = c.Get(middleware.ContextKeyEmail).(string)
	r, _ := c.Get(middleware.ContextKeyRole).(string)
	if email == "" || r == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, domain.Role(r), nil
}

// bindAndValidate decodes the JSON body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
