package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

// RBAC enforces role-based access control.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := roleSet(allowedRoles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return forbidden(c)
			}
			return next(c)
		}
	}
}

// SelfOrRoles admits a caller with selfRole whose token email equals the
// path parameter param, or any caller holding one of elevated.
func SelfOrRoles(selfRole domain.Role, param string, elevated ...domain.Role) echo.MiddlewareFunc {
	allowed := roleSet(elevated)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)
			email, _ := c.Get(ContextKeyEmail).(string)

			if _, ok := allowed[domain.Role(role)]; ok {
				return next(c)
			}
			if domain.Role(role) == selfRole && email != "" && email == c.Param(param) {
				return next(c)
			}
			return forbidden(c)
		}
	}
}

// StoreOwnerOrRoles admits a store owner only for the store named by the path
// parameter param, or any caller holding one of elevated.
func StoreOwnerOrRoles(stores ports.StoreLookup, param string, elevated ...domain.Role) echo.MiddlewareFunc {
	allowed := roleSet(elevated)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)
			email, _ := c.Get(ContextKeyEmail).(string)

			if _, ok := allowed[domain.Role(role)]; ok {
				return next(c)
			}
			if domain.Role(role) != domain.RoleStoreOwner || email == "" {
				return forbidden(c)
			}

			store, err := stores.FindByStoreName(c.Request().Context(), c.Param(param))
			switch {
			case err == nil && store.Email == email:
				return next(c)
			case err == nil, errors.Is(err, domain.ErrStoreNotFound):
				return forbidden(c)
			default:
				return err
			}
		}
	}
}

func roleSet(roles []domain.Role) map[domain.Role]struct{} {
	set := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
}
