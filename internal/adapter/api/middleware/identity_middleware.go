package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"recyclemart/pkg/errors"
	"recyclemart/pkg/response"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	// QueryUserID is accepted when the client cannot set headers, e.g. a
	// browser opening a websocket.
	QueryUserID = "user_id"

	RoleCollector = "collector"
)

// IdentityMiddleware puts the caller's user id and role into the echo
// context as "uid" and "role". Identities are asserted by the calling
// gateway; nothing here verifies them.
type IdentityMiddleware struct{}

func NewIdentityMiddleware() *IdentityMiddleware {
	return &IdentityMiddleware{}
}

func (m *IdentityMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
		if uid == "" {
			uid = strings.TrimSpace(c.QueryParam(QueryUserID))
		}
		if uid == "" {
			return response.Error(c, errors.Unauthorized("X-User-ID header is required", nil))
		}

		c.Set("uid", uid)
		c.Set("role", strings.ToLower(strings.TrimSpace(c.Request().Header.Get(HeaderUserRole))))

		return next(c)
	}
}

// CollectorOnly must run after Identify.
func (m *IdentityMiddleware) CollectorOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get("uid").(string); !ok {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}

		if role, _ := c.Get("role").(string); role != RoleCollector {
			return response.Error(c, errors.Forbidden("Collector role required", nil))
		}

		return next(c)
	}
}
