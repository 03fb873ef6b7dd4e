package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/blog-site/internal/api/session"
)

// RequireRole enforces role-based access control. Sessions whose role is not
// allowed, anonymous ones included, are redirected with a notice.
func RequireRole(redirectTo, notice string, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var role string
			if id, ok := session.IdentityFrom(c); ok {
				role = id.Role
			}
			if _, ok := allowed[role]; !ok {
				return deny(c, "role", notice, redirectTo)
			}
			return next(c)
		}
	}
}
