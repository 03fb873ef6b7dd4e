package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/blog-site/internal/api/metrics"
	"github.com/sirpyerre/blog-site/internal/api/session"
	"github.com/sirpyerre/blog-site/internal/core/domain"
)

// IdentityResolver reads the identity presented by a request.
type IdentityResolver interface {
	Current(c echo.Context) (*domain.Identity, bool)
}

// LoadIdentity resolves the session cookie once per request and attaches the
// identity to the context. Requests without a valid cookie pass through
// anonymously.
func LoadIdentity(sessions IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, ok := sessions.Current(c); ok {
				session.SetIdentity(c, id)
			}
			return next(c)
		}
	}
}

// RequireAuthenticated sends anonymous visitors to the login page with a notice.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := session.IdentityFrom(c); !ok {
				return deny(c, "authenticated", "Please login first.", "/login")
			}
			return next(c)
		}
	}
}

func deny(c echo.Context, guard, notice, redirectTo string) error {
	metrics.GuardDenialsTotal.WithLabelValues(guard).Inc()
	if err := session.AddNotice(c, notice); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, redirectTo)
}
