package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/blog-site/internal/api/session"
	"github.com/sirpyerre/blog-site/internal/api/view"
	"github.com/sirpyerre/blog-site/internal/core/domain"
)

// identity returns the session identity. Handlers behind RequireAuthenticated
// can rely on it being non-nil.
func identity(c echo.Context) *domain.Identity {
	id, _ := session.IdentityFrom(c)
	return id
}

// render drains pending notices into the page together with any extra ones
// produced by this request.
func render(c echo.Context, code int, page string, data any, notices ...string) error {
	all := append(session.Notices(c), notices...)
	return c.Render(code, page, view.Page{Identity: identity(c), Notices: all, Data: data})
}

func redirectWithNotice(c echo.Context, to, notice string) error {
	if err := session.AddNotice(c, notice); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, to)
}

// bindForm decodes the submitted form into req and validates it. The returned
// error text is suitable as a notice.
func bindForm(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.New("invalid form submission")
	}
	return c.Validate(req)
}
