package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/blog-site/internal/core/domain"
	"github.com/sirpyerre/blog-site/internal/core/ports"
)

// AdminHandler serves the user management pages. Routes are expected to sit
// behind RequireRole(admin).
type AdminHandler struct {
	users ports.UserService
}

func NewAdminHandler(users ports.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

type userForm struct {
	Username string `form:"username" validate:"required,max=64"`
	Role     string `form:"role" validate:"required,oneof=admin user"`
}

func (h *AdminHandler) Index(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "admin", users)
}

func (h *AdminHandler) EditForm(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrUserNotFound) {
		return redirectWithNotice(c, "/admin", "User not found!")
	}
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "edit_user", user)
}

func (h *AdminHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var form userForm
	if err := bindForm(c, &form); err != nil {
		return redirectWithNotice(c, "/admin/user/edit/"+id, err.Error())
	}

	err := h.users.Update(c.Request().Context(), id, form.Username, form.Role)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return redirectWithNotice(c, "/admin", "User not found!")
	case errors.Is(err, domain.ErrUserExists):
		return redirectWithNotice(c, "/admin", "Username already exists!")
	case errors.Is(err, domain.ErrInvalidRole), errors.Is(err, domain.ErrInvalidCredentials):
		return redirectWithNotice(c, "/admin/user/edit/"+id, err.Error())
	case err != nil:
		return err
	}
	return redirectWithNotice(c, "/admin", "User updated successfully!")
}

// Delete removes the account only. Its posts keep their author name.
func (h *AdminHandler) Delete(c echo.Context) error {
	err := h.users.Delete(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrUserNotFound) {
		return redirectWithNotice(c, "/admin", "User not found!")
	}
	if err != nil {
		return err
	}
	return redirectWithNotice(c, "/admin", "User deleted successfully!")
}
