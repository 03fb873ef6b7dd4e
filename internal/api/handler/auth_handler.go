package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/blog-site/internal/api/metrics"
	"github.com/sirpyerre/blog-site/internal/core/domain"
	"github.com/sirpyerre/blog-site/internal/core/ports"
)

// SessionWriter establishes and clears the browser identity.
type SessionWriter interface {
	Establish(c echo.Context, id domain.Identity) error
	Clear(c echo.Context)
}

type AuthHandler struct {
	authService ports.AuthService
	sessions    SessionWriter
}

func NewAuthHandler(authService ports.AuthService, sessions SessionWriter) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

type credentialsForm struct {
	Username string `form:"username" validate:"required,max=64"`
	Password string `form:"password" validate:"required,max=72"`
}

func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return render(c, http.StatusOK, "register", nil)
}

// Register creates an account and sends the visitor to the login page. The
// role is decided by the service, never by the form.
func (h *AuthHandler) Register(c echo.Context) error {
	var form credentialsForm
	if err := bindForm(c, &form); err != nil {
		return redirectWithNotice(c, "/register", err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), form.Username, form.Password)
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return redirectWithNotice(c, "/register", "Username already exists!")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return redirectWithNotice(c, "/register", "Username and password are required.")
	case err != nil:
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(user.Role).Inc()
	return redirectWithNotice(c, "/login", "Registration successful. Please login!")
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	return render(c, http.StatusOK, "login", nil)
}

// Login verifies the credentials. A failure re-renders the form with a single
// notice that does not reveal which field was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	var form credentialsForm
	if err := bindForm(c, &form); err != nil {
		return render(c, http.StatusOK, "login", nil, err.Error())
	}

	user, err := h.authService.Login(c.Request().Context(), form.Username, form.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return render(c, http.StatusOK, "login", nil, "Invalid username or password!")
	}
	if err != nil {
		return err
	}

	if err := h.sessions.Establish(c, domain.IdentityOf(user)); err != nil {
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return redirectWithNotice(c, "/", "Logged in successfully!")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Clear(c)
	return redirectWithNotice(c, "/login", "Logged out!")
}
