// Package session carries per-browser state between requests: the signed
// identity cookie and one-shot flash notices.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/blog-site/internal/core/domain"
)

// CookieName is the cookie holding the signed identity.
const CookieName = "blog_session"

const (
	identityKey = "identity"
	defaultTTL  = 24 * time.Hour
)

// Options configures a Manager.
type Options struct {
	// Secret signs identity tokens (HS256).
	Secret string
	// TTL bounds the cookie and the token expiry. Defaults to 24h.
	TTL time.Duration
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// Manager writes, reads and clears the identity cookie. There is no
// server-side state: a session lives exactly as long as its signed token.
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewManager(opts Options) *Manager {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{secret: []byte(opts.Secret), ttl: ttl, secure: opts.Secure}
}

type claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Token signs id into a cookie value.
func (m *Manager) Token(id domain.Identity) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: id.Username,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Establish stores id in the client cookie. The identity is also visible to
// the rest of the current request.
func (m *Manager) Establish(c echo.Context, id domain.Identity) error {
	token, err := m.Token(id)
	if err != nil {
		return err
	}
	c.SetCookie(m.cookie(token, int(m.ttl.Seconds())))
	SetIdentity(c, &id)
	return nil
}

// Current reads the identity presented by the request. Missing, expired and
// tampered cookies all report absent.
func (m *Manager) Current(c echo.Context) (*domain.Identity, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	var cl claims
	tkn, err := jwt.ParseWithClaims(cookie.Value, &cl, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid || cl.Subject == "" || cl.Username == "" {
		return nil, false
	}

	return &domain.Identity{UserID: cl.Subject, Username: cl.Username, Role: cl.Role}, true
}

// Clear expires the identity cookie and forgets the identity for the rest of
// the current request.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(m.cookie("", -1))
	c.Set(identityKey, nil)
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetIdentity attaches id to the request context.
func SetIdentity(c echo.Context, id *domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity attached to the request, if any.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	id, ok := c.Get(identityKey).(*domain.Identity)
	return id, ok && id != nil
}
