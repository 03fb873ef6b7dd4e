package session

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// FlashSessionName names the cookie session holding pending notices.
const FlashSessionName = "blog_flash"

// NewFlashStore returns the signed cookie store backing flash notices. It is
// installed with echo-contrib's session.Middleware.
func NewFlashStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// AddNotice queues a user-facing message for the next rendered page. It must
// be called before the response is written. A flash cookie that no longer
// decodes (rotated secret) is replaced rather than reported.
func AddNotice(c echo.Context, msg string) error {
	sess, err := echosession.Get(FlashSessionName, c)
	if sess == nil {
		return fmt.Errorf("flash session: %w", err)
	}
	sess.AddFlash(msg)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("flash save: %w", err)
	}
	return nil
}

// Notices pops every queued message. Unreadable flash state yields none.
func Notices(c echo.Context) []string {
	sess, _ := echosession.Get(FlashSessionName, c)
	if sess == nil {
		return nil
	}
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}

	out := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	_ = sess.Save(c.Request(), c.Response())
	return out
}
