package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/blog-site/internal/api/session"
	"github.com/sirpyerre/blog-site/internal/api/view"
	"github.com/sirpyerre/blog-site/internal/core/domain"
	"github.com/sirpyerre/blog-site/internal/core/ports"
)

var testFlashStore = session.NewFlashStore("test-secret", false)

// request describes one call through a single route.
type request struct {
	method string
	route  string
	target string
	form   url.Values
	as     *domain.Identity
}

type response struct {
	rec *httptest.ResponseRecorder
	err error
}

// serve registers h on route behind the flash middleware and the given
// identity, then performs the request. Errors reaching the HTTP error handler
// are captured instead of rendered.
func serve(t *testing.T, r request, h echo.HandlerFunc) response {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	e.Renderer = view.MustNew()

	var handlerErr error
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		handlerErr = err
		_ = c.NoContent(http.StatusInternalServerError)
	}

	withIdentity := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if r.as != nil {
				session.SetIdentity(c, r.as)
			}
			return next(c)
		}
	}
	e.Add(r.method, r.route, h, echosession.Middleware(testFlashStore), withIdentity)

	var body io.Reader
	if r.form != nil {
		body = strings.NewReader(r.form.Encode())
	}
	req := httptest.NewRequest(r.method, r.target, body)
	if r.form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return response{rec: rec, err: handlerErr}
}

// notices decodes the flash cookie left by the response.
func (r response) notices(t *testing.T) []string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	var last *http.Cookie
	for _, ck := range r.rec.Result().Cookies() {
		if ck.Name == session.FlashSessionName {
			last = ck
		}
	}
	if last == nil {
		return nil
	}
	req.AddCookie(last)
	sess, err := testFlashStore.Get(req, session.FlashSessionName)
	if err != nil {
		t.Fatalf("decode flash: %v", err)
	}
	var out []string
	for _, f := range sess.Flashes() {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (r response) expectRedirect(t *testing.T, to, notice string) {
	t.Helper()
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	if r.rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", r.rec.Code)
	}
	if loc := r.rec.Header().Get(echo.HeaderLocation); loc != to {
		t.Fatalf("expected redirect to %q, got %q", to, loc)
	}
	got := r.notices(t)
	if len(got) != 1 || got[0] != notice {
		t.Fatalf("expected notice %q, got %v", notice, got)
	}
}

var (
	alice = &domain.Identity{UserID: "u1", Username: "alice", Role: domain.RoleAdmin}
	bob   = &domain.Identity{UserID: "u2", Username: "bob", Role: domain.RoleUser}
)

// --- service stubs ---

type stubBlogService struct {
	listFn     func(ctx context.Context) ([]domain.Post, error)
	getFn      func(ctx context.Context, id string) (*domain.Post, error)
	getOwnedFn func(ctx context.Context, id, actor string) (*domain.Post, error)
	createFn   func(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error)
	updateFn   func(ctx context.Context, in ports.UpdatePostInput) error
	deleteFn   func(ctx context.Context, id, actor string) error
}

func (s *stubBlogService) List(ctx context.Context) ([]domain.Post, error) {
	return s.listFn(ctx)
}

func (s *stubBlogService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.getFn(ctx, id)
}

func (s *stubBlogService) GetOwned(ctx context.Context, id, actor string) (*domain.Post, error) {
	return s.getOwnedFn(ctx, id, actor)
}

func (s *stubBlogService) Create(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	return s.createFn(ctx, in)
}

func (s *stubBlogService) Update(ctx context.Context, in ports.UpdatePostInput) error {
	return s.updateFn(ctx, in)
}

func (s *stubBlogService) Delete(ctx context.Context, id, actor string) error {
	return s.deleteFn(ctx, id, actor)
}

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	return s.loginFn(ctx, username, password)
}

type stubUserService struct {
	listFn   func(ctx context.Context) ([]domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	updateFn func(ctx context.Context, id, username, role string) error
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, id, username, role string) error {
	return s.updateFn(ctx, id, username, role)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
