package api

import (
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/blog-site/internal/api/handler"
	"github.com/sirpyerre/blog-site/internal/api/middleware"
	"github.com/sirpyerre/blog-site/internal/api/session"
	"github.com/sirpyerre/blog-site/internal/api/view"
	"github.com/sirpyerre/blog-site/internal/core/domain"
	"github.com/sirpyerre/blog-site/internal/core/ports"
	"github.com/sirpyerre/blog-site/internal/core/service"
)

// Dependencies are the collaborators the router wires into services and
// handlers.
type Dependencies struct {
	Users  ports.UserRepository
	Blogs  ports.BlogRepository
	Hasher ports.PasswordHasher
	// Guard drops repeated post submissions. Nil disables it.
	Guard service.SubmissionGuard

	Sessions   *session.Manager
	FlashStore sessions.Store

	// Readiness lists the dependencies checked by GET /health/ready.
	Readiness map[string]handler.Pinger

	Log zerolog.Logger
	// Metrics exposes GET /metrics and records request metrics. It registers
	// collectors with the default registry, so enable it once per process.
	Metrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = view.MustNew()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Log))
	if deps.Metrics {
		e.Use(echoprometheus.NewMiddleware("blog"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Health probes (no session) ---
	healthHandler := handler.NewHealthHandler(deps.Readiness)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Services ---
	authService := service.NewAuthService(deps.Users, deps.Hasher, deps.Log)
	blogService := service.NewBlogService(deps.Blogs, deps.Guard, deps.Log)
	userService := service.NewUserService(deps.Users, deps.Log)

	authHandler := handler.NewAuthHandler(authService, deps.Sessions)
	blogHandler := handler.NewBlogHandler(blogService)
	adminHandler := handler.NewAdminHandler(userService)

	// --- Pages ---
	site := e.Group("",
		echosession.Middleware(deps.FlashStore),
		middleware.LoadIdentity(deps.Sessions),
	)

	site.GET("/", blogHandler.Index)
	site.GET("/register", authHandler.RegisterForm)
	site.POST("/register", authHandler.Register)
	site.GET("/login", authHandler.LoginForm)
	site.POST("/login", authHandler.Login)
	site.GET("/logout", authHandler.Logout)

	blog := site.Group("/blog")
	authed := middleware.RequireAuthenticated()
	blog.GET("/create", blogHandler.CreateForm, authed)
	blog.POST("/create", blogHandler.Create, authed)
	blog.GET("/edit/:id", blogHandler.EditForm, authed)
	blog.POST("/edit/:id", blogHandler.Update, authed)
	blog.GET("/delete/:id", blogHandler.Delete, authed)
	blog.GET("/:id", blogHandler.Detail)

	admin := site.Group("/admin", middleware.RequireRole("/", "Admin access required.", domain.RoleAdmin))
	admin.GET("", adminHandler.Index)
	admin.GET("/user/edit/:id", adminHandler.EditForm)
	admin.POST("/user/edit/:id", adminHandler.Update)
	admin.GET("/user/delete/:id", adminHandler.Delete)

	return e
}
