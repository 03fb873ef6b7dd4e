// Package view renders the server-side HTML pages.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/blog-site/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages lists every renderable page. Each one is parsed together with the
// shared layout.
var Pages = []string{
	"index",
	"blog_create",
	"blog_edit",
	"blog_detail",
	"register",
	"login",
	"admin",
	"edit_user",
	"error",
}

// Page is the data handed to every template.
type Page struct {
	Identity *domain.Identity
	Notices  []string
	Data     any
}

// ErrorData is the Data of the error page.
type ErrorData struct {
	Code    int
	Message string
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
	"truncate": func(s string, n int) string {
		r := []rune(s)
		if len(r) <= n {
			return s
		}
		return string(r[:n]) + "…"
	},
	"paragraphs": func(s string) []string {
		return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n")
	},
}

// New parses the layout and every page.
func New() (*Renderer, error) {
	layout, err := templateFS.ReadFile("templates/layout.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(Pages))
	for _, name := range Pages {
		content, err := templateFS.ReadFile("templates/" + name + ".html")
		if err != nil {
			return nil, err
		}
		t, err := template.New("layout").Funcs(funcs).Parse(string(layout))
		if err != nil {
			return nil, fmt.Errorf("view: layout: %w", err)
		}
		if t, err = t.Parse(string(content)); err != nil {
			return nil, fmt.Errorf("view: %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// MustNew is New for program start-up; the templates are embedded, so a
// failure is a build defect.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
