package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/blog-site/internal/api/metrics"
	"github.com/sirpyerre/blog-site/internal/core/domain"
	"github.com/sirpyerre/blog-site/internal/core/ports"
)

const noticePostNotFound = "Blog post not found!"

type BlogHandler struct {
	blogs ports.BlogService
}

func NewBlogHandler(blogs ports.BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

// postForm accepts empty titles and content, as the create and edit pages
// always have.
type postForm struct {
	Title   string `form:"title"`
	Content string `form:"content"`
	// Token is the one-time token rendered into the create form.
	Token string `form:"submission"`
}

// CreateFormData is the Data of the blog_create page.
type CreateFormData struct {
	Token string
}

// Index lists every post.
func (h *BlogHandler) Index(c echo.Context) error {
	posts, err := h.blogs.List(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "index", posts)
}

func (h *BlogHandler) Detail(c echo.Context) error {
	post, err := h.blogs.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrPostNotFound) {
		return redirectWithNotice(c, "/", noticePostNotFound)
	}
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "blog_detail", post)
}

// CreateForm issues a fresh submission token with every rendering, so only a
// resubmission of this exact form is treated as a duplicate.
func (h *BlogHandler) CreateForm(c echo.Context) error {
	return render(c, http.StatusOK, "blog_create", CreateFormData{Token: uuid.NewString()})
}

// Create stores a post authored by the session user. The form never chooses
// the author.
func (h *BlogHandler) Create(c echo.Context) error {
	var form postForm
	if err := bindForm(c, &form); err != nil {
		return redirectWithNotice(c, "/blog/create", err.Error())
	}

	_, err := h.blogs.Create(c.Request().Context(), ports.CreatePostInput{
		Author:  identity(c).Username,
		Title:   form.Title,
		Content: form.Content,
		Token:   form.Token,
	})
	if errors.Is(err, domain.ErrDuplicatePost) {
		metrics.PostsDuplicateTotal.Inc()
		return redirectWithNotice(c, "/", "This post was already submitted.")
	}
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return redirectWithNotice(c, "/", "Blog post created successfully!")
}

func (h *BlogHandler) EditForm(c echo.Context) error {
	post, err := h.blogs.GetOwned(c.Request().Context(), c.Param("id"), identity(c).Username)
	if err != nil {
		return postError(c, err, "edit")
	}
	return render(c, http.StatusOK, "blog_edit", post)
}

func (h *BlogHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var form postForm
	if err := bindForm(c, &form); err != nil {
		return redirectWithNotice(c, "/blog/edit/"+id, err.Error())
	}

	err := h.blogs.Update(c.Request().Context(), ports.UpdatePostInput{
		ID:      id,
		Actor:   identity(c).Username,
		Title:   form.Title,
		Content: form.Content,
	})
	if err != nil {
		return postError(c, err, "edit")
	}
	return redirectWithNotice(c, "/", "Blog post updated!")
}

func (h *BlogHandler) Delete(c echo.Context) error {
	err := h.blogs.Delete(c.Request().Context(), c.Param("id"), identity(c).Username)
	if err != nil {
		return postError(c, err, "delete")
	}
	return redirectWithNotice(c, "/", "Blog post deleted!")
}

// postError turns the expected outcomes of an owned-post lookup into notices.
// Anything else goes to the central error handler.
func postError(c echo.Context, err error, action string) error {
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		return redirectWithNotice(c, "/", noticePostNotFound)
	case errors.Is(err, domain.ErrForbidden):
		metrics.OwnershipDenialsTotal.WithLabelValues(action).Inc()
		return redirectWithNotice(c, "/", "You are not authorized to "+action+" this post.")
	}
	return err
}
