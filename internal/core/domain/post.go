package domain

import (
	"errors"
	"time"
)

var (
	ErrPostNotFound  = errors.New("blog post not found")
	ErrForbidden     = errors.New("access forbidden")
	ErrDuplicatePost = errors.New("blog post already submitted")
)

// ErrMalformedID is returned when a path identifier is not a valid store key.
var ErrMalformedID = errors.New("malformed identifier")

// Post is a blog entry. Author holds the username of the account that
// created it at creation time; it is not updated when that account is renamed.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnedBy compares the author against a session username. The comparison is
// exact and case-sensitive.
func (p *Post) OwnedBy(username string) bool {
	return p.Author == username
}
