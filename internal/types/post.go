package types

import "time"

// CreatedAtLayout matches JavaScript's Date.toISOString output.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z"

// Post is a message owned by a user.
type Post struct {
	ID        string `json:"id" yaml:"id"`
	UserID    string `json:"user_id" yaml:"user_id"`
	Title     string `json:"title" yaml:"title"`
	Body      string `json:"body" yaml:"body"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID string `json:"userId"`
}

// FormatCreatedAt renders t in CreatedAtLayout (UTC).
func FormatCreatedAt(t time.Time) string {
	return t.UTC().Format(CreatedAtLayout)
}
