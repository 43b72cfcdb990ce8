package store

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jackzampolin/userboard/internal/types"
)

// ListPosts returns a user's posts, newest first.
// An unknown user yields an empty list.
func (s *Store) ListPosts(ctx context.Context, userID string) ([]types.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, body, created_at
		FROM posts
		WHERE user_id = ?
		ORDER BY created_at DESC, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []types.Post{}
	for rows.Next() {
		var p types.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// CreatePost stores a new post and returns it.
// Fields are trimmed and NFC-normalized. Returns ErrUserNotFound when the
// owner does not exist.
func (s *Store) CreatePost(ctx context.Context, in types.CreatePostInput) (*types.Post, error) {
	post := types.Post{
		ID:        s.newID(),
		UserID:    strings.TrimSpace(in.UserID),
		Title:     normalize(in.Title),
		Body:      normalize(in.Body),
		CreatedAt: types.FormatCreatedAt(s.now()),
	}

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, post.UserID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO posts (id, user_id, title, body, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, post.ID, post.UserID, post.Title, post.Body, post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return &post, nil
}

// DeletePost removes a post. Returns ErrNotFound if no post had the ID.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
