package endpoints

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/userboard/internal/config"
	"github.com/jackzampolin/userboard/internal/pagination"
	"github.com/jackzampolin/userboard/internal/schema"
	"github.com/jackzampolin/userboard/internal/store"
	"github.com/jackzampolin/userboard/internal/svcctx"
	"github.com/jackzampolin/userboard/internal/types"
	"github.com/jackzampolin/userboard/web"
)

var loadRenderer = sync.OnceValues(web.NewRenderer)

// renderHTML runs render into a buffer so template errors still produce a clean 500.
func renderHTML(w http.ResponseWriter, r *http.Request, status int, render func(*web.Renderer, *bytes.Buffer) error) {
	renderer, err := loadRenderer()
	if err == nil {
		var buf bytes.Buffer
		if err = render(renderer, &buf); err == nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(status)
			w.Write(buf.Bytes())
			return
		}
	}
	svcctx.LoggerFrom(r.Context()).Error("failed to render page", "path", r.URL.Path, "error", err)
	http.Error(w, "failed to render page", http.StatusInternalServerError)
}

// UsersPageEndpoint serves the users table at GET /.
type UsersPageEndpoint struct{}

func (e *UsersPageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/{$}", e.handler
}

func (e *UsersPageEndpoint) RequiresInit() bool { return true }

func (e *UsersPageEndpoint) Command(_ func() string) *cobra.Command {
	return nil // Browser only
}

func (e *UsersPageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := parsePage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st := svcctx.StoreFrom(ctx)
	total, err := st.CountUsers(ctx)
	if err != nil {
		svcctx.LoggerFrom(ctx).Error("failed to count users", "error", err)
		http.Error(w, "Failed to fetch users", http.StatusInternalServerError)
		return
	}
	users, err := st.ListUsers(ctx, page)
	if err != nil {
		svcctx.LoggerFrom(ctx).Error("failed to list users", "error", err)
		http.Error(w, "Failed to fetch users", http.StatusInternalServerError)
		return
	}

	settings := svcctx.ConfigStoreFrom(ctx)
	wide := pagination.Paginator{
		Total:    total,
		PageSize: page.Size,
		Page:     page.Number,
		Radius:   config.Int(ctx, settings, config.KeyRadius, config.DefaultRadius),
	}
	narrow := wide
	narrow.Radius = config.Int(ctx, settings, config.KeyRadiusSmall, config.DefaultRadiusSmall)

	view := web.UsersPage{
		Users:  make([]web.UserRow, 0, len(users)),
		Total:  total,
		Wide:   web.NewPaginatorView(wide),
		Narrow: web.NewPaginatorView(narrow),
	}
	for _, u := range users {
		view.Users = append(view.Users, web.NewUserRow(u))
	}

	renderHTML(w, r, http.StatusOK, func(rd *web.Renderer, buf *bytes.Buffer) error {
		return rd.Users(buf, view)
	})
}

// UserPostsPageEndpoint serves a user's posts at GET /ui/users/{id}.
type UserPostsPageEndpoint struct{}

func (e *UserPostsPageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ui/users/{id}", e.handler
}

func (e *UserPostsPageEndpoint) RequiresInit() bool { return true }

func (e *UserPostsPageEndpoint) Command(_ func() string) *cobra.Command {
	return nil // Browser only
}

func (e *UserPostsPageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	renderPostsPage(w, r, r.PathValue("id"), http.StatusOK, web.PostsPage{})
}

// renderPostsPage loads the user and their posts into view and renders it.
// view.Form and view.Error are kept so a rejected submission can be shown.
func renderPostsPage(w http.ResponseWriter, r *http.Request, userID string, status int, view web.PostsPage) {
	ctx := r.Context()
	st := svcctx.StoreFrom(ctx)

	user, err := st.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		svcctx.LoggerFrom(ctx).Error("failed to get user", "error", err)
		http.Error(w, "Failed to fetch user", http.StatusInternalServerError)
		return
	}

	posts, err := st.ListPosts(ctx, user.ID)
	if err != nil {
		svcctx.LoggerFrom(ctx).Error("failed to list posts", "error", err)
		http.Error(w, "Failed to fetch posts", http.StatusInternalServerError)
		return
	}

	view.User = *user
	view.Posts = posts
	renderHTML(w, r, status, func(rd *web.Renderer, buf *bytes.Buffer) error {
		return rd.Posts(buf, view)
	})
}

// CreatePostFormEndpoint handles the new-post form at POST /ui/users/{id}/posts.
// Valid posts redirect back to the user's page; rejected ones re-render it
// with the message and the submitted values.
type CreatePostFormEndpoint struct{}

func (e *CreatePostFormEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/ui/users/{id}/posts", e.handler
}

func (e *CreatePostFormEndpoint) RequiresInit() bool { return true }

func (e *CreatePostFormEndpoint) Command(_ func() string) *cobra.Command {
	return nil // Browser only
}

func (e *CreatePostFormEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("id")

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}
	form := web.PostForm{Title: r.PostForm.Get("title"), Body: r.PostForm.Get("body")}

	doc := map[string]any{"title": form.Title, "body": form.Body, "userId": userID}
	if err := schema.Check(schema.CreatePost, doc); err != nil {
		renderPostsPage(w, r, userID, http.StatusBadRequest, web.PostsPage{Form: form, Error: validationMessage(err)})
		return
	}

	post, err := svcctx.StoreFrom(ctx).CreatePost(ctx, types.CreatePostInput{
		Title:  form.Title,
		Body:   form.Body,
		UserID: userID,
	})
	if errors.Is(err, store.ErrUserNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		svcctx.LoggerFrom(ctx).Error("failed to create post", "user_id", userID, "error", err)
		http.Error(w, "Failed to create post", http.StatusInternalServerError)
		return
	}

	svcctx.LoggerFrom(ctx).Info("post created", "id", post.ID, "user_id", post.UserID)
	http.Redirect(w, r, userPageURL(post.UserID), http.StatusSeeOther)
}

// DeletePostFormEndpoint handles a post's delete button at POST /ui/posts/{id}/delete.
// The form's userId field picks the page to return to.
type DeletePostFormEndpoint struct{}

func (e *DeletePostFormEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/ui/posts/{id}/delete", e.handler
}

func (e *DeletePostFormEndpoint) RequiresInit() bool { return true }

func (e *DeletePostFormEndpoint) Command(_ func() string) *cobra.Command {
	return nil // Browser only
}

func (e *DeletePostFormEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	err := svcctx.StoreFrom(ctx).DeletePost(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		svcctx.LoggerFrom(ctx).Error("failed to delete post", "id", id, "error", err)
		http.Error(w, "Failed to delete post", http.StatusInternalServerError)
		return
	}

	svcctx.LoggerFrom(ctx).Info("post deleted", "id", id)
	back := "/"
	if userID := strings.TrimSpace(r.PostForm.Get("userId")); userID != "" {
		back = userPageURL(userID)
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func userPageURL(userID string) string {
	return "/ui/users/" + url.PathEscape(userID)
}

// StaticEndpoint serves the embedded stylesheet and other assets.
type StaticEndpoint struct{}

func (e *StaticEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/static/{path...}", e.handler
}

func (e *StaticEndpoint) RequiresInit() bool { return false }

func (e *StaticEndpoint) Command(_ func() string) *cobra.Command {
	return nil // No CLI command for static files
}

func (e *StaticEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	staticFS, err := web.StaticFS()
	if err != nil {
		http.Error(w, "assets not available", http.StatusInternalServerError)
		return
	}
	http.StripPrefix("/static/", http.FileServerFS(staticFS)).ServeHTTP(w, r)
}
