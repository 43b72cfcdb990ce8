package endpoints

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/userboard/internal/api"
	"github.com/jackzampolin/userboard/internal/svcctx"
	"github.com/jackzampolin/userboard/internal/types"
)

// ListPostsEndpoint handles GET /posts?userId=.
type ListPostsEndpoint struct{}

func (e *ListPostsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/posts", e.handler
}

func (e *ListPostsEndpoint) RequiresInit() bool { return true }

func (e *ListPostsEndpoint) Group() string { return "posts" }

// handler godoc
//
//	@Summary		List a user's posts
//	@Description	Posts of one user, newest first
//	@Tags			posts
//	@Produce		json
//	@Param			userId	query		string	true	"Owner user ID"
//	@Success		200		{array}		types.Post
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/posts [get]
func (e *ListPostsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	posts, err := svcctx.StoreFrom(r.Context()).ListPosts(r.Context(), userID)
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Error("failed to list posts", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (e *ListPostsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list <user-id>",
		Short: "List a user's posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var posts []types.Post
			path := withQuery("/posts", url.Values{"userId": {args[0]}})
			if err := client.Get(cmd.Context(), path, &posts); err != nil {
				return err
			}
			return api.Output(posts)
		},
	}
}
