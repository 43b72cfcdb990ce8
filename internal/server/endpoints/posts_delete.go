package endpoints

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/userboard/internal/api"
	"github.com/jackzampolin/userboard/internal/store"
	"github.com/jackzampolin/userboard/internal/svcctx"
)

// DeletePostEndpoint handles DELETE /posts/{id}.
type DeletePostEndpoint struct{}

func (e *DeletePostEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/posts/{id}", e.handler
}

func (e *DeletePostEndpoint) RequiresInit() bool { return true }

func (e *DeletePostEndpoint) Group() string { return "posts" }

// handler godoc
//
//	@Summary	Delete a post
//	@Tags		posts
//	@Produce	json
//	@Param		id	path		string	true	"Post ID"
//	@Success	200	{object}	MessageResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Failure	503	{object}	ErrorResponse
//	@Router		/posts/{id} [delete]
func (e *DeletePostEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "Post ID is required and must be a non-empty string")
		return
	}

	err := svcctx.StoreFrom(r.Context()).DeletePost(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Error("failed to delete post", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	svcctx.LoggerFrom(r.Context()).Info("post deleted", "id", id)
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Post deleted successfully"})
}

func (e *DeletePostEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp MessageResponse
			if err := client.Delete(cmd.Context(), "/posts/"+url.PathEscape(args[0]), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
