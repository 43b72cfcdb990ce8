package endpoints

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/userboard/internal/api"
	"github.com/jackzampolin/userboard/internal/schema"
	"github.com/jackzampolin/userboard/internal/store"
	"github.com/jackzampolin/userboard/internal/svcctx"
	"github.com/jackzampolin/userboard/internal/types"
)

// maxBodyBytes caps request bodies read by JSON endpoints.
const maxBodyBytes = 1 << 20

// fieldMessages are the client-facing messages for invalid post fields.
var fieldMessages = map[string]string{
	"title":  "Title is required and must be a non-empty string",
	"body":   "Body is required and must be a non-empty string",
	"userId": "User ID is required and must be a non-empty string",
}

// CreatePostEndpoint handles POST /posts.
type CreatePostEndpoint struct{}

func (e *CreatePostEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/posts", e.handler
}

func (e *CreatePostEndpoint) RequiresInit() bool { return true }

func (e *CreatePostEndpoint) Group() string { return "posts" }

// handler godoc
//
//	@Summary		Create a post
//	@Description	Title, body and userId are trimmed; all three must be non-empty strings
//	@Tags			posts
//	@Accept			json
//	@Produce		json
//	@Param			body	body		types.CreatePostInput	true	"New post"
//	@Success		201		{object}	types.Post
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/posts [post]
func (e *CreatePostEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := schema.Validate(schema.CreatePost, raw); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	var in types.CreatePostInput
	if err := json.Unmarshal(raw, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	post, err := svcctx.StoreFrom(r.Context()).CreatePost(r.Context(), in)
	if errors.Is(err, store.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Error("failed to create post", "user_id", in.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	svcctx.LoggerFrom(r.Context()).Info("post created", "id", post.ID, "user_id", post.UserID)
	writeJSON(w, http.StatusCreated, post)
}

// validationMessage maps a schema failure to its client-facing message.
func validationMessage(err error) string {
	var fe *schema.FieldError
	if errors.As(err, &fe) {
		if msg, ok := fieldMessages[fe.Field]; ok {
			return msg
		}
	}
	return err.Error()
}

func (e *CreatePostEndpoint) Command(getServerURL func() string) *cobra.Command {
	var in types.CreatePostInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var post types.Post
			if err := client.Post(cmd.Context(), "/posts", in, &post); err != nil {
				return err
			}
			return api.Output(post)
		},
	}
	cmd.Flags().StringVar(&in.UserID, "user", "", "Owner user ID")
	cmd.Flags().StringVar(&in.Title, "title", "", "Post title")
	cmd.Flags().StringVar(&in.Body, "body", "", "Post body")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}
