package endpoints

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/userboard/internal/api"
	"github.com/jackzampolin/userboard/internal/store"
	"github.com/jackzampolin/userboard/internal/svcctx"
	"github.com/jackzampolin/userboard/internal/types"
)

// GetUserEndpoint handles GET /users/{id}.
type GetUserEndpoint struct{}

func (e *GetUserEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/users/{id}", e.handler
}

func (e *GetUserEndpoint) RequiresInit() bool { return true }

func (e *GetUserEndpoint) Group() string { return "users" }

// handler godoc
//
//	@Summary	Get a user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	types.User
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Failure	503	{object}	ErrorResponse
//	@Router		/users/{id} [get]
func (e *GetUserEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := svcctx.StoreFrom(r.Context()).GetUser(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Error("failed to get user", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (e *GetUserEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a user by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var user types.User
			if err := client.Get(cmd.Context(), "/users/"+url.PathEscape(args[0]), &user); err != nil {
				return err
			}
			return api.Output(user)
		},
	}
}
