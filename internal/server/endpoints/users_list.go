package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/userboard/internal/api"
	"github.com/jackzampolin/userboard/internal/svcctx"
	"github.com/jackzampolin/userboard/internal/types"
)

// ListUsersEndpoint handles GET /users.
type ListUsersEndpoint struct{}

func (e *ListUsersEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/users", e.handler
}

func (e *ListUsersEndpoint) RequiresInit() bool { return true }

func (e *ListUsersEndpoint) Group() string { return "users" }

// handler godoc
//
//	@Summary		List users
//	@Description	One page of users ordered by name, each with its address
//	@Tags			users
//	@Produce		json
//	@Param			pageNumber	query		int	false	"1-indexed page (default 1)"
//	@Param			pageSize	query		int	false	"Users per page (default from settings)"
//	@Success		200			{array}		types.User
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/users [get]
func (e *ListUsersEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	users, err := svcctx.StoreFrom(r.Context()).ListUsers(r.Context(), page)
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Error("failed to list users", "page", page.Number, "size", page.Size, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (e *ListUsersEndpoint) Command(getServerURL func() string) *cobra.Command {
	var page, size int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of users",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var users []types.User
			if err := client.Get(cmd.Context(), withQuery("/users", pageQuery(page, size)), &users); err != nil {
				return err
			}
			return api.Output(users)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "Page number (default 1)")
	cmd.Flags().IntVar(&size, "size", 0, "Page size (default from settings)")
	return cmd
}
