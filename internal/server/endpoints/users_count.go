package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/userboard/internal/api"
	"github.com/jackzampolin/userboard/internal/svcctx"
)

// CountResponse carries the total number of users.
type CountResponse struct {
	Count int `json:"count" yaml:"count"`
}

// CountUsersEndpoint handles GET /users/count.
type CountUsersEndpoint struct{}

func (e *CountUsersEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/users/count", e.handler
}

func (e *CountUsersEndpoint) RequiresInit() bool { return true }

func (e *CountUsersEndpoint) Group() string { return "users" }

// handler godoc
//
//	@Summary	Count users
//	@Tags		users
//	@Produce	json
//	@Success	200	{object}	CountResponse
//	@Failure	500	{object}	ErrorResponse
//	@Failure	503	{object}	ErrorResponse
//	@Router		/users/count [get]
func (e *CountUsersEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	count, err := svcctx.StoreFrom(r.Context()).CountUsers(r.Context())
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Error("failed to count users", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to count users")
		return
	}

	writeJSON(w, http.StatusOK, CountResponse{Count: count})
}

func (e *CountUsersEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count users",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp CountResponse
			if err := client.Get(cmd.Context(), "/users/count", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
