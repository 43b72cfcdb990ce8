package endpoints

import (
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/userboard/internal/api"
	"github.com/jackzampolin/userboard/internal/pagination"
	"github.com/jackzampolin/userboard/internal/svcctx"
)

// PagesResponse describes the paginator for the users list.
type PagesResponse struct {
	Pages      []pagination.Token `json:"pages" yaml:"pages" swaggertype:"array,string"`
	Page       int                `json:"page" yaml:"page"`
	PageSize   int                `json:"page_size" yaml:"page_size"`
	Radius     int                `json:"radius" yaml:"radius"`
	Total      int                `json:"total" yaml:"total"`
	TotalPages int                `json:"total_pages" yaml:"total_pages"`
	HasPrev    bool               `json:"has_prev" yaml:"has_prev"`
	HasNext    bool               `json:"has_next" yaml:"has_next"`
}

// NewPagesResponse builds the response for a paginator state.
func NewPagesResponse(p pagination.Paginator) PagesResponse {
	return PagesResponse{
		Pages:      p.Pages(),
		Page:       p.Page,
		PageSize:   p.PageSize,
		Radius:     p.Radius,
		Total:      p.Total,
		TotalPages: p.TotalPages(),
		HasPrev:    p.HasPrev(),
		HasNext:    p.HasNext(),
	}
}

// Text renders the paginator for `-o text`.
func (r PagesResponse) Text() string {
	return pagination.Paginator{Total: r.Total, PageSize: r.PageSize, Page: r.Page, Radius: r.Radius}.Text()
}

// UserPagesEndpoint handles GET /users/pages.
type UserPagesEndpoint struct{}

func (e *UserPagesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/users/pages", e.handler
}

func (e *UserPagesEndpoint) RequiresInit() bool { return true }

func (e *UserPagesEndpoint) Group() string { return "users" }

// handler godoc
//
//	@Summary		Paginator for the users list
//	@Description	Page tokens to render, with elided runs collapsed into "..."
//	@Tags			users
//	@Produce		json
//	@Param			pageNumber	query		int	false	"Current page (default 1)"
//	@Param			pageSize	query		int	false	"Users per page (default from settings)"
//	@Param			radius		query		int	false	"Pages shown around the current page (default from settings)"
//	@Success		200			{object}	PagesResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/users/pages [get]
func (e *UserPagesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	radius, err := parseRadius(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	total, err := svcctx.StoreFrom(r.Context()).CountUsers(r.Context())
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Error("failed to count users", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to count users")
		return
	}

	p := pagination.Paginator{Total: total, PageSize: page.Size, Page: page.Number, Radius: radius}
	writeJSON(w, http.StatusOK, NewPagesResponse(p))
}

func (e *UserPagesEndpoint) Command(getServerURL func() string) *cobra.Command {
	var page, size, radius int
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Show the paginator for the users list",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := pageQuery(page, size)
			if cmd.Flags().Changed("radius") {
				q.Set("radius", strconv.Itoa(radius))
			}

			client := api.NewClient(getServerURL())
			var resp PagesResponse
			if err := client.Get(cmd.Context(), withQuery("/users/pages", q), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "Current page (default 1)")
	cmd.Flags().IntVar(&size, "size", 0, "Page size (default from settings)")
	cmd.Flags().IntVar(&radius, "radius", 0, "Pages around the current one (default from settings)")
	return cmd
}
