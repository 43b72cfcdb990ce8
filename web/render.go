package web

import (
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/jackzampolin/userboard/internal/pagination"
	"github.com/jackzampolin/userboard/internal/types"
)

// Renderer executes the page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"lower": strings.ToLower,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Users renders the users table page.
func (r *Renderer) Users(w io.Writer, page UsersPage) error {
	return r.tmpl.ExecuteTemplate(w, "users.html", page)
}

// Posts renders a user's posts page.
func (r *Renderer) Posts(w io.Writer, page PostsPage) error {
	return r.tmpl.ExecuteTemplate(w, "posts.html", page)
}

// UsersPage is the view model for the users table.
type UsersPage struct {
	Users []UserRow
	Total int
	// Wide is shown on large screens, Narrow below the breakpoint.
	Wide   PaginatorView
	Narrow PaginatorView
}

// UserRow is one row of the users table.
type UserRow struct {
	ID      string
	Name    string
	Email   string
	Address string // "-" when the user has none
}

// NewUserRow formats a user for the table.
func NewUserRow(u types.User) UserRow {
	row := UserRow{ID: u.ID, Name: u.Name, Email: u.Email, Address: "-"}
	if u.Address != nil {
		if s := u.Address.Format(); s != "" {
			row.Address = s
		}
	}
	return row
}

// PaginatorView is a paginator ready for rendering.
type PaginatorView struct {
	HasPrev bool
	HasNext bool
	PrevURL string
	NextURL string
	Items   []PageItem
}

// PageItem is one rendered token. Ellipsis items carry no link.
type PageItem struct {
	Label    string
	URL      string
	Active   bool
	Ellipsis bool
}

// NewPaginatorView builds the view for p, linking pages relative to the
// current path with pageNumber and pageSize parameters.
func NewPaginatorView(p pagination.Paginator) PaginatorView {
	link := func(page int) string {
		q := url.Values{}
		q.Set("pageNumber", strconv.Itoa(page))
		q.Set("pageSize", strconv.Itoa(p.PageSize))
		return "?" + q.Encode()
	}

	v := PaginatorView{
		HasPrev: p.HasPrev(),
		HasNext: p.HasNext(),
		PrevURL: link(p.Prev()),
		NextURL: link(p.Next()),
	}
	for _, t := range p.Pages() {
		if t.IsEllipsis() {
			v.Items = append(v.Items, PageItem{Label: t.String(), Ellipsis: true})
			continue
		}
		v.Items = append(v.Items, PageItem{
			Label:  t.String(),
			URL:    link(t.Page()),
			Active: p.IsActive(t),
		})
	}
	return v
}

// PostsPage is the view model for a user's posts.
type PostsPage struct {
	User  types.User
	Posts []types.Post
	// Form and Error carry a rejected new-post submission back to the page.
	Form  PostForm
	Error string
}

// PostForm holds the new-post form fields.
type PostForm struct {
	Title string
	Body  string
}
