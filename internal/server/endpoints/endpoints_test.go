package endpoints

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jackzampolin/userboard/internal/config"
	"github.com/jackzampolin/userboard/internal/store"
	"github.com/jackzampolin/userboard/internal/svcctx"
	"github.com/jackzampolin/userboard/internal/types"
)

type testEnv struct {
	store    *store.Store
	settings *config.SQLStore
	handler  http.Handler
}

// newTestEnv wires every endpoint to a fresh database, the way the server does.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "endpoints.db"))
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	settings := config.NewStore(st.DB())
	if err := config.SeedDefaults(context.Background(), settings, logger); err != nil {
		t.Fatalf("SeedDefaults() error = %v", err)
	}

	mux := http.NewServeMux()
	Registry().RegisterRoutes(mux, func(h http.HandlerFunc) http.HandlerFunc { return h })

	services := &svcctx.Services{Store: st, ConfigStore: settings, Logger: logger}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r.WithContext(svcctx.WithServices(r.Context(), services)))
	})

	return &testEnv{store: st, settings: settings, handler: handler}
}

// postForm submits form as a browser would.
func (e *testEnv) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// addUsers inserts n users named "User 00", "User 01", ...
func (e *testEnv) addUsers(t *testing.T, n int) []types.User {
	t.Helper()
	users := make([]types.User, 0, n)
	for i := 0; i < n; i++ {
		u, err := e.store.CreateUser(context.Background(), types.User{
			Name:     fmt.Sprintf("User %02d", i),
			Username: fmt.Sprintf("user%02d", i),
			Email:    fmt.Sprintf("User%02d@Example.com", i),
		})
		if err != nil {
			t.Fatalf("CreateUser() error = %v", err)
		}
		users = append(users, *u)
	}
	return users
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, code, rec.Body.String())
	}
}

func wantError(t *testing.T, rec *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	wantStatus(t, rec, code)
	if got := decode[ErrorResponse](t, rec).Error; got != msg {
		t.Errorf("error = %q, want %q", got, msg)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "")
	wantStatus(t, rec, http.StatusOK)
	if got := decode[HealthResponse](t, rec).Status; got != "ok" {
		t.Errorf("status = %q, want ok", got)
	}
}

func TestReady(t *testing.T) {
	t.Run("store open", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodGet, "/ready", "")
		wantStatus(t, rec, http.StatusOK)
		if got := decode[HealthResponse](t, rec); got.Database != "ok" {
			t.Errorf("database = %q, want ok", got.Database)
		}
	})

	t.Run("no services", func(t *testing.T) {
		rec := httptest.NewRecorder()
		(&ReadyEndpoint{}).handler(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		wantStatus(t, rec, http.StatusServiceUnavailable)
		got := decode[HealthResponse](t, rec)
		if got.Status != "degraded" || got.Database != "not_initialized" {
			t.Errorf("response = %+v", got)
		}
	})

	t.Run("store closed", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.Close()
		rec := env.do(t, http.MethodGet, "/ready", "")
		wantStatus(t, rec, http.StatusServiceUnavailable)
		if got := decode[HealthResponse](t, rec).Database; got != "unhealthy" {
			t.Errorf("database = %q, want unhealthy", got)
		}
	})
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t)
	env.addUsers(t, 3)

	rec := env.do(t, http.MethodGet, "/status", "")
	wantStatus(t, rec, http.StatusOK)

	got := decode[StatusResponse](t, rec)
	if got.Server != "running" {
		t.Errorf("server = %q, want running", got.Server)
	}
	if got.Database.Health != "healthy" || got.Database.Users != 3 || got.Database.SchemaVersion < 1 {
		t.Errorf("database = %+v", got.Database)
	}
	if got.Database.Path != env.store.Path() {
		t.Errorf("path = %q, want %q", got.Database.Path, env.store.Path())
	}
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	env.addUsers(t, 10)

	tests := []struct {
		name      string
		query     string
		wantNames []string
	}{
		{"defaults to first page of four", "", []string{"User 00", "User 01", "User 02", "User 03"}},
		{"second page", "?pageNumber=2", []string{"User 04", "User 05", "User 06", "User 07"}},
		{"partial last page", "?pageNumber=3", []string{"User 08", "User 09"}},
		{"past the end", "?pageNumber=4", []string{}},
		{"huge page number", "?pageNumber=4611686018427387905&pageSize=4", []string{}},
		{"custom size", "?pageNumber=2&pageSize=3", []string{"User 03", "User 04", "User 05"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/users"+tt.query, "")
			wantStatus(t, rec, http.StatusOK)

			users := decode[[]types.User](t, rec)
			names := make([]string, 0, len(users))
			for _, u := range users {
				names = append(names, u.Name)
			}
			if !reflect.DeepEqual(names, tt.wantNames) {
				t.Errorf("names = %v, want %v", names, tt.wantNames)
			}
		})
	}

	t.Run("empty page is an array", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/users?pageNumber=9", "")
		wantStatus(t, rec, http.StatusOK)
		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Errorf("body = %q, want []", got)
		}
	})
}

func TestListUsers_BadQuery(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		query string
		want  string
	}{
		{"?pageNumber=0", "pageNumber must be a positive integer"},
		{"?pageNumber=abc", "pageNumber must be a positive integer"},
		{"?pageSize=-1", "pageSize must be a positive integer"},
		{"?pageSize=101", "pageSize must not exceed 100"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			wantError(t, env.do(t, http.MethodGet, "/users"+tt.query, ""), http.StatusBadRequest, tt.want)
		})
	}
}

func TestListUsers_PageSizeSetting(t *testing.T) {
	env := newTestEnv(t)
	env.addUsers(t, 8)

	if err := env.settings.Set(context.Background(), config.KeyPageSize, 6, ""); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	rec := env.do(t, http.MethodGet, "/users", "")
	wantStatus(t, rec, http.StatusOK)
	if got := len(decode[[]types.User](t, rec)); got != 6 {
		t.Errorf("len = %d, want 6", got)
	}
}

func TestCountUsers(t *testing.T) {
	env := newTestEnv(t)
	env.addUsers(t, 5)

	rec := env.do(t, http.MethodGet, "/users/count", "")
	wantStatus(t, rec, http.StatusOK)
	if got := decode[CountResponse](t, rec).Count; got != 5 {
		t.Errorf("count = %d, want 5", got)
	}
}

func TestUserPages(t *testing.T) {
	env := newTestEnv(t)
	env.addUsers(t, 40)

	t.Run("dotted range", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/users/pages?pageNumber=5&radius=1", "")
		wantStatus(t, rec, http.StatusOK)

		var got struct {
			Pages      []any `json:"pages"`
			Page       int   `json:"page"`
			PageSize   int   `json:"page_size"`
			Radius     int   `json:"radius"`
			Total      int   `json:"total"`
			TotalPages int   `json:"total_pages"`
			HasPrev    bool  `json:"has_prev"`
			HasNext    bool  `json:"has_next"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}

		want := []any{1.0, "...", 4.0, 5.0, 6.0, "...", 10.0}
		if !reflect.DeepEqual(got.Pages, want) {
			t.Errorf("pages = %v, want %v", got.Pages, want)
		}
		if got.Page != 5 || got.PageSize != 4 || got.Radius != 1 || got.Total != 40 || got.TotalPages != 10 {
			t.Errorf("response = %+v", got)
		}
		if !got.HasPrev || !got.HasNext {
			t.Errorf("has_prev = %v, has_next = %v, want both true", got.HasPrev, got.HasNext)
		}
	})

	t.Run("radius defaults from settings", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/users/pages?pageNumber=1", "")
		wantStatus(t, rec, http.StatusOK)
		got := decode[PagesResponse](t, rec)
		if got.Radius != 2 {
			t.Errorf("radius = %d, want 2", got.Radius)
		}
		if got.HasPrev {
			t.Error("has_prev should be false on the first page")
		}
	})

	t.Run("huge radius keeps every page", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/users/pages?pageNumber=5&radius=9223372036854775807", "")
		wantStatus(t, rec, http.StatusOK)
		got := decode[PagesResponse](t, rec)
		if len(got.Pages) != 10 {
			t.Errorf("pages = %v, want all 10", got.Pages)
		}
		for i, tok := range got.Pages {
			if tok.Page() != i+1 {
				t.Errorf("pages[%d] = %v, want %d", i, tok, i+1)
			}
		}
	})

	t.Run("text rendering", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/users/pages?pageNumber=5&radius=1", "")
		got := decode[PagesResponse](t, rec)
		if want := "1 ... 4 [5] 6 ... 10\npage 5 of 10, 40 items"; got.Text() != want {
			t.Errorf("Text() = %q, want %q", got.Text(), want)
		}
	})

	t.Run("negative radius rejected", func(t *testing.T) {
		wantError(t, env.do(t, http.MethodGet, "/users/pages?radius=-1", ""),
			http.StatusBadRequest, "radius must be a non-negative integer")
	})
}

func TestUserPages_NoUsers(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/users/pages", "")
	wantStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"pages":[]`) {
		t.Errorf("body = %s, want empty pages array", rec.Body.String())
	}
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUsers(t, 1)[0]

	rec := env.do(t, http.MethodGet, "/users/"+u.ID, "")
	wantStatus(t, rec, http.StatusOK)
	if got := decode[types.User](t, rec); got.ID != u.ID || got.Name != u.Name {
		t.Errorf("user = %+v", got)
	}

	wantError(t, env.do(t, http.MethodGet, "/users/missing", ""), http.StatusNotFound, "User not found")
}

func TestListPosts(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUsers(t, 1)[0]

	wantError(t, env.do(t, http.MethodGet, "/posts", ""), http.StatusBadRequest, "userId is required")

	rec := env.do(t, http.MethodGet, "/posts?userId="+u.ID, "")
	wantStatus(t, rec, http.StatusOK)
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}

	for _, title := range []string{"one", "two"} {
		if _, err := env.store.CreatePost(context.Background(), types.CreatePostInput{Title: title, Body: "b", UserID: u.ID}); err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}
	}

	rec = env.do(t, http.MethodGet, "/posts?userId="+u.ID, "")
	wantStatus(t, rec, http.StatusOK)
	posts := decode[[]types.Post](t, rec)
	if len(posts) != 2 {
		t.Fatalf("len = %d, want 2", len(posts))
	}
	if posts[0].Title != "two" {
		t.Errorf("first post = %q, want newest (two)", posts[0].Title)
	}
}

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUsers(t, 1)[0]

	rec := env.do(t, http.MethodPost, "/posts", fmt.Sprintf(`{"title":" Hello ","body":"World","userId":%q}`, u.ID))
	wantStatus(t, rec, http.StatusCreated)

	post := decode[types.Post](t, rec)
	if post.ID == "" || post.UserID != u.ID || post.Title != "Hello" || post.Body != "World" {
		t.Errorf("post = %+v", post)
	}
	if post.CreatedAt == "" {
		t.Error("created_at not set")
	}
}

func TestCreatePost_Validation(t *testing.T) {
	env := newTestEnv(t)

	const (
		titleMsg = "Title is required and must be a non-empty string"
		bodyMsg  = "Body is required and must be a non-empty string"
		userMsg  = "User ID is required and must be a non-empty string"
	)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty object", `{}`, titleMsg},
		{"blank title", `{"title":"  ","body":"b","userId":"u"}`, titleMsg},
		{"numeric title", `{"title":1,"body":"b","userId":"u"}`, titleMsg},
		{"missing body", `{"title":"t","userId":"u"}`, bodyMsg},
		{"blank body", `{"title":"t","body":"\n\t","userId":"u"}`, bodyMsg},
		{"no-break space title", `{"title":"\u00a0\u3000","body":"b","userId":"u"}`, titleMsg},
		{"vertical tab body", `{"title":"t","body":"\u000b","userId":"u"}`, bodyMsg},
		{"missing user", `{"title":"t","body":"b"}`, userMsg},
		{"null user", `{"title":"t","body":"b","userId":null}`, userMsg},
		{"not an object", `"post"`, "request body must be a JSON object"},
		{"malformed", `{"title":`, "request body must be a JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantError(t, env.do(t, http.MethodPost, "/posts", tt.body), http.StatusBadRequest, tt.want)
		})
	}
}

func TestCreatePost_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/posts", `{"title":"t","body":"b","userId":"nobody"}`)
	wantError(t, rec, http.StatusNotFound, "User not found")
}

func TestDeletePost(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUsers(t, 1)[0]

	post, err := env.store.CreatePost(context.Background(), types.CreatePostInput{Title: "t", Body: "b", UserID: u.ID})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	rec := env.do(t, http.MethodDelete, "/posts/"+post.ID, "")
	wantStatus(t, rec, http.StatusOK)
	if got := decode[MessageResponse](t, rec).Message; got != "Post deleted successfully" {
		t.Errorf("message = %q", got)
	}

	wantError(t, env.do(t, http.MethodDelete, "/posts/"+post.ID, ""), http.StatusNotFound, "Post not found")
	wantError(t, env.do(t, http.MethodDelete, "/posts/%20", ""), http.StatusBadRequest,
		"Post ID is required and must be a non-empty string")
}

func TestSettings(t *testing.T) {
	env := newTestEnv(t)

	t.Run("list", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/settings", "")
		wantStatus(t, rec, http.StatusOK)
		got := decode[SettingsResponse](t, rec)
		if len(got.Settings) != len(config.DefaultEntries()) {
			t.Errorf("len = %d, want %d", len(got.Settings), len(config.DefaultEntries()))
		}
	})

	t.Run("list by prefix", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/settings?prefix=pagination.radius", "")
		wantStatus(t, rec, http.StatusOK)
		got := decode[SettingsResponse](t, rec)
		if len(got.Settings) != 2 {
			t.Errorf("settings = %v, want radius and radius_small", got.Settings)
		}
	})

	t.Run("get", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/settings/"+config.KeyPageSize, "")
		wantStatus(t, rec, http.StatusOK)
		got := decode[SettingResponse](t, rec)
		if got.Entry == nil || got.Entry.Value != 4.0 {
			t.Errorf("entry = %+v, want value 4", got.Entry)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		wantError(t, env.do(t, http.MethodGet, "/api/settings/nope.nope", ""), http.StatusNotFound, "setting not found")
	})

	t.Run("invalid key", func(t *testing.T) {
		wantStatus(t, env.do(t, http.MethodGet, "/api/settings/bad%21key", ""), http.StatusBadRequest)
	})

	t.Run("update keeps description", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/settings/"+config.KeyPageSize, `{"value":10}`)
		wantStatus(t, rec, http.StatusOK)
		got := decode[SettingResponse](t, rec)
		if got.Entry.Value != 10.0 {
			t.Errorf("value = %v, want 10", got.Entry.Value)
		}
		if got.Entry.Description == "" {
			t.Error("description was cleared")
		}
	})

	t.Run("update rejects objects", func(t *testing.T) {
		wantStatus(t, env.do(t, http.MethodPut, "/api/settings/"+config.KeyPageSize, `{"value":{"a":1}}`), http.StatusBadRequest)
		wantStatus(t, env.do(t, http.MethodPut, "/api/settings/"+config.KeyPageSize, `{}`), http.StatusBadRequest)
	})

	t.Run("reset", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/settings/"+config.KeyPageSize+"/reset", "")
		wantStatus(t, rec, http.StatusOK)
		if got := decode[SettingResponse](t, rec); got.Entry.Value != 4.0 {
			t.Errorf("value = %v, want 4", got.Entry.Value)
		}
	})

	t.Run("reset without default", func(t *testing.T) {
		wantStatus(t, env.do(t, http.MethodPost, "/api/settings/custom.key/reset", ""), http.StatusNotFound)
	})
}

func TestSettings_NoStore(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	(&ListSettingsEndpoint{}).handler(rec, req)
	wantError(t, rec, http.StatusServiceUnavailable, "settings store not available")
}

func TestSwagger(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/swagger.json", "")
	wantStatus(t, rec, http.StatusOK)

	var doc struct {
		Swagger string                    `json:"swagger"`
		Info    map[string]any            `json:"info"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("swagger.json is not valid JSON: %v", err)
	}
	if doc.Swagger != "2.0" {
		t.Errorf("swagger = %q, want 2.0", doc.Swagger)
	}
	if doc.Info["title"] != "Userboard API" {
		t.Errorf("title = %v", doc.Info["title"])
	}

	for _, ep := range All() {
		method, path, _ := ep.Route()
		if !strings.HasPrefix(path, "/users") && !strings.HasPrefix(path, "/posts") && !strings.HasPrefix(path, "/api/") {
			continue
		}
		if _, ok := doc.Paths[path][strings.ToLower(method)]; !ok {
			t.Errorf("swagger.json does not document %s %s", method, path)
		}
	}

	rec = env.do(t, http.MethodGet, "/swagger", "")
	wantStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "swagger-ui") {
		t.Error("swagger UI page missing")
	}
}

func TestUsersPage(t *testing.T) {
	env := newTestEnv(t)
	env.addUsers(t, 10)

	rec := env.do(t, http.MethodGet, "/?pageNumber=2", "")
	wantStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{"User 04", "user04@example.com", `aria-current="page"`} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "User 00") {
		t.Error("page 2 should not list the first user")
	}

	wantStatus(t, env.do(t, http.MethodGet, "/?pageSize=0", ""), http.StatusBadRequest)
}

func TestUserPostsPage(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUsers(t, 1)[0]
	if _, err := env.store.CreatePost(context.Background(), types.CreatePostInput{Title: "<hi>", Body: "b", UserID: u.ID}); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	rec := env.do(t, http.MethodGet, "/ui/users/"+u.ID, "")
	wantStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "&lt;hi&gt;") {
		t.Error("post title not rendered escaped")
	}

	wantStatus(t, env.do(t, http.MethodGet, "/ui/users/missing", ""), http.StatusNotFound)
}

func TestCreatePostForm(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUsers(t, 1)[0]
	ctx := context.Background()

	t.Run("valid post redirects to the user page", func(t *testing.T) {
		rec := env.postForm(t, "/ui/users/"+u.ID+"/posts", url.Values{"title": {" Hello "}, "body": {"World"}})
		wantStatus(t, rec, http.StatusSeeOther)
		if loc := rec.Header().Get("Location"); loc != "/ui/users/"+u.ID {
			t.Errorf("Location = %q", loc)
		}

		posts, err := env.store.ListPosts(ctx, u.ID)
		if err != nil {
			t.Fatalf("ListPosts() error = %v", err)
		}
		if len(posts) != 1 || posts[0].Title != "Hello" {
			t.Errorf("posts = %+v", posts)
		}
	})

	t.Run("blank body re-renders with the message", func(t *testing.T) {
		rec := env.postForm(t, "/ui/users/"+u.ID+"/posts", url.Values{"title": {"<draft>"}, "body": {"\u00a0"}})
		wantStatus(t, rec, http.StatusBadRequest)
		body := rec.Body.String()
		for _, want := range []string{"Body is required and must be a non-empty string", `value="&lt;draft&gt;"`} {
			if !strings.Contains(body, want) {
				t.Errorf("body missing %q", want)
			}
		}

		posts, err := env.store.ListPosts(ctx, u.ID)
		if err != nil {
			t.Fatalf("ListPosts() error = %v", err)
		}
		if len(posts) != 1 {
			t.Errorf("len(posts) = %d, want 1", len(posts))
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := env.postForm(t, "/ui/users/missing/posts", url.Values{"title": {"t"}, "body": {"b"}})
		wantStatus(t, rec, http.StatusNotFound)
	})
}

func TestDeletePostForm(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUsers(t, 1)[0]

	post, err := env.store.CreatePost(context.Background(), types.CreatePostInput{Title: "t", Body: "b", UserID: u.ID})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	page := env.do(t, http.MethodGet, "/ui/users/"+u.ID, "")
	if !strings.Contains(page.Body.String(), `action="/ui/posts/`+post.ID+`/delete"`) {
		t.Error("posts page has no delete form")
	}

	rec := env.postForm(t, "/ui/posts/"+post.ID+"/delete", url.Values{"userId": {u.ID}})
	wantStatus(t, rec, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != "/ui/users/"+u.ID {
		t.Errorf("Location = %q", loc)
	}

	posts, err := env.store.ListPosts(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("posts = %+v, want none", posts)
	}

	wantStatus(t, env.postForm(t, "/ui/posts/"+post.ID+"/delete", url.Values{}), http.StatusNotFound)

	other, err := env.store.CreatePost(context.Background(), types.CreatePostInput{Title: "t", Body: "b", UserID: u.ID})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	rec = env.postForm(t, "/ui/posts/"+other.ID+"/delete", url.Values{})
	wantStatus(t, rec, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}

func TestStatic(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/static/style.css", "")
	wantStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), ".narrow") {
		t.Error("stylesheet missing paginator rules")
	}

	wantStatus(t, env.do(t, http.MethodGet, "/static/missing.css", ""), http.StatusNotFound)
}

func TestBuildCommands(t *testing.T) {
	root := Registry().BuildCommands(func() string { return "http://localhost:0" })

	for _, path := range [][]string{
		{"health"},
		{"ready"},
		{"status"},
		{"swagger"},
		{"users", "list"},
		{"users", "get"},
		{"users", "count"},
		{"users", "pages"},
		{"posts", "list"},
		{"posts", "create"},
		{"posts", "delete"},
		{"settings", "list"},
		{"settings", "get"},
		{"settings", "set"},
		{"settings", "reset"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd == root {
			t.Errorf("command %v not found", path)
		}
	}
}
