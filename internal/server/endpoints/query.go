package endpoints

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jackzampolin/userboard/internal/config"
	"github.com/jackzampolin/userboard/internal/svcctx"
	"github.com/jackzampolin/userboard/internal/types"
)

// parsePage reads pageNumber and pageSize from the query string.
// pageSize falls back to the pagination.page_size setting and is capped by
// pagination.max_page_size.
func parsePage(r *http.Request) (types.Page, error) {
	ctx := r.Context()
	settings := svcctx.ConfigStoreFrom(ctx)
	q := r.URL.Query()

	number, err := intParam(q, "pageNumber", 1, 1)
	if err != nil {
		return types.Page{}, err
	}

	defSize := config.Int(ctx, settings, config.KeyPageSize, config.DefaultPageSize)
	size, err := intParam(q, "pageSize", defSize, 1)
	if err != nil {
		return types.Page{}, err
	}

	maxSize := config.Int(ctx, settings, config.KeyMaxPageSize, config.DefaultMaxPageSize)
	if maxSize > 0 && size > maxSize {
		return types.Page{}, fmt.Errorf("pageSize must not exceed %d", maxSize)
	}

	return types.Page{Number: number, Size: size}, nil
}

// parseRadius reads radius from the query string, falling back to the
// pagination.radius setting.
func parseRadius(r *http.Request) (int, error) {
	ctx := r.Context()
	def := config.Int(ctx, svcctx.ConfigStoreFrom(ctx), config.KeyRadius, config.DefaultRadius)
	return intParam(r.URL.Query(), "radius", def, 0)
}

// intParam parses an optional integer query parameter no smaller than least.
func intParam(q url.Values, name string, fallback, least int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < least {
		if least == 0 {
			return 0, fmt.Errorf("%s must be a non-negative integer", name)
		}
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return n, nil
}

// pageQuery renders page parameters for CLI requests. Zero values are omitted
// so the server applies its defaults.
func pageQuery(number, size int) url.Values {
	q := url.Values{}
	if number > 0 {
		q.Set("pageNumber", strconv.Itoa(number))
	}
	if size > 0 {
		q.Set("pageSize", strconv.Itoa(size))
	}
	return q
}

// withQuery appends q to path when it is non-empty.
func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
