package client

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	"dareboard/internal/apiutil"
	"dareboard/internal/pagination"

	"github.com/rs/zerolog/log"
)

// PageFetcher binds a list endpoint to a pagination fetch function. Page and
// limit go out as query parameters along with any non-empty extras.
func PageFetcher[T any](c *HTTPClient, endpoint string) pagination.FetchFunc[T] {
	return func(ctx context.Context, p pagination.Params) (apiutil.Envelope[T], error) {
		resp, err := c.Get(ctx, endpoint, pageQuery(p))
		if err != nil {
			return apiutil.Empty[T](), err
		}

		env, err := apiutil.DecodeEnvelope[T](resp.Body)
		if err != nil {
			// A body we cannot read is an empty page, not a failed fetch.
			log.Warn().
				Err(err).
				Str("endpoint", endpoint).
				Int("page", p.Page).
				Msg("unreadable list response, treating as empty")
			return apiutil.Empty[T](), nil
		}
		return env, nil
	}
}

func pageQuery(p pagination.Params) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.Limit))

	keys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == "page" || k == "limit" || p.Extra[k] == "" {
			continue
		}
		q.Set(k, p.Extra[k])
	}
	return q
}

// GetEntity fetches a single resource. found is false when the server
// answered with nothing usable for kind.
func GetEntity[T any](ctx context.Context, c *HTTPClient, endpoint string) (item T, found bool, err error) {
	resp, err := c.Get(ctx, endpoint, nil)
	if err != nil {
		return item, false, err
	}

	env, err := apiutil.DecodeEnvelope[T](resp.Body)
	if err != nil {
		log.Warn().Err(err).Str("endpoint", endpoint).Msg("unreadable entity response")
		return item, false, nil
	}
	item, found = env.Entity()
	return item, found, nil
}
