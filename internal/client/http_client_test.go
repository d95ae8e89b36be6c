package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"dareboard/internal/apiutil"
	"dareboard/internal/domain/dare"
	"dareboard/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c := NewHTTPClient("test", 5)
	c.SetBaseURL(srv.URL + "/")
	c.SetRetry(2, time.Millisecond)
	return c
}

func TestGet_Headers(t *testing.T) {
	var got http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`[]`))
	})
	c.SetToken("secret")

	resp, err := c.Get(context.Background(), "/api/v1/dares", nil)
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, "Bearer secret", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Len(t, got.Get("X-Request-ID"), 36)
}

func TestGet_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	resp, err := c.Get(context.Background(), "/x", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGet_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Get(context.Background(), "/x", nil)
	require.Error(t, err)
	var fe *apiutil.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusTooManyRequests, fe.Status)
	assert.Equal(t, apiutil.ErrRateLimited, apiutil.ClassifyError(err))
	assert.Equal(t, int32(3), calls.Load())
}

func TestGet_PermanentStatusNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"title taken","code":"DUPLICATE"}`))
	})

	_, err := c.Get(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	var fe *apiutil.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusConflict, fe.Status)
	assert.Equal(t, "title taken", fe.Message)
	assert.Equal(t, "DUPLICATE", fe.Code)
	assert.Equal(t, "title taken", apiutil.HandleError(err, "test"))
}

func TestGet_PlainTextErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})

	_, err := c.Get(context.Background(), "/x", nil)
	var fe *apiutil.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "nope", fe.Message)
	assert.Equal(t, apiutil.ErrNotFound, apiutil.ClassifyError(err))
}

func TestGet_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, "/x", nil)
	require.Error(t, err)
	assert.Equal(t, apiutil.ErrTimeout, apiutil.ClassifyError(err))
}

func TestGet_ClientTimeoutMarked(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	c.client.Timeout = 20 * time.Millisecond
	c.SetRetry(0, time.Millisecond)

	_, err := c.Get(context.Background(), "/slow", nil)
	require.Error(t, err)

	var fe *apiutil.FetchError
	require.ErrorAs(t, err, &fe)
	assert.True(t, fe.Timeout)
	assert.Zero(t, fe.Status)
	assert.Equal(t, apiutil.ErrTimeout, apiutil.ClassifyError(err))
}

func TestPageFetcher(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data":[{"id":"d1","title":"One"},{"id":"d2","title":"Two"}],"pagination":{"page":2,"limit":5,"total":7}}`))
	})

	fetch := PageFetcher[dare.Dare](c, "/api/v1/dares")
	env, err := fetch(context.Background(), pagination.Params{
		Page:  2,
		Limit: 5,
		Extra: map[string]string{"difficulty": "edge", "status": "", "page": "9"},
	})
	require.NoError(t, err)
	assert.Equal(t, "difficulty=edge&limit=5&page=2", query)
	assert.Equal(t, apiutil.ShapeEnvelope, env.Shape)
	require.Len(t, env.List(), 2)
	assert.Equal(t, "d2", env.List()[1].ID)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 7, *env.Meta.Total)
}

func TestPageFetcher_MalformedBodyIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	env, err := PageFetcher[dare.Dare](c, "/x")(context.Background(), pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, apiutil.ShapeEmpty, env.Shape)
	assert.Empty(t, env.List())
}

func TestPageFetcher_DrivesController(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"a"},{"id":"b"}]`))
	})

	ctl := pagination.New(context.Background(), PageFetcher[dare.Dare](c, "/api/v1/dares"))
	defer ctl.Close()

	st := ctl.State()
	assert.Empty(t, st.Err)
	require.Len(t, st.Data, 2)
	assert.Equal(t, 2, st.Pagination.Total)
}

func TestGetEntity(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/dares/d1":
			_, _ = w.Write([]byte(`{"data":{"id":"d1","title":"One"}}`))
		default:
			_, _ = w.Write([]byte(`null`))
		}
	})

	d, found, err := GetEntity[dare.Dare](context.Background(), c, "/api/v1/dares/d1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "One", d.Title)

	_, found, err = GetEntity[dare.Dare](context.Background(), c, "/api/v1/dares/zz")
	require.NoError(t, err)
	assert.False(t, found)
}
