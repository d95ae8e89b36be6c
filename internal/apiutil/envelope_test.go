package apiutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    int    `json:"id"`
	Title string `json:"title,omitempty"`
}

func TestDecodeEnvelope(t *testing.T) {
	t.Run("null and blank", func(t *testing.T) {
		for _, body := range []string{"", "  ", "null"} {
			env, err := DecodeEnvelope[item]([]byte(body))
			require.NoError(t, err)
			assert.Equal(t, ShapeEmpty, env.Shape)
			assert.Equal(t, []item{}, env.List())
		}
	})

	t.Run("bare array", func(t *testing.T) {
		env, err := DecodeEnvelope[int]([]byte(`[1,2,3]`))
		require.NoError(t, err)
		assert.Equal(t, ShapeArray, env.Shape)
		assert.Equal(t, []int{1, 2, 3}, env.List())
		assert.Nil(t, env.Meta)
	})

	t.Run("data envelope with pagination", func(t *testing.T) {
		env, err := DecodeEnvelope[int]([]byte(`{"data":[1,2,3],"pagination":{"total":10,"totalPages":2}}`))
		require.NoError(t, err)
		assert.Equal(t, ShapeEnvelope, env.Shape)
		assert.Equal(t, []int{1, 2, 3}, env.List())
		require.NotNil(t, env.Meta)
		assert.Equal(t, 10, *env.Meta.Total)
		assert.Equal(t, 2, *env.Meta.TotalPages)
		assert.Nil(t, env.Meta.HasNext)
	})

	t.Run("items envelope with snake case meta", func(t *testing.T) {
		env, err := DecodeEnvelope[item]([]byte(`{"items":[{"id":1}],"meta":{"per_page":"5","total_pages":4,"has_next":true,"current_page":2}}`))
		require.NoError(t, err)
		assert.Equal(t, ShapeEnvelope, env.Shape)
		assert.Equal(t, []item{{ID: 1}}, env.List())
		require.NotNil(t, env.Meta)
		assert.Equal(t, 5, *env.Meta.Limit)
		assert.Equal(t, 4, *env.Meta.TotalPages)
		assert.Equal(t, 2, *env.Meta.Page)
		assert.True(t, *env.Meta.HasNext)
	})

	t.Run("top level paging flags", func(t *testing.T) {
		env, err := DecodeEnvelope[int]([]byte(`{"data":[1],"hasMore":false}`))
		require.NoError(t, err)
		require.NotNil(t, env.Meta)
		assert.False(t, *env.Meta.HasMore)
	})

	t.Run("data null", func(t *testing.T) {
		env, err := DecodeEnvelope[int]([]byte(`{"data":null}`))
		require.NoError(t, err)
		assert.Equal(t, ShapeEnvelope, env.Shape)
		assert.Empty(t, env.List())
	})

	t.Run("wrapped entity", func(t *testing.T) {
		env, err := DecodeEnvelope[item]([]byte(`{"data":{"id":9,"title":"x"}}`))
		require.NoError(t, err)
		got, ok := env.Entity()
		require.True(t, ok)
		assert.Equal(t, item{ID: 9, Title: "x"}, got)
		assert.Empty(t, env.List())
	})

	t.Run("bare entity", func(t *testing.T) {
		env, err := DecodeEnvelope[item]([]byte(`{"id":3}`))
		require.NoError(t, err)
		assert.Equal(t, ShapeEntity, env.Shape)
		got, ok := env.Entity()
		require.True(t, ok)
		assert.Equal(t, 3, got.ID)
	})

	t.Run("malformed degrades to empty", func(t *testing.T) {
		for _, body := range []string{`42`, `"text"`, `[1,`, `{"data":[{"id":"x"}]}`, `{bad`} {
			env, err := DecodeEnvelope[item]([]byte(body))
			assert.ErrorIs(t, err, ErrMalformed, body)
			assert.Equal(t, ShapeEmpty, env.Shape, body)
			assert.Equal(t, []item{}, env.List())
		}
	})
}

func TestEnvelope_JSONRoundTrip(t *testing.T) {
	total, pages := 10, 2
	cases := []Envelope[item]{
		ArrayOf(item{ID: 1}, item{ID: 2}),
		Paged([]item{{ID: 1}}, Meta{Total: &total, TotalPages: &pages}),
		EntityOf(item{ID: 5}),
		Empty[item](),
	}
	for _, in := range cases {
		b, err := json.Marshal(in)
		require.NoError(t, err)

		var out Envelope[item]
		require.NoError(t, json.Unmarshal(b, &out))
		assert.Equal(t, in.Shape, out.Shape, string(b))
		assert.Equal(t, in.List(), out.List())
	}
}

func TestValidateStrict(t *testing.T) {
	ok := []struct {
		kind Kind
		body string
	}{
		{KindDares, `[]`},
		{KindDares, `{"data":[{"id":1}],"pagination":{"page":1,"total":1}}`},
		{KindActs, `{"items":[],"meta":{"total_pages":0}}`},
		{KindDare, `{"id":1}`},
	}
	for _, c := range ok {
		assert.NoError(t, ValidateStrict([]byte(c.body), c.kind), c.body)
	}

	bad := []struct {
		kind Kind
		body string
	}{
		{KindDares, `null`},
		{KindDares, `{"data":{"id":1}}`},
		{KindDares, `{"data":[],"pagination":[]}`},
		{KindDares, `{"data":[],"pagination":{"total":"10"}}`},
		{KindDares, `{"data":[],"pagination":{"page":-1}}`},
		{KindDares, `"x"`},
		{KindDare, `[{"id":1}]`},
		{KindDare, `null`},
		{Kind("other"), `[]`},
		{KindDares, `{nope`},
	}
	for _, c := range bad {
		assert.Error(t, ValidateStrict([]byte(c.body), c.kind), c.body)
	}
}
