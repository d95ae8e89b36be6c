package apiutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type dareStub struct {
	ID    string
	Title string
}

func TestValidateResponse_CollectionKinds(t *testing.T) {
	for k := range collectionKinds {
		t.Run(string(k), func(t *testing.T) {
			assert.Equal(t, []any{}, ValidateResponse(nil, k))

			list := []dareStub{{ID: "1"}}
			assert.Equal(t, list, ValidateResponse(list, k))

			empty := []int{}
			assert.Equal(t, empty, ValidateResponse(empty, k))

			assert.Equal(t, []any{}, ValidateResponse(map[string]any{"data": 1}, k))
			assert.Equal(t, []any{}, ValidateResponse("not a list", k))
			assert.Equal(t, []any{}, ValidateResponse([]byte(`[1,2]`), k))
		})
	}
}

func TestValidateResponse_EntityKinds(t *testing.T) {
	for k := range entityKinds {
		t.Run(string(k), func(t *testing.T) {
			assert.Nil(t, ValidateResponse(nil, k))

			obj := map[string]any{"id": "d1"}
			assert.Equal(t, obj, ValidateResponse(obj, k))

			d := &dareStub{ID: "d1"}
			assert.Same(t, d, ValidateResponse(d, k))

			assert.Equal(t, dareStub{ID: "x"}, ValidateResponse(dareStub{ID: "x"}, k))
			assert.Nil(t, ValidateResponse([]any{1}, k))
			assert.Nil(t, ValidateResponse(42, k))
			assert.Nil(t, ValidateResponse((*dareStub)(nil), k))
		})
	}
}

func TestValidateResponse_FalsyScalars(t *testing.T) {
	falsy := []any{0, 0.0, "", false, math.NaN()}
	for _, v := range falsy {
		assert.Nil(t, ValidateResponse(v, KindDare), "%#v", v)
		assert.Nil(t, ValidateResponse(v, KindProfile), "%#v", v)
		assert.Equal(t, []any{}, ValidateResponse(v, KindDares), "%#v", v)
	}
	assert.Equal(t, 0, ValidateResponse(0, Kind("mystery")))
	assert.Equal(t, "", ValidateResponse("", Kind("mystery")))
}

func TestValidateResponse_UnknownKindPassesThrough(t *testing.T) {
	assert.Equal(t, "raw", ValidateResponse("raw", Kind("mystery")))
	assert.Equal(t, 7, ValidateResponse(7, Kind("mystery")))
	assert.Nil(t, ValidateResponse(nil, Kind("mystery")))
}

func TestValidateResponse_NeverPanics(t *testing.T) {
	type node struct {
		Next *node
	}
	cyc := &node{}
	cyc.Next = cyc

	loop := map[string]any{}
	loop["self"] = loop

	inputs := []any{
		nil, math.NaN(), math.Inf(-1), 0, 1, -1, "", "s", true, false,
		cyc, loop, []any{loop}, func() {}, make(chan int), struct{}{},
		(*int)(nil), map[string]any(nil), []any(nil), [2]int{1, 2},
	}
	kinds := []Kind{KindDares, KindDare, Kind("")}

	for _, in := range inputs {
		for _, k := range kinds {
			assert.NotPanics(t, func() { ValidateResponse(in, k) })
		}
	}

	assert.Equal(t, []any{}, ValidateResponse(math.NaN(), KindActs))
	assert.Equal(t, [2]int{1, 2}, ValidateResponse([2]int{1, 2}, KindActs))
	assert.Equal(t, loop, ValidateResponse(loop, KindUser))
}

func TestKind(t *testing.T) {
	assert.True(t, KindSwitchGames.IsCollection())
	assert.False(t, KindSwitchGames.IsEntity())
	assert.True(t, KindProfile.IsEntity())
	assert.False(t, Kind("nope").Known())
}
