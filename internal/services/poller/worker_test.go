package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"dareboard/internal/apiutil"
	"dareboard/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTick_ContinuesPastFailures(t *testing.T) {
	var order []string
	w := NewWorker(time.Second,
		Target{Name: "a", Refresh: func(context.Context) error { order = append(order, "a"); return errors.New("boom") }},
		Target{Name: "nil"},
		Target{Name: "b", Refresh: func(context.Context) error { order = append(order, "b"); return nil }},
	)

	assert.Equal(t, 1, w.Tick(context.Background()))
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestTick_StopsOnCancelledContext(t *testing.T) {
	var calls int
	w := NewWorker(time.Second, Target{Name: "a", Refresh: func(context.Context) error { calls++; return nil }})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, 0, w.Tick(ctx))
	assert.Zero(t, calls)
}

func TestRun_TicksUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	w := NewWorker(5*time.Millisecond, Target{Name: "a", Refresh: func(context.Context) error {
		calls.Add(1)
		return nil
	}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestControllerTarget(t *testing.T) {
	var calls atomic.Int32
	fail := atomic.Bool{}
	fetch := func(context.Context, pagination.Params) (apiutil.Envelope[string], error) {
		calls.Add(1)
		if fail.Load() {
			return apiutil.Empty[string](), &apiutil.FetchError{Status: 404}
		}
		return apiutil.ArrayOf("n1"), nil
	}

	c := pagination.New(context.Background(), fetch)
	defer c.Close()
	target := ControllerTarget("notifications", c)

	require.NoError(t, target.Refresh(context.Background()))
	assert.Equal(t, int32(2), calls.Load())

	fail.Store(true)
	err := target.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, apiutil.ErrNotFound.Message(), err.Error())
}

func TestScrollerTarget(t *testing.T) {
	var pages []int
	fetch := func(_ context.Context, p pagination.Params) (apiutil.Envelope[string], error) {
		pages = append(pages, p.Page)
		return apiutil.ArrayOf("x"), nil
	}

	s := pagination.NewScroller(context.Background(), fetch)
	defer s.Close()

	require.NoError(t, ScrollerTarget("feed", s).Refresh(context.Background()))
	assert.Equal(t, []int{1, 1}, pages)
	assert.Equal(t, []string{"x"}, s.State().Data)
}
