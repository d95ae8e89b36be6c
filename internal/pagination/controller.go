package pagination

import (
	"context"
	"sync"

	"dareboard/internal/apiutil"

	"github.com/rs/zerolog/log"
)

// State is a snapshot of a Controller. Data is a copy and safe to keep.
type State[T any] struct {
	Data       []T             `json:"data"`
	Loading    bool            `json:"loading"`
	Err        string          `json:"error,omitempty"`
	Pagination PaginationState `json:"pagination"`
}

// Controller holds one page of T at a time and replaces it wholesale on each
// successful fetch. On failure the previous page and pagination stay put.
type Controller[T any] struct {
	fetch FetchFunc[T]
	opts  options
	subs  listeners[State[T]]

	mu     sync.Mutex
	state  State[T]
	seq    uint64
	cancel context.CancelFunc
	closed bool
}

// New creates a Controller. Unless WithAutoFetch(false) is given and as long
// as fetch is non-nil, it loads the initial page before returning.
func New[T any](ctx context.Context, fetch FetchFunc[T], opts ...Option) *Controller[T] {
	o := buildOptions(opts)
	c := &Controller[T]{
		fetch: fetch,
		opts:  o,
		state: State[T]{
			Data: []T{},
			Pagination: PaginationState{
				Page:    o.initialPage,
				Limit:   o.initialLimit,
				HasPrev: o.initialPage > 1,
			},
		},
	}
	if o.autoFetch && fetch != nil {
		c.FetchData(ctx, o.initialPage, o.initialLimit)
	}
	return c
}

// State returns the current snapshot.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to receive every state change. The returned func
// unsubscribes.
func (c *Controller[T]) Subscribe(fn func(State[T])) func() {
	return c.subs.add(fn)
}

// FetchData loads page at limit (both clamped). It supersedes any fetch still
// in flight: the older one is cancelled and its result ignored.
func (c *Controller[T]) FetchData(ctx context.Context, page, limit int) State[T] {
	req := apiutil.ClampPagination(page, limit)

	c.mu.Lock()
	if c.closed || c.fetch == nil {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}
	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state.Loading = true
	c.state.Err = ""
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.subs.emit(snap)

	env, err := c.fetch(fctx, Params{Page: req.Page, Limit: req.Limit, Extra: cloneExtra(c.opts.extra)})
	cancel()

	c.mu.Lock()
	if c.closed || seq != c.seq {
		snap = c.snapshotLocked()
		c.mu.Unlock()
		log.Debug().
			Str("list", c.opts.label).
			Int("page", req.Page).
			Uint64("seq", seq).
			Msg("dropping stale page response")
		return snap
	}
	c.cancel = nil
	c.state.Loading = false
	if err != nil {
		c.state.Err = apiutil.HandleError(err, c.opts.label)
	} else {
		if env.Shape == apiutil.ShapeEntity {
			log.Warn().
				Str("list", c.opts.label).
				Msg("expected a list response, got a single object")
		}
		items := env.List()
		c.state.Data = cloneItems(items)
		c.state.Pagination = derivePagination(req, len(items), env.Meta)
	}
	snap = c.snapshotLocked()
	c.mu.Unlock()
	c.subs.emit(snap)
	return snap
}

// GoToPage fetches page at the current limit. Pages outside
// [1, TotalPages] are ignored.
func (c *Controller[T]) GoToPage(ctx context.Context, page int) State[T] {
	c.mu.Lock()
	p := c.state.Pagination
	if page < 1 || page > p.TotalPages {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}
	c.mu.Unlock()
	return c.FetchData(ctx, page, p.Limit)
}

// NextPage advances one page if HasNext.
func (c *Controller[T]) NextPage(ctx context.Context) State[T] {
	c.mu.Lock()
	p := c.state.Pagination
	if !p.HasNext {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}
	c.mu.Unlock()
	return c.FetchData(ctx, p.Page+1, p.Limit)
}

// PrevPage goes back one page if HasPrev.
func (c *Controller[T]) PrevPage(ctx context.Context) State[T] {
	c.mu.Lock()
	p := c.state.Pagination
	if !p.HasPrev {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}
	c.mu.Unlock()
	return c.FetchData(ctx, p.Page-1, p.Limit)
}

// ChangePageSize clamps limit and reloads from page 1.
func (c *Controller[T]) ChangePageSize(ctx context.Context, limit int) State[T] {
	return c.FetchData(ctx, 1, apiutil.ClampLimit(limit))
}

// Refresh reloads the current page and limit.
func (c *Controller[T]) Refresh(ctx context.Context) State[T] {
	c.mu.Lock()
	p := c.state.Pagination
	c.mu.Unlock()
	return c.FetchData(ctx, p.Page, p.Limit)
}

// Close cancels any fetch in flight and freezes the state. Later calls are
// no-ops that return the final snapshot.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.state.Loading = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller[T]) snapshotLocked() State[T] {
	s := c.state
	s.Data = cloneItems(c.state.Data)
	return s
}
