package pagination

import (
	"context"
	"sync"

	"dareboard/internal/apiutil"

	"github.com/rs/zerolog/log"
)

// ScrollState is a snapshot of a Scroller. Page is the next page to fetch.
type ScrollState[T any] struct {
	Data    []T    `json:"data"`
	Loading bool   `json:"loading"`
	Err     string `json:"error,omitempty"`
	HasMore bool   `json:"hasMore"`
	Page    int    `json:"page"`
}

// Scroller accumulates pages in order for infinite scrolling. Only one fetch
// runs at a time; FetchNext while loading is a no-op.
type Scroller[T any] struct {
	fetch FetchFunc[T]
	opts  options
	subs  listeners[ScrollState[T]]

	mu     sync.Mutex
	state  ScrollState[T]
	gen    uint64
	cancel context.CancelFunc
	closed bool
}

// NewScroller creates a Scroller starting at page 1. With auto-fetch on (the
// default) and a non-nil fetch it loads the first page before returning.
func NewScroller[T any](ctx context.Context, fetch FetchFunc[T], opts ...Option) *Scroller[T] {
	o := buildOptions(opts)
	s := &Scroller[T]{
		fetch: fetch,
		opts:  o,
		state: ScrollState[T]{Data: []T{}, HasMore: true, Page: 1},
	}
	if o.autoFetch && fetch != nil {
		s.FetchNext(ctx)
	}
	return s
}

// Limit is the fixed page size.
func (s *Scroller[T]) Limit() int { return s.opts.initialLimit }

// State returns the current snapshot.
func (s *Scroller[T]) State() ScrollState[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive every state change.
func (s *Scroller[T]) Subscribe(fn func(ScrollState[T])) func() {
	return s.subs.add(fn)
}

// FetchNext loads the next page and appends it. The first page replaces
// whatever is held, so Reset followed by FetchNext starts clean.
func (s *Scroller[T]) FetchNext(ctx context.Context) ScrollState[T] {
	s.mu.Lock()
	if s.closed || s.fetch == nil || s.state.Loading || !s.state.HasMore {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	gen := s.gen
	page := s.state.Page
	fctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state.Loading = true
	s.state.Err = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.subs.emit(snap)

	limit := s.opts.initialLimit
	env, err := s.fetch(fctx, Params{Page: page, Limit: limit, Extra: cloneExtra(s.opts.extra)})
	cancel()

	s.mu.Lock()
	if s.closed || gen != s.gen {
		snap = s.snapshotLocked()
		s.mu.Unlock()
		log.Debug().
			Str("list", s.opts.label).
			Int("page", page).
			Msg("dropping page fetched before reset")
		return snap
	}
	s.cancel = nil
	s.state.Loading = false
	if err != nil {
		s.state.Err = apiutil.HandleError(err, s.opts.label)
	} else {
		items := env.List()
		if page > 1 {
			s.state.Data = append(s.state.Data, items...)
		} else {
			s.state.Data = cloneItems(items)
		}
		s.state.HasMore = deriveHasMore(len(items), limit, env.Meta)
		s.state.Page = page + 1
	}
	snap = s.snapshotLocked()
	s.mu.Unlock()
	s.subs.emit(snap)
	return snap
}

// Reset empties the list and rewinds to page 1 without fetching. A fetch
// still in flight is cancelled and its result discarded.
func (s *Scroller[T]) Reset() ScrollState[T] {
	s.mu.Lock()
	if s.closed {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = ScrollState[T]{Data: []T{}, HasMore: true, Page: 1}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.subs.emit(snap)
	return snap
}

// Refresh is Reset followed by FetchNext.
func (s *Scroller[T]) Refresh(ctx context.Context) ScrollState[T] {
	s.Reset()
	return s.FetchNext(ctx)
}

// Close cancels any fetch in flight and freezes the state.
func (s *Scroller[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.state.Loading = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Scroller[T]) snapshotLocked() ScrollState[T] {
	st := s.state
	st.Data = cloneItems(s.state.Data)
	return st
}
