package pagination

import "sync"

// listeners fans state snapshots out to subscribers. Callbacks run on the
// goroutine that changed the state, outside the controller lock.
type listeners[S any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(S)
}

func (l *listeners[S]) add(fn func(S)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func(S))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() {
		l.mu.Lock()
		delete(l.fns, id)
		l.mu.Unlock()
	}
}

func (l *listeners[S]) emit(s S) {
	l.mu.Lock()
	fns := make([]func(S), 0, len(l.fns))
	for i := 0; i < l.next; i++ {
		if fn, ok := l.fns[i]; ok {
			fns = append(fns, fn)
		}
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
