package poller

import (
	"context"
	"errors"
	"time"

	"dareboard/internal/pagination"

	"github.com/rs/zerolog/log"
)

// Target is one list kept fresh by the worker.
type Target struct {
	Name    string
	Refresh func(ctx context.Context) error
}

// ControllerTarget refreshes the current page of c.
func ControllerTarget[T any](name string, c *pagination.Controller[T]) Target {
	return Target{Name: name, Refresh: func(ctx context.Context) error {
		if st := c.Refresh(ctx); st.Err != "" {
			return errors.New(st.Err)
		}
		return nil
	}}
}

// ScrollerTarget resets s and reloads its first page.
func ScrollerTarget[T any](name string, s *pagination.Scroller[T]) Target {
	return Target{Name: name, Refresh: func(ctx context.Context) error {
		if st := s.Refresh(ctx); st.Err != "" {
			return errors.New(st.Err)
		}
		return nil
	}}
}

// Worker periodically refreshes its targets
type Worker struct {
	targets   []Target
	pollEvery time.Duration
}

// NewWorker creates a new refresh worker
func NewWorker(pollEvery time.Duration, targets ...Target) *Worker {
	if pollEvery <= 0 {
		pollEvery = 30 * time.Second
	}
	return &Worker{targets: targets, pollEvery: pollEvery}
}

// Run refreshes every target on each tick until ctx is cancelled
func (w *Worker) Run(ctx context.Context) {
	log.Info().
		Dur("poll_every", w.pollEvery).
		Int("targets", len(w.targets)).
		Msg("refresh worker started")

	ticker := time.NewTicker(w.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("refresh worker stopping")
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick refreshes all targets once, in order. A failing target does not stop
// the others. It returns how many targets failed.
func (w *Worker) Tick(ctx context.Context) int {
	failed := 0
	for _, t := range w.targets {
		if ctx.Err() != nil {
			return failed
		}
		if t.Refresh == nil {
			continue
		}

		start := time.Now()
		err := t.Refresh(ctx)
		duration := time.Since(start)

		if err != nil {
			failed++
			log.Error().
				Err(err).
				Str("target", t.Name).
				Dur("duration", duration).
				Msg("refresh failed")
			continue
		}
		log.Debug().
			Str("target", t.Name).
			Dur("duration", duration).
			Msg("refreshed")
	}
	return failed
}
