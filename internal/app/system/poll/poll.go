// Package poll drives fixed-interval fetch-and-reconcile loops.
//
// The dashboard re-fetches task and notification lists on fixed timers
// (5s for tasks, 30s for the notification bell). Rather than literal
// interval callbacks, each poll is a named Job run by a Runner: every
// tick fetches the current items keyed by id, diffs them against the
// previous snapshot, and hands the diff to a reconciler. Ticks run
// serially on one goroutine, so a slow fetch can never race an earlier
// one and apply out of order; ticks that fire mid-fetch coalesce.
//
// The Clock is injectable so tests drive ticks deterministically.
package poll

import (
	"context"
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Clock abstracts the ticker so tests can fake time.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

// Ticker is the subset of time.Ticker the runner needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// RealClock tick on wall time via time.Ticker.
type RealClock struct{}

func (RealClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (rt *realTicker) C() <-chan time.Time { return rt.t.C }
func (rt *realTicker) Stop()               { rt.t.Stop() }

// Diff describes what changed between two snapshots, keyed by item id.
type Diff[T any] struct {
	Added   map[string]T
	Updated map[string]T
	Removed map[string]T
}

// Empty reports whether the diff carries no changes.
func (d Diff[T]) Empty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0 && len(d.Removed) == 0
}

// Job is one named poll loop.
type Job[T any] struct {
	Name     string
	Interval time.Duration

	// Fetch returns the current items keyed by id.
	Fetch func(ctx context.Context) (map[string]T, error)

	// Reconcile receives the diff for every successful tick, including
	// empty diffs, so consumers observe one reconciliation per tick.
	Reconcile func(diff Diff[T])

	// Equal compares two items with the same id; nil means
	// reflect.DeepEqual.
	Equal func(a, b T) bool

	// FetchTimeout bounds one fetch; zero means Interval.
	FetchTimeout time.Duration
}

// Runner owns the goroutine for one Job.
type Runner[T any] struct {
	job   Job[T]
	clock Clock
	log   *zap.Logger

	prev   map[string]T
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewRunner builds a runner; Start begins polling.
func NewRunner[T any](job Job[T], clock Clock, logger *zap.Logger) *Runner[T] {
	if clock == nil {
		clock = RealClock{}
	}
	return &Runner[T]{
		job:    job,
		clock:  clock,
		log:    logger,
		prev:   map[string]T{},
		stopCh: make(chan struct{}),
	}
}

// Start begins the poll loop.
func (r *Runner[T]) Start() {
	r.wg.Add(1)
	go r.run()
	r.log.Info("poll runner started",
		zap.String("job", r.job.Name),
		zap.Duration("interval", r.job.Interval))
}

// Stop signals the runner to stop and waits for the loop to drain.
func (r *Runner[T]) Stop() {
	close(r.stopCh)
	r.wg.Wait()
	r.log.Info("poll runner stopped", zap.String("job", r.job.Name))
}

func (r *Runner[T]) run() {
	defer r.wg.Done()

	ticker := r.clock.NewTicker(r.job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C():
			r.tick()
		}
	}
}

// tick fetches once and reconciles. Fetch errors keep the previous
// snapshot so the next successful tick diffs against real state.
func (r *Runner[T]) tick() {
	timeout := r.job.FetchTimeout
	if timeout <= 0 {
		timeout = r.job.Interval
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	items, err := r.job.Fetch(ctx)
	if err != nil {
		r.log.Warn("poll fetch failed",
			zap.String("job", r.job.Name),
			zap.Error(err))
		return
	}

	diff := r.diff(items)
	r.prev = items

	if r.job.Reconcile != nil {
		r.job.Reconcile(diff)
	}

	if !diff.Empty() {
		r.log.Debug("poll reconciled",
			zap.String("job", r.job.Name),
			zap.Int("added", len(diff.Added)),
			zap.Int("updated", len(diff.Updated)),
			zap.Int("removed", len(diff.Removed)))
	}
}

func (r *Runner[T]) diff(next map[string]T) Diff[T] {
	equal := r.job.Equal
	if equal == nil {
		equal = func(a, b T) bool { return reflect.DeepEqual(a, b) }
	}

	d := Diff[T]{
		Added:   map[string]T{},
		Updated: map[string]T{},
		Removed: map[string]T{},
	}
	for id, item := range next {
		old, ok := r.prev[id]
		switch {
		case !ok:
			d.Added[id] = item
		case !equal(old, item):
			d.Updated[id] = item
		}
	}
	for id, item := range r.prev {
		if _, ok := next[id]; !ok {
			d.Removed[id] = item
		}
	}
	return d
}
