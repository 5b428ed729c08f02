package store

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/mediflow/clinic-api/pkg/errors"
	"github.com/mediflow/clinic-api/pkg/logger"
	"github.com/mediflow/clinic-api/pkg/metrics"
)

// Entity is anything a Store can hold: it exposes its integer
// identifier and can produce a copy with a different one. Identifiers
// are assigned by the store and immutable afterwards.
type Entity[T any] interface {
	EntityID() int
	WithID(id int) T
}

// Patch applies a shallow, field-replacing merge onto an existing
// entity and returns the result. Fields absent from the patch are
// retained; nested objects are replaced as a unit, never deep-merged.
type Patch[T any] interface {
	Apply(base T) T
}

// Latency is the artificial delay range applied before every operation
// resolves, emulating a network-bound backend. A zero range disables
// the delay (used by tests).
type Latency struct {
	Min time.Duration
	Max time.Duration
}

func (l Latency) pick() time.Duration {
	if l.Max <= l.Min {
		return l.Min
	}
	return l.Min + time.Duration(rand.Int63n(int64(l.Max-l.Min)))
}

// DefaultLatency mirrors the delay the UI was originally tuned against.
var DefaultLatency = Latency{Min: 180 * time.Millisecond, Max: 320 * time.Millisecond}

type Options struct {
	Latency Latency
	Logger  *logger.Logger
	Metrics *metrics.Metrics
}

// Store holds the authoritative in-process snapshot of one entity kind.
// It owns its backing slice exclusively; List hands out copies.
// Individual operations are serialized by a mutex, but two callers that
// each read then write still race at the call level: the last write
// wins, as documented for the data layer.
type Store[T Entity[T], P Patch[T]] struct {
	mu      sync.Mutex
	items   []T
	kind    string
	latency Latency
	log     *logger.Logger
	metrics *metrics.Metrics
}

// New constructs a store seeded with the given snapshot. The seed slice
// is copied, the caller keeps no live reference into the store.
func New[T Entity[T], P Patch[T]](kind string, seed []T, opts Options) *Store[T, P] {
	items := make([]T, len(seed))
	copy(items, seed)
	s := &Store[T, P]{
		items:   items,
		kind:    kind,
		latency: opts.Latency,
		log:     opts.Logger,
		metrics: opts.Metrics,
	}
	if s.log == nil {
		s.log = logger.NewLogger(nil)
	}
	s.gauge()
	return s
}

// Kind names the entity kind this store holds.
func (s *Store[T, P]) Kind() string { return s.kind }

// List returns a shallow copy of the full collection in insertion
// order, wrapped in a never-degraded snapshot. It never fails on its
// own; only caller cancellation during the simulated delay aborts it.
func (s *Store[T, P]) List(ctx context.Context) (Snapshot[T], error) {
	defer s.observe("list", time.Now())
	if err := s.wait(ctx); err != nil {
		return Snapshot[T]{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return Ok(out), nil
}

// Get returns the entity with the given identifier, or a typed
// not-found error the caller treats as a signal rather than a failure.
func (s *Store[T, P]) Get(ctx context.Context, id int) (T, error) {
	var zero T
	defer s.observe("get", time.Now())
	if err := s.wait(ctx); err != nil {
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.items[i], nil
	}
	return zero, errors.NotFound(s.kind, nil)
}

// Create assigns the next identifier (1 + max existing, 1 when empty),
// appends the entity and returns it with the identifier set.
func (s *Store[T, P]) Create(ctx context.Context, entity T) (T, error) {
	var zero T
	defer s.observe("create", time.Now())
	if err := s.wait(ctx); err != nil {
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	created := entity.WithID(s.nextID())
	s.items = append(s.items, created)
	s.gaugeLocked()
	s.log.Debug("record created", "kind", s.kind, "id", created.EntityID())
	return created, nil
}

// Update applies the patch to the stored entity. The identifier is
// re-imposed after the merge so no patch can move a record. On a
// missing id nothing is mutated and a not-found error is returned.
func (s *Store[T, P]) Update(ctx context.Context, id int, patch P) (T, error) {
	var zero T
	defer s.observe("update", time.Now())
	if err := s.wait(ctx); err != nil {
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return zero, errors.NotFound(s.kind, nil)
	}
	updated := patch.Apply(s.items[i]).WithID(id)
	s.items[i] = updated
	s.log.Debug("record updated", "kind", s.kind, "id", id)
	return updated, nil
}

// Delete removes the entity and returns it so callers can offer
// display or undo. On a missing id the collection is left unchanged.
func (s *Store[T, P]) Delete(ctx context.Context, id int) (T, error) {
	var zero T
	defer s.observe("delete", time.Now())
	if err := s.wait(ctx); err != nil {
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return zero, errors.NotFound(s.kind, nil)
	}
	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.gaugeLocked()
	s.log.Debug("record deleted", "kind", s.kind, "id", id)
	return removed, nil
}

// Len reports the current collection size.
func (s *Store[T, P]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store[T, P]) index(id int) int {
	for i, item := range s.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

func (s *Store[T, P]) nextID() int {
	max := 0
	for _, item := range s.items {
		if id := item.EntityID(); id > max {
			max = id
		}
	}
	return max + 1
}

func (s *Store[T, P]) wait(ctx context.Context) error {
	d := s.latency.pick()
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Store[T, P]) observe(op string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.StoreLatency.WithLabelValues(s.kind, op).Observe(time.Since(start).Seconds())
	s.metrics.StoreOperations.WithLabelValues(s.kind, op, "ok").Inc()
}

func (s *Store[T, P]) gauge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gaugeLocked()
}

func (s *Store[T, P]) gaugeLocked() {
	if s.metrics != nil {
		s.metrics.StoreSize.WithLabelValues(s.kind).Set(float64(len(s.items)))
	}
}
