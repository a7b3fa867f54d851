package workouts

import (
	"context"

	"github.com/fittrackapp/fittrack/internal/store"
	"github.com/fittrackapp/fittrack/internal/telemetry/metrics"
	"github.com/fittrackapp/fittrack/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

type workoutsAPI interface {
	List(ctx context.Context) ([]Workout, error)
	Create(ctx context.Context, workout Workout) (*Workout, error)
	Update(ctx context.Context, id string, workout Workout) (*Workout, error)
	Delete(ctx context.Context, id string) error
}

var _ workoutsAPI = (*Service)(nil)

// Store owns the client-side mirror of the user's workouts. It is the single
// writer of its cache: every CRUD action goes through the service first and
// only a confirmed response is reconciled into the cache.
type Store struct {
	service workoutsAPI
	cache   *store.Collection[Workout]
	metrics *metrics.Manager
}

func NewStore(service workoutsAPI, metricsManager *metrics.Manager) *Store {
	return &Store{
		service: service,
		cache:   store.NewCollection[Workout](),
		metrics: metricsManager,
	}
}

// Fetch replaces the whole cache with the backend collection, in backend
// order. On failure the cache keeps its last-known-good items.
func (s *Store) Fetch(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.workouts.fetch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	s.countAction("fetch")

	seq := s.cache.BeginFetch()
	workouts, err := s.service.List(ctx)
	if err != nil {
		s.cache.FetchFailed(seq, err)
		return err
	}

	if !s.cache.ApplyFetch(seq, workouts) {
		log.Debugf("workouts fetch [seq %d] discarded as stale", seq)
	}
	return nil
}

// Create validates client-side first - an invalid workout never reaches the
// network. On backend confirmation the new workout is prepended to the cache.
func (s *Store) Create(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	s.countAction("create")

	if err := workout.Validate(); err != nil {
		s.cache.SetError(err)
		return nil, err
	}

	s.cache.StartAction()
	created, err := s.service.Create(ctx, workout)
	if err != nil {
		s.cache.SetError(err)
		return nil, err
	}

	s.cache.Prepend(*created)
	return created, nil
}

// Update replaces the matching cached workout in place after the backend
// confirms. An id the cache does not know is a silent cache no-op.
func (s *Store) Update(ctx context.Context, id string, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	s.countAction("update")

	if err := workout.Validate(); err != nil {
		s.cache.SetError(err)
		return nil, err
	}

	s.cache.StartAction()
	updated, err := s.service.Update(ctx, id, workout)
	if err != nil {
		s.cache.SetError(err)
		return nil, err
	}

	s.cache.Update(*updated)
	return updated, nil
}

// Delete filters the workout out of the cache after the backend confirms.
func (s *Store) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	s.countAction("delete")

	s.cache.StartAction()
	if err := s.service.Delete(ctx, id); err != nil {
		s.cache.SetError(err)
		return err
	}

	s.cache.Remove(id)
	return nil
}

func (s *Store) Workouts() []Workout { return s.cache.Items() }

func (s *Store) Len() int { return s.cache.Len() }

func (s *Store) IsLoading() bool { return s.cache.IsLoading() }

func (s *Store) Err() error { return s.cache.Err() }

func (s *Store) countAction(action string) {
	if s.metrics != nil {
		s.metrics.CounterStoreActions.WithLabelValues("workouts", action).Inc()
	}
}
