package goals

import (
	"context"
	"fmt"
	"time"

	"github.com/fittrackapp/fittrack/internal/store"
	"github.com/fittrackapp/fittrack/internal/telemetry/metrics"
	"github.com/fittrackapp/fittrack/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

type goalsAPI interface {
	List(ctx context.Context) ([]Goal, error)
	Create(ctx context.Context, goal Goal) (*Goal, error)
	Update(ctx context.Context, id string, goal Goal) (*Goal, error)
	Delete(ctx context.Context, id string) error
}

var _ goalsAPI = (*Service)(nil)

// Store owns the client-side mirror of the user's goals, reconciled after
// every confirmed CRUD round trip. Failures never touch the cached goals.
type Store struct {
	service goalsAPI
	cache   *store.Collection[Goal]
	metrics *metrics.Manager
	nowFunc func() time.Time
}

func NewStore(service goalsAPI, metricsManager *metrics.Manager) *Store {
	return &Store{
		service: service,
		cache:   store.NewCollection[Goal](),
		metrics: metricsManager,
		nowFunc: time.Now,
	}
}

func (s *Store) Fetch(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.goals.fetch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	s.countAction("fetch")

	seq := s.cache.BeginFetch()
	goals, err := s.service.List(ctx)
	if err != nil {
		s.cache.FetchFailed(seq, err)
		return err
	}

	if !s.cache.ApplyFetch(seq, goals) {
		log.Debugf("goals fetch [seq %d] discarded as stale", seq)
	}
	return nil
}

// Create requires a strictly future deadline; an invalid goal never reaches
// the network. On backend confirmation the goal is prepended to the cache.
func (s *Store) Create(ctx context.Context, goal Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.goals.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	s.countAction("create")

	if err := goal.ValidateNew(s.nowFunc()); err != nil {
		s.cache.SetError(err)
		return nil, err
	}

	s.cache.StartAction()
	created, err := s.service.Create(ctx, goal)
	if err != nil {
		s.cache.SetError(err)
		return nil, err
	}

	s.cache.Prepend(*created)
	return created, nil
}

func (s *Store) Update(ctx context.Context, id string, goal Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.goals.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	s.countAction("update")

	if err := goal.Validate(); err != nil {
		s.cache.SetError(err)
		return nil, err
	}

	s.cache.StartAction()
	updated, err := s.service.Update(ctx, id, goal)
	if err != nil {
		s.cache.SetError(err)
		return nil, err
	}

	s.cache.Update(*updated)
	return updated, nil
}

// Complete marks a cached goal as done, with its current value bumped to the
// target, and pushes that through the regular update path.
func (s *Store) Complete(ctx context.Context, id string) (*Goal, error) {
	goal, ok := s.cache.Get(id)
	if !ok {
		goals, err := s.service.List(ctx)
		if err != nil {
			s.cache.SetError(err)
			return nil, err
		}
		found := false
		for _, g := range goals {
			if g.ID == id {
				goal, found = g, true
				break
			}
		}
		if !found {
			s.cache.SetError(errGoalNotFound(id))
			return nil, errGoalNotFound(id)
		}
	}

	goal.IsCompleted = true
	goal.CurrentValue = goal.TargetValue
	return s.Update(ctx, id, goal)
}

func (s *Store) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.goals.delete")
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

func (s *Store) Goals() []Goal { return s.cache.Items() }

func (s *Store) Len() int { return s.cache.Len() }

func (s *Store) IsLoading() bool { return s.cache.IsLoading() }

func (s *Store) Err() error { return s.cache.Err() }

func errGoalNotFound(id string) error {
	return fmt.Errorf("goal %s not found", id)
}

func (s *Store) countAction(action string) {
	if s.metrics != nil {
		s.metrics.CounterStoreActions.WithLabelValues("goals", action).Inc()
	}
}
