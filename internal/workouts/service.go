package workouts

import (
	"context"

	"github.com/fittrackapp/fittrack/internal/client"
)

// Service maps each workout CRUD intent to a single backend round trip.
// No retries, no caching - failures bubble up to the calling store.
type Service struct {
	client *client.Client
}

func NewService(c *client.Client) *Service {
	return &Service{
		client: c,
	}
}

func (s *Service) List(ctx context.Context) ([]Workout, error) {
	var workouts []Workout
	if err := s.client.Get(ctx, "/workouts", &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Workout, error) {
	workout := &Workout{}
	if err := s.client.Get(ctx, "/workouts/"+id, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *Service) Create(ctx context.Context, workout Workout) (*Workout, error) {
	created := &Workout{}
	if err := s.client.Post(ctx, "/workouts", workout, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, workout Workout) (*Workout, error) {
	updated := &Workout{}
	if err := s.client.Put(ctx, "/workouts/"+id, workout, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/workouts/"+id, nil)
}
