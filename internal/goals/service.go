package goals

import (
	"context"

	"github.com/fittrackapp/fittrack/internal/client"
)

// Service maps each goal CRUD intent to a single backend round trip.
type Service struct {
	client *client.Client
}

func NewService(c *client.Client) *Service {
	return &Service{
		client: c,
	}
}

func (s *Service) List(ctx context.Context) ([]Goal, error) {
	var goals []Goal
	if err := s.client.Get(ctx, "/goals", &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Goal, error) {
	goal := &Goal{}
	if err := s.client.Get(ctx, "/goals/"+id, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *Service) Create(ctx context.Context, goal Goal) (*Goal, error) {
	created := &Goal{}
	if err := s.client.Post(ctx, "/goals", goal, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, goal Goal) (*Goal, error) {
	updated := &Goal{}
	if err := s.client.Put(ctx, "/goals/"+id, goal, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/goals/"+id, nil)
}
