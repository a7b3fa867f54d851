package workouts_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/fittrackapp/fittrack/internal/client"
	"github.com/fittrackapp/fittrack/internal/workouts"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTokens struct{}

func (testTokens) Token() string { return "test-token" }

func newBackendAndService(t *testing.T) (*workoutBackend, *workouts.Service) {
	t.Helper()
	backend := newWorkoutBackend()
	testServer := httptest.NewServer(backend)
	t.Cleanup(testServer.Close)

	c := client.NewClient(testServer.URL, testServer.Client(), testTokens{}, nil)
	return backend, workouts.NewService(c)
}

func fakeWorkout() workouts.Workout {
	types := workouts.Types()
	return workouts.Workout{
		Type:           types[gofakeit.Number(0, len(types)-1)],
		Duration:       gofakeit.Number(10, 120),
		CaloriesBurned: gofakeit.Number(50, 900),
		Date:           gofakeit.DateRange(time.Now().AddDate(0, -1, 0), time.Now()).UTC(),
		Notes:          gofakeit.Sentence(6),
	}
}

func TestService_CRUD(t *testing.T) {
	_, service := newBackendAndService(t)
	ctx := context.Background()

	listed, err := service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)

	created, err := service.Create(ctx, fakeWorkout())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)

	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Type, got.Type)

	changed := *created
	changed.Duration = 75
	updated, err := service.Update(ctx, created.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, 75, updated.Duration)

	listed, err = service.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, service.Delete(ctx, created.ID))
	listed, err = service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestService_BackendRejection(t *testing.T) {
	backend, service := newBackendAndService(t)
	backend.rejectWith = `{"message":"workout validation failed"}`

	_, err := service.Create(context.Background(), fakeWorkout())
	require.Error(t, err)
	assert.Equal(t, "workout validation failed", client.ErrorMessage(err))
}

// workoutBackend is a minimal in-memory stand-in for the real REST API.
type workoutBackend struct {
	workouts   map[string]workouts.Workout
	order      []string
	nextID     int
	rejectWith string
}

func newWorkoutBackend() *workoutBackend {
	return &workoutBackend{
		workouts: make(map[string]workouts.Workout),
	}
}

func (b *workoutBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if b.rejectWith != "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(b.rejectWith))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/workouts":
		all := make([]workouts.Workout, 0, len(b.order))
		for _, id := range b.order {
			all = append(all, b.workouts[id])
		}
		_ = json.NewEncoder(w).Encode(all)

	case r.Method == http.MethodPost && r.URL.Path == "/workouts":
		var workout workouts.Workout
		_ = json.NewDecoder(r.Body).Decode(&workout)
		b.nextID++
		workout.ID = "w-" + strconv.Itoa(b.nextID)
		workout.CreatedAt = time.Now().UTC()
		b.workouts[workout.ID] = workout
		b.order = append(b.order, workout.ID)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(workout)

	default:
		id := r.URL.Path[len("/workouts/"):]
		stored, ok := b.workouts[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"workout not found"}`))
			return
		}
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(stored)
		case http.MethodPut:
			var workout workouts.Workout
			_ = json.NewDecoder(r.Body).Decode(&workout)
			workout.ID = id
			workout.CreatedAt = stored.CreatedAt
			b.workouts[id] = workout
			_ = json.NewEncoder(w).Encode(workout)
		case http.MethodDelete:
			delete(b.workouts, id)
			for i, oid := range b.order {
				if oid == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
			_, _ = w.Write([]byte(`{"message":"workout removed"}`))
		}
	}
}
