package workouts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testWorkout(workoutType string) Workout {
	return Workout{
		Type:           workoutType,
		Duration:       45,
		CaloriesBurned: 320,
		Date:           time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC),
		Notes:          "evening session",
	}
}

func TestStore_Fetch(t *testing.T) {
	mock := newServiceMock()
	s := NewStore(mock, nil)

	_, err := mock.Create(context.Background(), testWorkout(TypeCardio))
	require.NoError(t, err)
	_, err = mock.Create(context.Background(), testWorkout(TypeYoga))
	require.NoError(t, err)

	require.NoError(t, s.Fetch(context.Background()))
	assert.Equal(t, 2, s.Len())
	assert.NoError(t, s.Err())
	assert.False(t, s.IsLoading())
}

func TestStore_Fetch_FailureKeepsCache(t *testing.T) {
	mock := newServiceMock()
	s := NewStore(mock, nil)

	_, err := s.Create(context.Background(), testWorkout(TypeCardio))
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	mock.FailNextWith(errServiceMockRejected)
	require.Error(t, s.Fetch(context.Background()))

	assert.Equal(t, 1, s.Len())
	assert.ErrorIs(t, s.Err(), errServiceMockRejected)
}

func TestStore_Create_FailureThenRetry(t *testing.T) {
	mock := newServiceMock()
	s := NewStore(mock, nil)

	require.NoError(t, s.Fetch(context.Background()))
	require.Zero(t, s.Len())

	mock.FailNextWith(errServiceMockRejected)
	created, err := s.Create(context.Background(), testWorkout(TypeCourse))
	require.Error(t, err)
	assert.Nil(t, created)
	// cache untouched, error recorded
	assert.Zero(t, s.Len())
	assert.ErrorIs(t, s.Err(), errServiceMockRejected)

	// retry with the service healthy again: cache grows by one, new item first
	created, err = s.Create(context.Background(), testWorkout(TypeCourse))
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, created.ID, s.Workouts()[0].ID)
	assert.NoError(t, s.Err())
}

func TestStore_Create_PrependsNewest(t *testing.T) {
	mock := newServiceMock()
	s := NewStore(mock, nil)

	first, err := s.Create(context.Background(), testWorkout(TypeCardio))
	require.NoError(t, err)
	second, err := s.Create(context.Background(), testWorkout(TypeNatation))
	require.NoError(t, err)

	workouts := s.Workouts()
	require.Len(t, workouts, 2)
	assert.Equal(t, second.ID, workouts[0].ID)
	assert.Equal(t, first.ID, workouts[1].ID)
}

func TestStore_Create_ValidationBlocksNetwork(t *testing.T) {
	mock := newServiceMock()
	s := NewStore(mock, nil)

	testCases := []struct {
		name    string
		workout Workout
	}{
		{"unknown type", Workout{Type: "Parkour", Duration: 30}},
		{"zero duration", Workout{Type: TypeCardio, Duration: 0}},
		{"negative calories", Workout{Type: TypeCardio, Duration: 30, CaloriesBurned: -5}},
		{"notes too long", func() Workout {
			w := testWorkout(TypeCardio)
			for len(w.Notes) <= 500 {
				w.Notes += " more notes"
			}
			return w
		}()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), tc.workout)
			require.Error(t, err)
			assert.Error(t, s.Err())
		})
	}

	// not a single call reached the service
	assert.Zero(t, mock.TotalCalls())
	assert.Zero(t, s.Len())
}

func TestStore_Update_InPlace(t *testing.T) {
	mock := newServiceMock()
	s := NewStore(mock, nil)

	first, err := s.Create(context.Background(), testWorkout(TypeCardio))
	require.NoError(t, err)
	_, err = s.Create(context.Background(), testWorkout(TypeYoga))
	require.NoError(t, err)

	changed := testWorkout(TypeCardio)
	changed.Duration = 90
	updated, err := s.Update(context.Background(), first.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, 90, updated.Duration)

	workouts := s.Workouts()
	require.Len(t, workouts, 2)
	// position preserved: the updated workout is still second (oldest)
	assert.Equal(t, first.ID, workouts[1].ID)
	assert.Equal(t, 90, workouts[1].Duration)
}

func TestStore_Update_AbsentID_CacheUntouched(t *testing.T) {
	mock := newServiceMock()
	s := NewStore(mock, nil)

	_, err := s.Create(context.Background(), testWorkout(TypeCardio))
	require.NoError(t, err)

	before := s.Workouts()
	updated, err := s.Update(context.Background(), "not-cached", testWorkout(TypeYoga))
	// the service reported success, so no error; the cache just has nothing
	// to reconcile
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, before, s.Workouts())
}

func TestStore_Delete(t *testing.T) {
	mock := newServiceMock()
	s := NewStore(mock, nil)

	first, err := s.Create(context.Background(), testWorkout(TypeCardio))
	require.NoError(t, err)
	second, err := s.Create(context.Background(), testWorkout(TypeYoga))
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), first.ID))
	workouts := s.Workouts()
	require.Len(t, workouts, 1)
	assert.Equal(t, second.ID, workouts[0].ID)

	// deleting an absent id is a silent no-op
	require.NoError(t, s.Delete(context.Background(), "ghost"))
	assert.Equal(t, 1, s.Len())
}

func TestStore_Delete_FailureKeepsCache(t *testing.T) {
	mock := newServiceMock()
	s := NewStore(mock, nil)

	created, err := s.Create(context.Background(), testWorkout(TypeCardio))
	require.NoError(t, err)

	mock.FailNextWith(errServiceMockRejected)
	require.Error(t, s.Delete(context.Background(), created.ID))
	assert.Equal(t, 1, s.Len())
	assert.ErrorIs(t, s.Err(), errServiceMockRejected)
}
