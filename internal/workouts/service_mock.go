package workouts

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var _ workoutsAPI = (*serviceMock)(nil)

// serviceMock is a call-counting in-memory stand-in for the workouts backend,
// used by store tests.
type serviceMock struct {
	mutex    sync.Mutex
	workouts []Workout
	nextID   int

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	failNext error
}

func newServiceMock() *serviceMock {
	return &serviceMock{}
}

// FailNextWith makes the next service call return err instead of succeeding.
func (m *serviceMock) FailNextWith(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.failNext = err
}

func (m *serviceMock) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *serviceMock) TotalCalls() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.listCalls + m.createCalls + m.updateCalls + m.deleteCalls
}

func (m *serviceMock) List(_ context.Context) ([]Workout, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.listCalls++
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	workouts := make([]Workout, len(m.workouts))
	copy(workouts, m.workouts)
	return workouts, nil
}

func (m *serviceMock) Create(_ context.Context, workout Workout) (*Workout, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.createCalls++
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	m.nextID++
	workout.ID = fmt.Sprintf("w-%d", m.nextID)
	m.workouts = append(m.workouts, workout)
	return &workout, nil
}

func (m *serviceMock) Update(_ context.Context, id string, workout Workout) (*Workout, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.updateCalls++
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	workout.ID = id
	for i := range m.workouts {
		if m.workouts[i].ID == id {
			m.workouts[i] = workout
			return &workout, nil
		}
	}
	// backend happily returns the updated entity even if this client
	// never cached it
	return &workout, nil
}

func (m *serviceMock) Delete(_ context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.deleteCalls++
	if err := m.takeFailure(); err != nil {
		return err
	}
	for i := range m.workouts {
		if m.workouts[i].ID == id {
			m.workouts = append(m.workouts[:i], m.workouts[i+1:]...)
			return nil
		}
	}
	return nil
}

var errServiceMockRejected = errors.New("service rejected the request")
