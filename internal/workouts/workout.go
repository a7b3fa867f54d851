package workouts

import (
	"fmt"
	"time"
)

// workout categories, as the backend knows them
const (
	TypeCardio      = "Cardio"
	TypeMusculation = "Musculation"
	TypeYoga        = "Yoga"
	TypeCourse      = "Course"
	TypeNatation    = "Natation"
	TypeCyclisme    = "Cyclisme"
	TypeAutre       = "Autre"
)

const maxNotesLength = 500

func Types() []string {
	return []string{
		TypeCardio, TypeMusculation, TypeYoga,
		TypeCourse, TypeNatation, TypeCyclisme, TypeAutre,
	}
}

func ValidType(workoutType string) bool {
	for _, t := range Types() {
		if t == workoutType {
			return true
		}
	}
	return false
}

type Workout struct {
	ID             string    `json:"_id,omitempty"`
	UserID         string    `json:"user,omitempty"`
	Type           string    `json:"type"`
	Duration       int       `json:"duration"` // minutes
	CaloriesBurned int       `json:"caloriesBurned"`
	Date           time.Time `json:"date"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

func (w Workout) StoreID() string { return w.ID }

// EffectiveDate is the date the workout counts towards; entries created
// before the date field existed fall back to their creation timestamp.
func (w Workout) EffectiveDate() time.Time {
	if w.Date.IsZero() {
		return w.CreatedAt
	}
	return w.Date
}

// Validate is the client-side check run before any network call.
func (w Workout) Validate() error {
	if !ValidType(w.Type) {
		return fmt.Errorf("unknown workout type: %q", w.Type)
	}
	if w.Duration <= 0 {
		return fmt.Errorf("duration must be a positive number of minutes, got %d", w.Duration)
	}
	if w.CaloriesBurned < 0 {
		return fmt.Errorf("calories burned cannot be negative, got %d", w.CaloriesBurned)
	}
	if len(w.Notes) > maxNotesLength {
		return fmt.Errorf("notes too long: %d chars, max is %d", len(w.Notes), maxNotesLength)
	}
	return nil
}
