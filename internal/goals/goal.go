package goals

import (
	"fmt"
	"time"

	"github.com/fittrackapp/fittrack/internal/stats"
)

// goal categories, as the backend knows them
const (
	TypePoids    = "Poids"
	TypeHeures   = "Heures d'entraînement"
	TypeCalories = "Calories brûlées"
	TypeDistance = "Distance"
	TypeAutre    = "Autre"
)

const maxDescriptionLength = 500

func Types() []string {
	return []string{TypePoids, TypeHeures, TypeCalories, TypeDistance, TypeAutre}
}

func ValidType(goalType string) bool {
	for _, t := range Types() {
		if t == goalType {
			return true
		}
	}
	return false
}

type Goal struct {
	ID           string    `json:"_id,omitempty"`
	UserID       string    `json:"user,omitempty"`
	Type         string    `json:"type"`
	TargetValue  float64   `json:"targetValue"`
	CurrentValue float64   `json:"currentValue"`
	Deadline     time.Time `json:"deadline"`
	Description  string    `json:"description,omitempty"`
	IsCompleted  bool      `json:"isCompleted"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

func (g Goal) StoreID() string { return g.ID }

// Progress is the completion percentage, computed per read, clamped to [0, 100].
func (g Goal) Progress() int {
	return stats.Progress(g.CurrentValue, g.TargetValue)
}

// IsExpired reports whether the deadline passed without the goal being done.
func (g Goal) IsExpired(now time.Time) bool {
	return g.Deadline.Before(now) && !g.IsCompleted
}

// Validate is the client-side check shared by create and update.
func (g Goal) Validate() error {
	if !ValidType(g.Type) {
		return fmt.Errorf("unknown goal type: %q", g.Type)
	}
	if g.TargetValue <= 0 {
		return fmt.Errorf("target value must be positive, got %v", g.TargetValue)
	}
	if g.CurrentValue < 0 {
		return fmt.Errorf("current value cannot be negative, got %v", g.CurrentValue)
	}
	if len(g.Description) > maxDescriptionLength {
		return fmt.Errorf("description too long: %d chars, max is %d", len(g.Description), maxDescriptionLength)
	}
	return nil
}

// ValidateNew additionally requires a strictly future deadline; only goal
// creation demands that - an already expired goal can still be edited.
func (g Goal) ValidateNew(now time.Time) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if !g.Deadline.After(now) {
		return fmt.Errorf("deadline must be in the future, got %s", g.Deadline.Format("2006-01-02"))
	}
	return nil
}
