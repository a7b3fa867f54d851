package users

import (
	"time"

	"github.com/fittrackapp/fittrack/internal/stats"
)

type User struct {
	ID        string    `json:"_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age,omitempty"`
	Weight    float64   `json:"weight,omitempty"` // kilos
	Height    float64   `json:"height,omitempty"` // centimeters
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// BMI returns the user's body mass index and category; ok is false when the
// physiometrics are not filled in.
func (u User) BMI() (value float64, category string, ok bool) {
	if u.Weight <= 0 || u.Height <= 0 {
		return 0, "", false
	}
	value = stats.BMI(u.Weight, u.Height)
	return value, stats.BMICategory(value), true
}

// ProfileUpdate is a partial profile change; nil fields stay untouched.
type ProfileUpdate struct {
	Name   *string  `json:"name,omitempty"`
	Age    *int     `json:"age,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Merge applies the partial update onto the user, field by field.
func (u *User) Merge(update ProfileUpdate) {
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Age != nil {
		u.Age = *update.Age
	}
	if update.Weight != nil {
		u.Weight = *update.Weight
	}
	if update.Height != nil {
		u.Height = *update.Height
	}
}
