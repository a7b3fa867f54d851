package users

import "time"

// StatsSnapshot is the read-only aggregate the backend computes over all of
// the user's data. It is never mutated client-side, only re-fetched.
type StatsSnapshot struct {
	Workouts WorkoutAggregate `json:"workouts"`
	Goals    GoalAggregate    `json:"goals"`
}

type WorkoutAggregate struct {
	Total  int           `json:"total"`
	Stats  WorkoutTotals `json:"stats"`
	ByType []TypeCount   `json:"byType"`
}

type WorkoutTotals struct {
	TotalCalories float64 `json:"totalCalories"`
	TotalDuration int     `json:"totalDuration"`
}

type TypeCount struct {
	Type          string  `json:"_id"`
	Count         int     `json:"count"`
	TotalCalories float64 `json:"totalCalories"`
}

type GoalAggregate struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completionRate"`
}

// Feed is the stub social feed: recent workouts and achievements of the
// people the user follows.
type Feed struct {
	Workouts     []FeedWorkout `json:"workouts"`
	Achievements []Achievement `json:"achievements"`
}

type FeedUser struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type FeedWorkout struct {
	ID             string    `json:"_id"`
	User           FeedUser  `json:"user"`
	Type           string    `json:"type"`
	Duration       int       `json:"duration"`
	CaloriesBurned int       `json:"caloriesBurned"`
	Date           time.Time `json:"date"`
}

type Achievement struct {
	ID          string    `json:"_id"`
	User        FeedUser  `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}
