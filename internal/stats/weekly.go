package stats

import (
	"time"

	"github.com/fittrackapp/fittrack/internal/workouts"
)

const dayKeyLayout = "2006-01-02"

// DayBucket aggregates one calendar day of activity for the dashboard chart.
type DayBucket struct {
	Date     time.Time `json:"date"`
	Workouts int       `json:"workouts"`
	Duration int       `json:"duration"`
	Calories int       `json:"calories"`
}

// WeeklyBuckets produces exactly `days` buckets covering the calendar days
// [now-days+1 .. now], oldest first. A workout lands in the bucket whose
// calendar day (in now's location) equals its own - day-string equality, not
// an elapsed-time window. Days without workouts yield all-zero buckets.
func WeeklyBuckets(items []workouts.Workout, days int, now time.Time) []DayBucket {
	loc := now.Location()

	byDay := make(map[string][]workouts.Workout, len(items))
	for _, w := range items {
		key := w.EffectiveDate().In(loc).Format(dayKeyLayout)
		byDay[key] = append(byDay[key], w)
	}

	buckets := make([]DayBucket, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		bucket := DayBucket{
			Date: time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc),
		}
		for _, w := range byDay[day.Format(dayKeyLayout)] {
			bucket.Workouts++
			bucket.Duration += w.Duration
			bucket.Calories += w.CaloriesBurned
		}
		buckets = append(buckets, bucket)
	}

	return buckets
}

// WeekTotals sums activity over the trailing seven 24h periods - unlike the
// chart buckets, this one is an elapsed-time window.
type WeekTotals struct {
	Count         int `json:"count"`
	TotalDuration int `json:"totalDuration"`
	TotalCalories int `json:"totalCalories"`
}

func WeekStats(items []workouts.Workout, now time.Time) WeekTotals {
	sevenDaysAgo := now.Add(-7 * 24 * time.Hour)

	var totals WeekTotals
	for _, w := range items {
		if w.EffectiveDate().Before(sevenDaysAgo) {
			continue
		}
		totals.Count++
		totals.TotalDuration += w.Duration
		totals.TotalCalories += w.CaloriesBurned
	}
	return totals
}

// GroupByDate groups workouts by their calendar day key (YYYY-MM-DD, local).
func GroupByDate(items []workouts.Workout) map[string][]workouts.Workout {
	groups := make(map[string][]workouts.Workout, len(items))
	for _, w := range items {
		key := w.EffectiveDate().Local().Format(dayKeyLayout)
		groups[key] = append(groups[key], w)
	}
	return groups
}
