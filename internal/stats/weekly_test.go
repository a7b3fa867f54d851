package stats

import (
	"testing"
	"time"

	"github.com/fittrackapp/fittrack/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyBuckets_SingleActiveDay(t *testing.T) {
	now := time.Date(2025, 3, 15, 20, 0, 0, 0, time.UTC)
	// day 3 of the window: now-4 days
	active := now.AddDate(0, 0, -4)

	items := []workouts.Workout{
		{
			ID:             "w1",
			Type:           workouts.TypeCourse,
			Duration:       40,
			CaloriesBurned: 350,
			Date:           active,
		},
	}

	buckets := WeeklyBuckets(items, 7, now)
	require.Len(t, buckets, 7)

	// oldest to newest
	for i := 1; i < len(buckets); i++ {
		assert.True(t, buckets[i-1].Date.Before(buckets[i].Date))
	}

	zeroDays := 0
	for i, b := range buckets {
		if b.Workouts == 0 {
			zeroDays++
			assert.Zero(t, b.Duration)
			assert.Zero(t, b.Calories)
			continue
		}
		assert.Equal(t, 2, i) // now-4 days is the third bucket
		assert.Equal(t, 1, b.Workouts)
		assert.Equal(t, 40, b.Duration)
		assert.Equal(t, 350, b.Calories)
	}
	assert.Equal(t, 6, zeroDays)
}

func TestWeeklyBuckets_DayStringEquality(t *testing.T) {
	// late evening "now": a workout from this morning belongs to today's
	// bucket even though more than some workouts' elapsed hours ago
	now := time.Date(2025, 3, 15, 23, 30, 0, 0, time.UTC)
	morning := time.Date(2025, 3, 15, 0, 15, 0, 0, time.UTC)
	yesterdayNight := time.Date(2025, 3, 14, 23, 45, 0, 0, time.UTC)

	items := []workouts.Workout{
		{ID: "w1", Type: workouts.TypeYoga, Duration: 30, CaloriesBurned: 100, Date: morning},
		{ID: "w2", Type: workouts.TypeYoga, Duration: 60, CaloriesBurned: 200, Date: yesterdayNight},
	}

	buckets := WeeklyBuckets(items, 7, now)
	require.Len(t, buckets, 7)

	today := buckets[6]
	yesterday := buckets[5]
	assert.Equal(t, 1, today.Workouts)
	assert.Equal(t, 30, today.Duration)
	assert.Equal(t, 1, yesterday.Workouts)
	assert.Equal(t, 60, yesterday.Duration)
}

func TestWeeklyBuckets_MultiplePerDayAndFallbackDate(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	items := []workouts.Workout{
		{ID: "w1", Duration: 20, CaloriesBurned: 100, Date: now},
		{ID: "w2", Duration: 25, CaloriesBurned: 150, Date: now.Add(-2 * time.Hour)},
		// no explicit date: counts via its creation timestamp
		{ID: "w3", Duration: 15, CaloriesBurned: 80, CreatedAt: now.Add(-time.Hour)},
		// outside the window entirely
		{ID: "w4", Duration: 99, CaloriesBurned: 999, Date: now.AddDate(0, 0, -10)},
	}

	buckets := WeeklyBuckets(items, 7, now)
	require.Len(t, buckets, 7)

	today := buckets[6]
	assert.Equal(t, 3, today.Workouts)
	assert.Equal(t, 60, today.Duration)
	assert.Equal(t, 330, today.Calories)

	var total int
	for _, b := range buckets {
		total += b.Workouts
	}
	assert.Equal(t, 3, total)
}

func TestWeeklyBuckets_Deterministic(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	items := []workouts.Workout{
		{ID: "w1", Duration: 20, CaloriesBurned: 100, Date: now.AddDate(0, 0, -1)},
		{ID: "w2", Duration: 25, CaloriesBurned: 150, Date: now.AddDate(0, 0, -3)},
	}

	assert.Equal(t, WeeklyBuckets(items, 7, now), WeeklyBuckets(items, 7, now))
}

func TestWeekStats_ElapsedWindow(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	items := []workouts.Workout{
		{ID: "w1", Duration: 30, CaloriesBurned: 200, Date: now.Add(-2 * 24 * time.Hour)},
		{ID: "w2", Duration: 45, CaloriesBurned: 300, Date: now.Add(-6 * 24 * time.Hour)},
		// 8 days ago: out
		{ID: "w3", Duration: 60, CaloriesBurned: 400, Date: now.Add(-8 * 24 * time.Hour)},
	}

	totals := WeekStats(items, now)
	assert.Equal(t, 2, totals.Count)
	assert.Equal(t, 75, totals.TotalDuration)
	assert.Equal(t, 500, totals.TotalCalories)
}

func TestGroupByDate(t *testing.T) {
	day1 := time.Date(2025, 3, 14, 8, 0, 0, 0, time.Local)
	day2 := time.Date(2025, 3, 15, 19, 0, 0, 0, time.Local)

	items := []workouts.Workout{
		{ID: "w1", Date: day1},
		{ID: "w2", Date: day1.Add(10 * time.Hour)},
		{ID: "w3", Date: day2},
	}

	groups := GroupByDate(items)
	require.Len(t, groups, 2)
	assert.Len(t, groups["2025-03-14"], 2)
	assert.Len(t, groups["2025-03-15"], 1)
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "5 mars 2025", FormatDate(d))
	assert.Equal(t, "05/03/2025", FormatDateShort(d))
}
