// Package stats holds the derived-metric helpers: pure functions computed on
// read from already-fetched data, never persisted anywhere.
package stats

import (
	"fmt"
	"math"
)

// Progress returns the goal completion percentage, clamped to [0, 100].
// A zero target yields 0 rather than a division blow-up.
func Progress(current, target float64) int {
	if target == 0 {
		return 0
	}
	progress := int(math.Round(current / target * 100))
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// BMI categories (the backend and the app UI speak French here)
const (
	BMIUnderweight = "Sous-poids"
	BMINormal      = "Normal"
	BMIOverweight  = "Surpoids"
	BMIObese       = "Obésité"
)

// BMI computes the body mass index from weight in kilos and height in
// centimeters, rounded to one decimal.
func BMI(weightKg, heightCm float64) float64 {
	heightMeters := heightCm / 100
	bmi := weightKg / (heightMeters * heightMeters)
	return math.Round(bmi*10) / 10
}

// BMICategory buckets a BMI value; the lower bound of each band is inclusive.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// FormatDuration renders minutes as "45min", "1h30min" or "2h".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins > 0 {
		return fmt.Sprintf("%dh%dmin", hours, mins)
	}
	return fmt.Sprintf("%dh", hours)
}

// TruncateText cuts a string to maxLength runes, appending "..." when cut.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + "..."
}
