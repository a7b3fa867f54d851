package stats

import (
	"fmt"
	"time"
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDate renders a date the way the app shows it: "5 mars 2025".
func FormatDate(date time.Time) string {
	return fmt.Sprintf("%d %s %d", date.Day(), frenchMonths[date.Month()-1], date.Year())
}

// FormatDateShort renders "05/03/2025".
func FormatDateShort(date time.Time) string {
	return date.Format("02/01/2006")
}
