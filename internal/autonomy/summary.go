package autonomy

import (
	"fmt"
	"math"
)

// Summary is the human-facing reading of a Result.
type Summary struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	// Days is how many days the daily schedule can be kept up.
	Days int `json:"days"`
}

// Summarize splits the total runtime into hours and minutes and counts the scheduled days it covers.
func Summarize(res Result, sc Scenario) Summary {
	total := res.TotalRuntimeHours
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return Summary{}
	}
	hours := math.Floor(total)
	minutes := math.Round((total - hours) * 60)
	if minutes >= 60 {
		hours++
		minutes = 0
	}
	var days float64
	if sc.HoursPerDay > 0 {
		days = math.Ceil(total / sc.HoursPerDay)
	}
	return Summary{Hours: int(hours), Minutes: int(minutes), Days: int(days)}
}

func (s Summary) String() string {
	return fmt.Sprintf("%d год %02d хв (%d дн.)", s.Hours, s.Minutes, s.Days)
}
