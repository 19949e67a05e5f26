package analytics

import (
	"time"
)

// dayLayout is the calendar-day key format used throughout the
// statistics payload.
const dayLayout = "2006-01-02"

// Streak is a contiguous run of calendar days that each have at least
// one photo. StartDate is the newest day of the run and EndDate the
// oldest, matching the order the scan discovers them in.
type Streak struct {
	Count     int    `json:"count"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// TemporalStats is the contribution-calendar portion of the payload.
// Dates is every calendar day from the oldest photo through the end of
// the aggregation window, ascending; Contributions is the parallel
// count array, zeros included. Gap days reset streaks.
type TemporalStats struct {
	Dates         []string `json:"dates"`
	Contributions []int    `json:"contributions"`
	CurrentStreak Streak   `json:"currentStreak"`
	LongestStreak Streak   `json:"longestStreak"`
}

// AggregateTemporal buckets photos by capture day and derives streaks.
// now fixes the end of the aggregation window. Photos without any
// usable timestamp never occur (upload time always exists), so the sum
// of Contributions equals len(photos).
func AggregateTemporal(photos []EnrichedPhoto, now time.Time) TemporalStats {
	if len(photos) == 0 {
		return TemporalStats{Dates: []string{}, Contributions: []int{}}
	}

	byDay := make(map[string]int)
	oldest := photos[0].CaptureTime()
	newest := oldest
	for _, p := range photos {
		ts := p.CaptureTime()
		if ts.Before(oldest) {
			oldest = ts
		}
		if ts.After(newest) {
			newest = ts
		}
		byDay[ts.Format(dayLayout)]++
	}

	// Dense calendar: every day from the oldest photo through now, so
	// gap days appear as explicit zeros. A skewed camera clock can put
	// a capture date after now; the window stretches to cover it so no
	// photo falls outside the calendar.
	end := now
	if end.Before(newest) {
		end = newest
	}
	var dates []string
	day := time.Date(oldest.Year(), oldest.Month(), oldest.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	for !day.After(last) {
		dates = append(dates, day.Format(dayLayout))
		day = day.AddDate(0, 0, 1)
	}

	contributions := make([]int, len(dates))
	for i, d := range dates {
		contributions[i] = byDay[d]
	}

	current, longest := scanStreaks(dates, contributions)

	return TemporalStats{
		Dates:         dates,
		Contributions: contributions,
		CurrentStreak: current,
		LongestStreak: longest,
	}
}

// scanStreaks walks the contribution series newest to oldest. The
// current streak is the run touching the final day of the window; the
// longest streak is the maximum run anywhere, with ties going to the
// more recently found (newer) run because only strictly longer runs
// displace the record.
func scanStreaks(dates []string, contributions []int) (current, longest Streak) {
	var temp Streak
	for i := len(contributions) - 1; i >= 0; i-- {
		if contributions[i] == 0 {
			temp = Streak{}
			continue
		}

		if temp.Count == 0 {
			temp.StartDate = dates[i]
		}
		temp.Count++
		temp.EndDate = dates[i]

		if temp.StartDate == dates[len(dates)-1] {
			current = temp
		}
		if temp.Count > longest.Count {
			longest = temp
		}
	}
	return current, longest
}
