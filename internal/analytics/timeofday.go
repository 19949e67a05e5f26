package analytics

// Period names one slice of the day.
type Period string

// Day periods. Night wraps around midnight: 20:00 through 04:59.
const (
	Morning   Period = "morning"   // [05:00, 12:00)
	Afternoon Period = "afternoon" // [12:00, 17:00)
	Evening   Period = "evening"   // [17:00, 20:00)
	Night     Period = "night"
)

// TimeOfDayStats counts photos per day period.
type TimeOfDayStats struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
	Night     int `json:"night"`
}

// PeriodOfDay classifies an hour of the day (0..23).
func PeriodOfDay(hour int) Period {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 20:
		return Evening
	default:
		return Night
	}
}

// TimeOfDayHistogram buckets photos by the hour their capture
// timestamp records. The hour is used as-is; no timezone conversion
// happens beyond what the source timestamp encodes. Photos without a
// capture timestamp are skipped.
func TimeOfDayHistogram(photos []EnrichedPhoto) TimeOfDayStats {
	var stats TimeOfDayStats
	for _, p := range photos {
		if p.Meta == nil || p.Meta.TakenAt == nil {
			continue
		}
		switch PeriodOfDay(p.Meta.TakenAt.Hour()) {
		case Morning:
			stats.Morning++
		case Afternoon:
			stats.Afternoon++
		case Evening:
			stats.Evening++
		case Night:
			stats.Night++
		}
	}
	return stats
}
