package analytics

import (
	"testing"
	"time"
)

func TestPeriodOfDay(t *testing.T) {
	tests := []struct {
		hour int
		want Period
	}{
		{0, Night},
		{2, Night},
		{4, Night},
		{5, Morning},
		{11, Morning},
		{12, Afternoon},
		{16, Afternoon},
		{17, Evening},
		{19, Evening},
		{20, Night},
		{23, Night},
	}

	for _, tt := range tests {
		if got := PeriodOfDay(tt.hour); got != tt.want {
			t.Errorf("PeriodOfDay(%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestTimeOfDayHistogram(t *testing.T) {
	at := func(hour int) EnrichedPhoto {
		ts := time.Date(2024, 3, 1, hour, 30, 0, 0, time.UTC)
		return EnrichedPhoto{Meta: metaAt(ts)}
	}

	photos := []EnrichedPhoto{
		at(6), at(13), at(18), at(23), at(2),
		// No metadata at all, and metadata without a capture time.
		{Meta: nil},
		{Meta: meta("F", "X-T4")},
	}

	stats := TimeOfDayHistogram(photos)

	if stats.Morning != 1 {
		t.Errorf("Morning = %d, want 1", stats.Morning)
	}
	if stats.Afternoon != 1 {
		t.Errorf("Afternoon = %d, want 1", stats.Afternoon)
	}
	if stats.Evening != 1 {
		t.Errorf("Evening = %d, want 1", stats.Evening)
	}
	if stats.Night != 2 {
		t.Errorf("Night = %d, want 2", stats.Night)
	}
}
