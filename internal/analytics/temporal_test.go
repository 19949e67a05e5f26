package analytics

import (
	"testing"
	"time"

	"github.com/ejfox/photos/internal/catalog"
)

func photoOn(day string) EnrichedPhoto {
	ts, err := time.Parse(dayLayout, day)
	if err != nil {
		panic(err)
	}
	return EnrichedPhoto{Photo: catalog.Photo{CreatedAt: ts.Add(12 * time.Hour)}}
}

func TestAggregateTemporalEmpty(t *testing.T) {
	stats := AggregateTemporal(nil, time.Now())

	if stats.Dates == nil || len(stats.Dates) != 0 {
		t.Errorf("Dates = %v, want empty slice", stats.Dates)
	}
	if stats.Contributions == nil || len(stats.Contributions) != 0 {
		t.Errorf("Contributions = %v, want empty slice", stats.Contributions)
	}
	if stats.CurrentStreak.Count != 0 || stats.LongestStreak.Count != 0 {
		t.Error("empty input should yield zero streaks")
	}
}

func TestAggregateTemporalDenseCalendar(t *testing.T) {
	now, _ := time.Parse(dayLayout, "2024-03-10")
	photos := []EnrichedPhoto{
		photoOn("2024-03-01"),
		photoOn("2024-03-01"),
		photoOn("2024-03-05"),
	}

	stats := AggregateTemporal(photos, now)

	// Every day from the oldest photo through now, zeros included.
	if len(stats.Dates) != 10 {
		t.Fatalf("len(Dates) = %d, want 10", len(stats.Dates))
	}
	if stats.Dates[0] != "2024-03-01" || stats.Dates[9] != "2024-03-10" {
		t.Errorf("Dates span = [%s, %s]", stats.Dates[0], stats.Dates[9])
	}

	sum := 0
	for _, c := range stats.Contributions {
		sum += c
	}
	if sum != len(photos) {
		t.Errorf("sum(Contributions) = %d, want %d", sum, len(photos))
	}
	if stats.Contributions[0] != 2 {
		t.Errorf("Contributions[0] = %d, want 2", stats.Contributions[0])
	}
	if stats.Contributions[4] != 1 {
		t.Errorf("Contributions[4] = %d, want 1", stats.Contributions[4])
	}
	if stats.Contributions[1] != 0 {
		t.Errorf("gap day should contribute 0, got %d", stats.Contributions[1])
	}
}

func TestAggregateTemporalFutureCaptureDate(t *testing.T) {
	// A skewed camera clock can stamp a capture date after the
	// aggregation window; the calendar must still cover it.
	now, _ := time.Parse(dayLayout, "2024-03-10")
	photos := []EnrichedPhoto{
		photoOn("2024-03-08"),
		photoOn("2024-03-12"),
	}

	stats := AggregateTemporal(photos, now)

	if stats.Dates[len(stats.Dates)-1] != "2024-03-12" {
		t.Errorf("last date = %s, want 2024-03-12", stats.Dates[len(stats.Dates)-1])
	}
	sum := 0
	for _, c := range stats.Contributions {
		sum += c
	}
	if sum != len(photos) {
		t.Errorf("sum(Contributions) = %d, want %d", sum, len(photos))
	}
}

func TestScanStreaks(t *testing.T) {
	tests := []struct {
		name          string
		contributions []int
		wantCurrent   int
		wantLongest   int
	}{
		{
			name:          "run touching the final day is current",
			contributions: []int{1, 1, 0, 1, 1, 1},
			wantCurrent:   3,
			wantLongest:   3,
		},
		{
			name:          "gap on final day means no current streak",
			contributions: []int{1, 1, 1, 0},
			wantCurrent:   0,
			wantLongest:   3,
		},
		{
			name:          "longest run is in the past",
			contributions: []int{1, 1, 1, 1, 0, 1},
			wantCurrent:   1,
			wantLongest:   4,
		},
		{
			name:          "single day",
			contributions: []int{3},
			wantCurrent:   1,
			wantLongest:   1,
		},
		{
			name:          "all zeros",
			contributions: []int{0, 0, 0},
			wantCurrent:   0,
			wantLongest:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := make([]string, len(tt.contributions))
			day, _ := time.Parse(dayLayout, "2024-01-01")
			for i := range dates {
				dates[i] = day.AddDate(0, 0, i).Format(dayLayout)
			}

			current, longest := scanStreaks(dates, tt.contributions)
			if current.Count != tt.wantCurrent {
				t.Errorf("current.Count = %d, want %d", current.Count, tt.wantCurrent)
			}
			if longest.Count != tt.wantLongest {
				t.Errorf("longest.Count = %d, want %d", longest.Count, tt.wantLongest)
			}
		})
	}
}

func TestScanStreaksDates(t *testing.T) {
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}
	contributions := []int{0, 1, 1, 1}

	current, longest := scanStreaks(dates, contributions)

	// StartDate is the newest day of the run, EndDate the oldest.
	if current.StartDate != "2024-01-04" || current.EndDate != "2024-01-02" {
		t.Errorf("current = [%s, %s]", current.StartDate, current.EndDate)
	}
	if longest != current {
		t.Errorf("longest = %+v, want same as current", longest)
	}
}

func TestScanStreaksTieGoesToNewerRun(t *testing.T) {
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}
	contributions := []int{1, 1, 0, 1, 1}

	_, longest := scanStreaks(dates, contributions)

	if longest.StartDate != "2024-01-05" {
		t.Errorf("longest.StartDate = %s, want the newer of two equal runs", longest.StartDate)
	}
}

func TestAggregateTemporalUsesCaptureTime(t *testing.T) {
	uploaded, _ := time.Parse(dayLayout, "2024-06-01")
	taken, _ := time.Parse(dayLayout, "2024-05-20")

	photos := []EnrichedPhoto{{
		Photo: catalog.Photo{CreatedAt: uploaded},
		Meta:  metaAt(taken),
	}}

	stats := AggregateTemporal(photos, uploaded)
	if stats.Dates[0] != "2024-05-20" {
		t.Errorf("oldest date = %s, want the capture date", stats.Dates[0])
	}
}
