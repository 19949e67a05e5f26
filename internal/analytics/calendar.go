package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/ejfox/photos/internal/catalog"
)

// Thumbnail crop transforms inserted into delivery URLs.
const (
	calendarThumb = "w_150,h_150,c_fill"
	monthlyThumb  = "w_400,h_400,c_fill"
)

// CalendarPhoto is one display-ready entry in a calendar day group.
type CalendarPhoto struct {
	ID        string `json:"id"`
	Thumbnail string `json:"thumbnail"`
	Date      string `json:"date"`
	PublicID  string `json:"public_id"`
}

// CalendarDay groups the photos uploaded on one calendar day.
type CalendarDay struct {
	Date   string          `json:"date"`
	Photos []CalendarPhoto `json:"photos"`
}

// MonthlyPhoto is one display-ready entry in a monthly archive.
type MonthlyPhoto struct {
	ID        string `json:"id"`
	Thumbnail string `json:"thumbnail"`
	Date      string `json:"date"`
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}

// MonthlyArchive is the photo set for one (month, year) pair.
type MonthlyArchive struct {
	Photos      []MonthlyPhoto `json:"photos"`
	Month       int            `json:"month"`
	Year        int            `json:"year"`
	TotalPhotos int            `json:"totalPhotos"`
}

// ByDay groups photos by the calendar day they were uploaded, each
// group and each group's photo list sorted descending by date string.
func ByDay(photos []catalog.Photo) []CalendarDay {
	byDate := make(map[string][]CalendarPhoto)
	for _, p := range photos {
		date := p.CreatedAt.Format(dayLayout)
		byDate[date] = append(byDate[date], CalendarPhoto{
			ID:        p.AssetID,
			Thumbnail: thumbnailURL(p.SecureURL, calendarThumb),
			Date:      date,
			PublicID:  p.PublicID,
		})
	}

	days := make([]CalendarDay, 0, len(byDate))
	for date, group := range byDate {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date > group[j].Date
		})
		days = append(days, CalendarDay{Date: date, Photos: group})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})
	return days
}

// ByMonth filters photos to the given month and year of their upload
// timestamp and maps them to display entries, sorted descending by
// date.
func ByMonth(photos []catalog.Photo, month time.Month, year int) MonthlyArchive {
	entries := make([]MonthlyPhoto, 0)
	for _, p := range photos {
		if p.CreatedAt.Month() != month || p.CreatedAt.Year() != year {
			continue
		}
		entries = append(entries, MonthlyPhoto{
			ID:        p.AssetID,
			Thumbnail: thumbnailURL(p.SecureURL, monthlyThumb),
			Date:      p.CreatedAt.Format(dayLayout),
			PublicID:  p.PublicID,
			SecureURL: p.SecureURL,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})

	return MonthlyArchive{
		Photos:      entries,
		Month:       int(month),
		Year:        year,
		TotalPhotos: len(entries),
	}
}

// thumbnailURL inserts a crop transform segment into a delivery URL.
func thumbnailURL(secureURL, transform string) string {
	return strings.Replace(secureURL, "/upload/", "/upload/"+transform+"/", 1)
}
