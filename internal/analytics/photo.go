// Package analytics computes the archive's statistics: contribution
// calendars, usage streaks, gear frequency rankings, time-of-day
// histograms, and calendar/monthly photo groupings. It is a pure
// transformation over catalog records plus extractor metadata; nothing
// here persists state between invocations.
package analytics

import (
	"time"

	"github.com/ejfox/photos/internal/catalog"
	"github.com/ejfox/photos/internal/exif"
)

// EnrichedPhoto pairs a catalog record with its canonical metadata.
// Meta is nil when the extractor failed or had nothing stored for the
// record; such photos still take part in upload-date groupings but are
// excluded from metadata-dependent aggregations.
type EnrichedPhoto struct {
	Photo catalog.Photo
	Meta  *exif.Canonical
}

// Photographic reports whether the photo carries camera metadata.
func (p EnrichedPhoto) Photographic() bool {
	return p.Meta != nil && p.Meta.Photographic()
}

// CaptureTime returns the best available timestamp for when the photo
// was taken: the EXIF capture time when present, the catalog upload
// time otherwise.
func (p EnrichedPhoto) CaptureTime() time.Time {
	if p.Meta != nil && p.Meta.TakenAt != nil {
		return *p.Meta.TakenAt
	}
	return p.Photo.CreatedAt
}
