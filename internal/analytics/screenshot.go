package analytics

import (
	"strings"

	"github.com/ejfox/photos/internal/catalog"
)

// screenshotMarkers are identifier substrings that mark an asset as a
// screen capture rather than a photograph.
var screenshotMarkers = []string{"screenshot", "screen shot", "screencap", "screenshots/"}

// IsScreenshot reports whether a catalog record is a screen capture.
// It checks the tag set first, then falls back to identifier
// heuristics. The catalog search already excludes tagged screenshots;
// this predicate exists for records that slipped through untagged and
// for callers that want the inverse filter.
func IsScreenshot(p catalog.Photo) bool {
	for _, tag := range p.Tags {
		if tag == "screenshot" {
			return true
		}
	}

	id := strings.ToLower(p.PublicID)
	for _, marker := range screenshotMarkers {
		if strings.Contains(id, marker) {
			return true
		}
	}
	return false
}

// FilterScreenshots returns the records that are not screen captures,
// preserving order.
func FilterScreenshots(photos []catalog.Photo) []catalog.Photo {
	kept := make([]catalog.Photo, 0, len(photos))
	for _, p := range photos {
		if !IsScreenshot(p) {
			kept = append(kept, p)
		}
	}
	return kept
}
