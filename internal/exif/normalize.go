package exif

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// exifTimeLayout is the timestamp format cameras write into
// DateTimeOriginal.
const exifTimeLayout = "2006:01:02 15:04:05"

// Canonical is the normalized camera metadata derived from a Raw tag
// bag. A field is present only when the raw value parsed cleanly;
// absent fields stay nil rather than holding zero values that could be
// mistaken for real data.
type Canonical struct {
	Make      *string
	Model     *string
	LensModel *string

	// Display strings in the shapes downstream consumers expect:
	// "f/2.8", "1/500" or "5s", "50mm".
	Aperture     *string
	ShutterSpeed *string
	FocalLength  *string

	ISO *int

	// TakenAt is the capture timestamp, which may differ from the
	// catalog's upload timestamp.
	TakenAt *time.Time

	// Decimal degrees, signed by hemisphere reference.
	Latitude  *float64
	Longitude *float64

	Caption *string
}

// Camera returns the "{make} {model}" display string.
// Both fields are required; otherwise it reports false.
func (c Canonical) Camera() (string, bool) {
	if c.Make == nil || c.Model == nil {
		return "", false
	}
	return *c.Make + " " + *c.Model, true
}

// Photographic reports whether the record carries camera metadata.
// Records with neither make nor model are untagged non-camera uploads
// and are excluded from metadata-dependent aggregations.
func (c Canonical) Photographic() bool {
	return c.Make != nil || c.Model != nil
}

// Normalize converts a raw tag bag into a canonical record.
// It never fails: absent or malformed fields are simply omitted.
func Normalize(raw Raw) Canonical {
	var c Canonical

	if v, ok := raw.String("Make"); ok {
		c.Make = &v
	}
	if v, ok := raw.String("Model"); ok {
		c.Model = &v
	}
	if v, ok := raw.String("LensModel"); ok {
		c.LensModel = &v
	}

	if v, ok := raw.String("FNumber"); ok {
		if f, ok := parseFraction(v); ok {
			s := fmt.Sprintf("f/%.1f", f)
			c.Aperture = &s
		}
	}

	if v, ok := raw.String("ExposureTime"); ok {
		if seconds, ok := parseFraction(v); ok {
			s := formatShutter(seconds)
			c.ShutterSpeed = &s
		}
	}

	if v, ok := raw.String("FocalLength"); ok {
		if mm, ok := parseFraction(v); ok {
			s := fmt.Sprintf("%dmm", int(math.Round(mm)))
			c.FocalLength = &s
		}
	}

	if v, ok := raw.Int("PhotographicSensitivity"); ok {
		c.ISO = &v
	} else if v, ok := raw.Int("ISOSpeedRatings"); ok {
		c.ISO = &v
	}

	if v, ok := raw.String("DateTimeOriginal"); ok {
		if ts, ok := parseTimestamp(v); ok {
			c.TakenAt = &ts
		}
	}

	if lat, ok := parseCoordinate(raw, "GPSLatitude", "GPSLatitudeRef", "S"); ok {
		c.Latitude = &lat
	}
	if lon, ok := parseCoordinate(raw, "GPSLongitude", "GPSLongitudeRef", "W"); ok {
		c.Longitude = &lon
	}

	if v, ok := raw.String("ImageDescription"); ok {
		c.Caption = &v
	}

	return c
}

// formatShutter renders exposure seconds the way the photo pages
// display them: "5s" above one second, "1/500" at or below.
func formatShutter(seconds float64) string {
	if seconds > 1 {
		return strconv.FormatFloat(seconds, 'f', -1, 64) + "s"
	}
	return fmt.Sprintf("1/%d", int(math.Round(1/seconds)))
}

// parseFraction evaluates an EXIF rational string "N/D".
// It reports false when either side is not a finite number or the
// denominator is zero.
func parseFraction(s string) (float64, bool) {
	num, denom, ok := strings.Cut(s, "/")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(denom), 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

// parseTimestamp accepts the EXIF timestamp layout and RFC 3339,
// which some extractors emit instead.
func parseTimestamp(s string) (time.Time, bool) {
	if ts, err := time.Parse(exifTimeLayout, s); err == nil {
		return ts, true
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

// parseCoordinate converts an EXIF DMS triple like
// "40/1,44/1,3051/100" plus its hemisphere reference into signed
// decimal degrees.
func parseCoordinate(raw Raw, key, refKey, negativeRef string) (float64, bool) {
	v, ok := raw.String(key)
	if !ok {
		return 0, false
	}

	parts := strings.Split(v, ",")
	if len(parts) != 3 {
		return 0, false
	}

	deg, ok1 := parseFraction(parts[0])
	min, ok2 := parseFraction(parts[1])
	sec, ok3 := parseFraction(parts[2])
	if !ok1 || !ok2 || !ok3 {
		return 0, false
	}

	decimal := deg + min/60 + sec/3600
	if ref, ok := raw.String(refKey); ok && strings.EqualFold(ref, negativeRef) {
		decimal = -decimal
	}
	return decimal, true
}
