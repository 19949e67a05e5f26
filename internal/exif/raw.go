// Package exif provides the metadata extractor client and the
// normalizer that converts raw EXIF tag bags into canonical records.
package exif

import (
	"strconv"
	"strings"
)

// Raw is the opaque tag mapping returned by the metadata extractor.
// Values are whatever JSON the extractor stored: strings for most tags,
// numbers for counters like sensitivity.
type Raw map[string]interface{}

// String returns the tag value as a trimmed string.
// Numeric values are formatted; missing or empty tags report false.
func (r Raw) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Int returns the tag value as an integer.
// String digits are accepted; anything else reports false.
func (r Raw) Int(key string) (int, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
