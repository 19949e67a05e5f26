package analytics

import (
	"io"
	"log/slog"
	"time"

	"github.com/ejfox/photos/internal/exif"
)

// Shared builders for the analytics tests.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sp(s string) *string { return &s }

func ip(n int) *int { return &n }

// metaAt returns camera metadata with the given capture time.
func metaAt(ts time.Time) *exif.Canonical {
	return &exif.Canonical{
		Make:    sp("Fujifilm"),
		Model:   sp("X-T4"),
		TakenAt: &ts,
	}
}

// meta builds camera metadata from a make/model pair plus settings.
func meta(mk, model string) *exif.Canonical {
	c := &exif.Canonical{}
	if mk != "" {
		c.Make = sp(mk)
	}
	if model != "" {
		c.Model = sp(model)
	}
	return c
}
