package analytics

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ejfox/photos/internal/catalog"
	"github.com/ejfox/photos/internal/exif"
)

// defaultConcurrency caps how many extractor fetches run at once.
const defaultConcurrency = 20

// MetadataSource fetches the raw EXIF tag bag for one photo identifier.
// The exif.Client implements it; tests substitute fakes.
type MetadataSource interface {
	Fetch(ctx context.Context, publicID string) (exif.Raw, error)
}

// Enricher retrieves and normalizes metadata for batches of photos.
type Enricher struct {
	source      MetadataSource
	concurrency int
	logger      *slog.Logger
}

// NewEnricher creates an Enricher. concurrency <= 0 selects the default
// cap.
func NewEnricher(source MetadataSource, concurrency int, logger *slog.Logger) *Enricher {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Enricher{
		source:      source,
		concurrency: concurrency,
		logger:      logger.With(slog.String("component", "enricher")),
	}
}

// Enrich fetches metadata for every record concurrently, bounded by
// the concurrency cap. The result is length- and order-preserving:
// output index i always corresponds to input index i, because the
// aggregators correlate photos and metadata by position. One record's
// failure never affects the rest of the batch; the failing index just
// carries no metadata.
func (e *Enricher) Enrich(ctx context.Context, records []catalog.Photo) []EnrichedPhoto {
	enriched := make([]EnrichedPhoto, len(records))

	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	for i, rec := range records {
		enriched[i] = EnrichedPhoto{Photo: rec}

		wg.Add(1)
		go func(i int, rec catalog.Photo) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			raw, err := e.source.Fetch(ctx, rec.PublicID)
			if err != nil {
				if !errors.Is(err, exif.ErrNotFound) && !errors.Is(err, context.Canceled) {
					e.logger.Warn("metadata fetch failed",
						slog.String("public_id", rec.PublicID),
						slog.Any("error", err),
					)
				}
				return
			}

			meta := exif.Normalize(raw)
			enriched[i].Meta = &meta
		}(i, rec)
	}

	wg.Wait()
	return enriched
}
