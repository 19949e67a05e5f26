package analytics

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/ejfox/photos/internal/catalog"
	"github.com/ejfox/photos/internal/metrics"
)

// monthLayout keys month buckets; monthDisplayLayout renders them.
const (
	monthLayout        = "2006-01"
	monthDisplayLayout = "January 2006"
)

// MonthCount names the busiest month and its photo count.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Summary is the headline numbers block of the statistics payload.
// Year and month windows are reported twice, keyed off the upload
// timestamp and the capture timestamp, because the two can differ and
// consumers want both.
type Summary struct {
	TotalPhotos             int        `json:"totalPhotos"`
	PhotosThisYearUploaded  int        `json:"photosThisYearUploaded"`
	PhotosThisYearCaptured  int        `json:"photosThisYearCaptured"`
	PhotosThisMonthUploaded int        `json:"photosThisMonthUploaded"`
	PhotosThisMonthCaptured int        `json:"photosThisMonthCaptured"`
	AveragePerMonth         int        `json:"averagePerMonth"`
	MostActiveMonth         MonthCount `json:"mostActiveMonth"`
}

// StatsPayload is the complete analytics response.
type StatsPayload struct {
	Stats          Summary        `json:"stats"`
	Contributions  []int          `json:"contributions"`
	Dates          []string       `json:"dates"`
	CurrentStreak  Streak         `json:"currentStreak"`
	LongestStreak  Streak         `json:"longestStreak"`
	GearStats      GearStats      `json:"gearStats"`
	TimeOfDayStats TimeOfDayStats `json:"timeOfDayStats"`
}

// Engine runs one full aggregation pass: enrich, filter, aggregate.
// It holds no state between invocations.
type Engine struct {
	enricher *Enricher
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewEngine creates an analytics engine on top of a metadata source.
func NewEngine(source MetadataSource, concurrency int, m *metrics.Metrics, logger *slog.Logger) *Engine {
	return &Engine{
		enricher: NewEnricher(source, concurrency, logger),
		metrics:  m,
		logger:   logger.With(slog.String("component", "analytics")),
	}
}

// Enrich exposes the engine's enrichment pass for callers that need
// enriched records without the full payload.
func (e *Engine) Enrich(ctx context.Context, records []catalog.Photo) []EnrichedPhoto {
	return e.enricher.Enrich(ctx, records)
}

// Compute produces the statistics payload for a batch of catalog
// records. Records without camera metadata are excluded from every
// aggregate. An empty batch yields a well-defined zero payload.
func (e *Engine) Compute(ctx context.Context, records []catalog.Photo) (*StatsPayload, error) {
	return e.compute(ctx, records, time.Now())
}

// compute takes the clock as an argument so tests can pin the
// aggregation window.
func (e *Engine) compute(ctx context.Context, records []catalog.Photo, now time.Time) (*StatsPayload, error) {
	start := time.Now()
	e.metrics.SetAnalyticsBatchSize(len(records))

	enriched := e.enricher.Enrich(ctx, records)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	photos := make([]EnrichedPhoto, 0, len(enriched))
	for _, p := range enriched {
		if p.Photographic() {
			photos = append(photos, p)
		}
	}

	temporal := AggregateTemporal(photos, now)
	payload := &StatsPayload{
		Stats:          summarize(photos, now),
		Contributions:  temporal.Contributions,
		Dates:          temporal.Dates,
		CurrentStreak:  temporal.CurrentStreak,
		LongestStreak:  temporal.LongestStreak,
		GearStats:      RankGear(photos),
		TimeOfDayStats: TimeOfDayHistogram(photos),
	}

	e.metrics.ObserveAnalyticsDuration(time.Since(start).Seconds())
	e.logger.Info("analytics computed",
		slog.Int("records", len(records)),
		slog.Int("photographic", len(photos)),
		slog.Duration("duration", time.Since(start)),
	)
	return payload, nil
}

// summarize derives the headline numbers from the photographic set.
func summarize(photos []EnrichedPhoto, now time.Time) Summary {
	s := Summary{TotalPhotos: len(photos)}
	if len(photos) == 0 {
		return s
	}

	thisYear := now.Year()
	thisMonth := now.Format(monthLayout)
	months := newTally()

	for _, p := range photos {
		uploaded := p.Photo.CreatedAt
		captured := p.CaptureTime()

		if uploaded.Year() == thisYear {
			s.PhotosThisYearUploaded++
		}
		if captured.Year() == thisYear {
			s.PhotosThisYearCaptured++
		}
		if uploaded.Format(monthLayout) == thisMonth {
			s.PhotosThisMonthUploaded++
		}
		if captured.Format(monthLayout) == thisMonth {
			s.PhotosThisMonthCaptured++
		}

		months.add(uploaded.Format(monthLayout))
	}

	s.AveragePerMonth = int(math.Round(float64(len(photos)) / float64(len(months.order))))

	var best string
	for key, count := range months.counts {
		if count > months.counts[best] || (count == months.counts[best] && (best == "" || key > best)) {
			best = key
		}
	}
	if ts, err := time.Parse(monthLayout, best); err == nil {
		s.MostActiveMonth = MonthCount{
			Month: ts.Format(monthDisplayLayout),
			Count: months.counts[best],
		}
	}

	return s
}
