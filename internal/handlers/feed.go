package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/feeds"

	"github.com/ejfox/photos/internal/analytics"
	"github.com/ejfox/photos/internal/catalog"
	"github.com/ejfox/photos/internal/response"
)

// FeedHandler serves the RSS feed of recent photoblog photos.
type FeedHandler struct {
	catalog   Searcher
	title     string
	siteURL   string
	batchSize int
	logger    *slog.Logger
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(cat Searcher, title, siteURL string, batchSize int, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		catalog:   cat,
		title:     title,
		siteURL:   siteURL,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Get handles GET /rss.xml.
// Items are titled by upload date and carry the full-size image.
func (h *FeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	photos, err := h.catalog.Search(r.Context(), catalog.SearchOptions{
		MaxResults:    h.batchSize,
		OnlyPhotoblog: true,
	})
	if err != nil {
		h.logger.Error("catalog search failed", slog.Any("error", err))
		response.SourceUnavailable(w, "photo catalog unavailable")
		return
	}

	feed := &feeds.Feed{
		Title:   h.title,
		Link:    &feeds.Link{Href: h.siteURL},
		Created: time.Now(),
	}

	for _, p := range analytics.FilterScreenshots(photos) {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       p.CreatedAt.Format("2006-01-02"),
			Link:        &feeds.Link{Href: p.SecureURL},
			Description: fmt.Sprintf(`<img src=%q alt=%q />`, p.SecureURL, p.PublicID),
			Created:     p.CreatedAt,
			Id:          p.SecureURL,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		h.logger.Error("feed rendering failed", slog.Any("error", err))
		response.InternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.Write([]byte(rss))
}
