// Package storage provides image-mirror database operations.
package storage

import (
	"context"
	"fmt"
	"time"
)

// Image is one mirrored catalog record.
type Image struct {
	ID               int64     `json:"id"`
	ServiceID        string    `json:"service_id"`
	Href             string    `json:"href"`
	Type             string    `json:"type"`
	ServiceCreatedAt time.Time `json:"service_created_at"`
}

// LatestServiceCreatedAt returns the newest mirrored record's creation
// time, or nil when the mirror is empty.
func (s *Store) LatestServiceCreatedAt(ctx context.Context) (*time.Time, error) {
	var latest *time.Time
	err := s.db.QueryRow(ctx,
		`SELECT MAX(service_created_at) FROM images`,
	).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("query latest service_created_at: %w", err)
	}
	return latest, nil
}

// UpsertImages inserts or refreshes mirrored records, keyed by href.
func (s *Store) UpsertImages(ctx context.Context, images []Image) error {
	for _, img := range images {
		_, err := s.db.Exec(ctx, `
			INSERT INTO images (service_id, href, type, service_created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (href) DO UPDATE SET
				service_id = EXCLUDED.service_id,
				type = EXCLUDED.type,
				service_created_at = EXCLUDED.service_created_at
		`, img.ServiceID, img.Href, img.Type, img.ServiceCreatedAt)
		if err != nil {
			return fmt.Errorf("upsert image %s: %w", img.ServiceID, err)
		}
	}
	return nil
}

// ListImages returns mirrored records, newest first.
func (s *Store) ListImages(ctx context.Context, limit int) ([]Image, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, service_id, href, type, service_created_at
		FROM images
		ORDER BY service_created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query images: %w", err)
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.ServiceID, &img.Href, &img.Type, &img.ServiceCreatedAt); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images: %w", err)
	}
	return images, nil
}
