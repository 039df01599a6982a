package postgres

import (
	"context"
	"fmt"
	"moapyr/internal/core/domain"
	"moapyr/internal/core/port"

	"github.com/google/uuid"
)

type sqlDownloadEventRepository struct {
	db SQLQuerier
}

// NewSQLDownloadEventRepository creates sqlDownloadEventRepository that implements port.DownloadEventRepository
func NewSQLDownloadEventRepository(db SQLQuerier) port.DownloadEventRepository {
	return &sqlDownloadEventRepository{
		db: db,
	}
}

// Append records an analytics event
func (s *sqlDownloadEventRepository) Append(ctx context.Context, resourceID uuid.UUID, eventType string) error {
	query := `INSERT INTO download_events (resource_id, event_type) VALUES ($1, $2)`

	if _, err := s.db.ExecContext(ctx, query, resourceID, eventType); err != nil {
		return fmt.Errorf("error inserting download event: %w", err)
	}
	return nil
}

// ListByResource returns the events of a resource in insertion order
func (s *sqlDownloadEventRepository) ListByResource(ctx context.Context, resourceID uuid.UUID) ([]domain.DownloadEvent, error) {
	query := `SELECT id, resource_id, event_type, created_at
              FROM download_events
              WHERE resource_id = $1
              ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("error querying download events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.DownloadEvent, 0)
	for rows.Next() {
		var e domain.DownloadEvent
		if err := rows.Scan(&e.ID, &e.ResourceID, &e.EventType, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning download event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
