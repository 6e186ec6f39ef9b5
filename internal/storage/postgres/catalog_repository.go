package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) ListActiveEvents(ctx context.Context) ([]domain.Event, error) {
	const query = `
SELECT id, name, date, capacity, is_archived, tickets_sold, created_at
FROM events
WHERE is_archived = FALSE
ORDER BY date ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Capacity, &e.IsArchived, &e.TicketsSold, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}

func (r *CatalogRepository) ListDrags(ctx context.Context) ([]domain.Drag, error) {
	const query = `
SELECT id, name, is_archived, created_at
FROM drags
WHERE is_archived = FALSE
ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list drags: %w", err)
	}
	defer rows.Close()

	var drags []domain.Drag
	for rows.Next() {
		var d domain.Drag
		if err := rows.Scan(&d.ID, &d.Name, &d.IsArchived, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan drag: %w", err)
		}
		drags = append(drags, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate drags: %w", rows.Err())
	}
	return drags, nil
}

func (r *CatalogRepository) ListMerchItemsByDrag(ctx context.Context, dragID int64) ([]domain.MerchItem, error) {
	const query = `
SELECT id, drag_id, name, is_archived, created_at
FROM merch_items
WHERE drag_id = $1 AND is_archived = FALSE
ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, dragID)
	if err != nil {
		return nil, fmt.Errorf("list merch items: %w", err)
	}
	defer rows.Close()

	var items []domain.MerchItem
	for rows.Next() {
		var m domain.MerchItem
		if err := rows.Scan(&m.ID, &m.DragID, &m.Name, &m.IsArchived, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan merch item: %w", err)
		}
		items = append(items, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate merch items: %w", rows.Err())
	}
	return items, nil
}
