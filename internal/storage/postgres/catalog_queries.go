package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

// rowQuerier lets catalog lookups run either on the pool or inside a
// repository's tx-aware queryRow.
type rowQuerier func(ctx context.Context, sql string, args ...any) pgx.Row

func getMerchItem(ctx context.Context, queryRow rowQuerier, itemID int64) (domain.MerchItem, error) {
	const query = `
SELECT id, drag_id, name, is_archived, created_at
FROM merch_items
WHERE id = $1`

	var m domain.MerchItem
	err := queryRow(ctx, query, itemID).
		Scan(&m.ID, &m.DragID, &m.Name, &m.IsArchived, &m.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.MerchItem{}, domain.ErrItemNotFound
		}
		return domain.MerchItem{}, fmt.Errorf("get merch item: %w", err)
	}
	return m, nil
}

func getDrag(ctx context.Context, queryRow rowQuerier, dragID int64) (domain.Drag, error) {
	const query = `
SELECT id, name, is_archived, created_at
FROM drags
WHERE id = $1`

	var d domain.Drag
	err := queryRow(ctx, query, dragID).
		Scan(&d.ID, &d.Name, &d.IsArchived, &d.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Drag{}, domain.ErrDragNotFound
		}
		return domain.Drag{}, fmt.Errorf("get drag: %w", err)
	}
	return d, nil
}
