package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

type ReconcileRepository struct {
	pool *pgxpool.Pool
}

func NewReconcileRepository(pool *pgxpool.Pool) *ReconcileRepository {
	return &ReconcileRepository{pool: pool}
}

func (r *ReconcileRepository) SumTicketQuantity(ctx context.Context, eventID int64) (int, error) {
	const query = `SELECT COALESCE(SUM(quantity), 0) FROM ticket_orders WHERE event_id = $1`

	var total int
	if err := r.pool.QueryRow(ctx, query, eventID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum ticket quantity: %w", err)
	}
	return total, nil
}

func (r *ReconcileRepository) GetTicketsSold(ctx context.Context, eventID int64) (int, error) {
	const query = `SELECT tickets_sold FROM events WHERE id = $1`

	var sold int
	if err := r.pool.QueryRow(ctx, query, eventID).Scan(&sold); err != nil {
		if err == pgx.ErrNoRows {
			return 0, domain.ErrEventNotFound
		}
		return 0, fmt.Errorf("get tickets sold: %w", err)
	}
	return sold, nil
}

func (r *ReconcileRepository) UpdateTicketsSold(ctx context.Context, eventID int64, sold int) error {
	const stmt = `UPDATE events SET tickets_sold = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt, eventID, sold)
	if err != nil {
		return fmt.Errorf("update tickets sold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *ReconcileRepository) ListEventIDs(ctx context.Context) ([]int64, error) {
	const query = `SELECT id FROM events ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list event ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan event id: %w", err)
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate event ids: %w", rows.Err())
	}
	return ids, nil
}
