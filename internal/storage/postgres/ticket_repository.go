package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetEventForUpdate locks the event row for the duration of the transaction,
// serializing issuance per event.
func (r *TicketRepository) GetEventForUpdate(ctx context.Context, eventID int64) (domain.Event, error) {
	const query = `
SELECT id, name, date, capacity, is_archived, tickets_sold, created_at
FROM events
WHERE id = $1
FOR UPDATE`

	var e domain.Event
	err := r.queryRow(ctx, query, eventID).
		Scan(&e.ID, &e.Name, &e.Date, &e.Capacity, &e.IsArchived, &e.TicketsSold, &e.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (r *TicketRepository) FindOrderByBuyer(ctx context.Context, eventID int64, email string) (*domain.TicketOrder, error) {
	const query = `
SELECT o.id, o.event_id, o.email, o.first_name, o.last_name, o.quantity, o.created_at,
       COALESCE(rd.redeemed_count, 0)
FROM ticket_orders o
LEFT JOIN redemptions rd ON rd.order_id = o.id
WHERE o.event_id = $1 AND o.email = $2`

	var o domain.TicketOrder
	err := r.queryRow(ctx, query, eventID, email).
		Scan(&o.ID, &o.EventID, &o.Email, &o.FirstName, &o.LastName, &o.Quantity, &o.CreatedAt, &o.RedeemedCount)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find order by buyer: %w", err)
	}
	return &o, nil
}

// SumTicketQuantity re-reads the ledger; capacity decisions never trust the
// stored counter.
func (r *TicketRepository) SumTicketQuantity(ctx context.Context, eventID int64) (int, error) {
	const query = `SELECT COALESCE(SUM(quantity), 0) FROM ticket_orders WHERE event_id = $1`

	var total int
	if err := r.queryRow(ctx, query, eventID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum ticket quantity: %w", err)
	}
	return total, nil
}

func (r *TicketRepository) CreateOrder(ctx context.Context, order domain.TicketOrder) error {
	const stmt = `
INSERT INTO ticket_orders (id, event_id, email, first_name, last_name, quantity, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		order.ID,
		order.EventID,
		order.Email,
		order.FirstName,
		order.LastName,
		order.Quantity,
		order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateOrder
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *TicketRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *TicketRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
