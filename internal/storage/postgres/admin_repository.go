package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) CreateEvent(ctx context.Context, name string, date time.Time, capacity int) (domain.Event, error) {
	const stmt = `
INSERT INTO events (name, date, capacity)
VALUES ($1, $2, $3)
RETURNING id, name, date, capacity, is_archived, tickets_sold, created_at`

	var e domain.Event
	err := r.pool.QueryRow(ctx, stmt, name, date, capacity).
		Scan(&e.ID, &e.Name, &e.Date, &e.Capacity, &e.IsArchived, &e.TicketsSold, &e.CreatedAt)
	if err != nil {
		return domain.Event{}, fmt.Errorf("create event: %w", err)
	}
	return e, nil
}

func (r *AdminRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	const query = `
SELECT id, name, date, capacity, is_archived, tickets_sold, created_at
FROM events
ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
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

func (r *AdminRepository) SetEventArchived(ctx context.Context, eventID int64, archived bool) error {
	const stmt = `UPDATE events SET is_archived = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt, eventID, archived)
	if err != nil {
		return fmt.Errorf("set event archived: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *AdminRepository) CreateDrag(ctx context.Context, name string) (domain.Drag, error) {
	const stmt = `
INSERT INTO drags (name)
VALUES ($1)
RETURNING id, name, is_archived, created_at`

	var d domain.Drag
	err := r.pool.QueryRow(ctx, stmt, name).
		Scan(&d.ID, &d.Name, &d.IsArchived, &d.CreatedAt)
	if err != nil {
		return domain.Drag{}, fmt.Errorf("create drag: %w", err)
	}
	return d, nil
}

func (r *AdminRepository) CreateMerchItem(ctx context.Context, dragID int64, name string) (domain.MerchItem, error) {
	const stmt = `
INSERT INTO merch_items (drag_id, name)
VALUES ($1, $2)
RETURNING id, drag_id, name, is_archived, created_at`

	var m domain.MerchItem
	err := r.pool.QueryRow(ctx, stmt, dragID, name).
		Scan(&m.ID, &m.DragID, &m.Name, &m.IsArchived, &m.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.MerchItem{}, domain.ErrDragNotFound
		}
		return domain.MerchItem{}, fmt.Errorf("create merch item: %w", err)
	}
	return m, nil
}

func (r *AdminRepository) ListOrdersByEvent(ctx context.Context, eventID int64) ([]domain.TicketOrder, error) {
	const query = `
SELECT o.id, o.event_id, o.email, o.first_name, o.last_name, o.quantity, o.created_at,
       COALESCE(rd.redeemed_count, 0)
FROM ticket_orders o
LEFT JOIN redemptions rd ON rd.order_id = o.id
WHERE o.event_id = $1
ORDER BY o.created_at ASC`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.TicketOrder
	for rows.Next() {
		var o domain.TicketOrder
		if err := rows.Scan(&o.ID, &o.EventID, &o.Email, &o.FirstName, &o.LastName, &o.Quantity, &o.CreatedAt, &o.RedeemedCount); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate orders: %w", rows.Err())
	}
	return orders, nil
}

func (r *AdminRepository) ListSalesByDrag(ctx context.Context, dragID int64) ([]domain.MerchSale, error) {
	const query = `
SELECT id, item_id, drag_id, email, first_name, last_name, quantity, fulfilled, created_at
FROM merch_sales
WHERE drag_id = $1
ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, dragID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []domain.MerchSale
	for rows.Next() {
		var s domain.MerchSale
		if err := rows.Scan(&s.ID, &s.ItemID, &s.DragID, &s.Email, &s.FirstName, &s.LastName, &s.Quantity, &s.Fulfilled, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate sales: %w", rows.Err())
	}
	return sales, nil
}

// DeleteOrder removes the order and its redemption row (cascade) and reports
// which event owned it so the caller can reconcile.
func (r *AdminRepository) DeleteOrder(ctx context.Context, orderID string) (int64, error) {
	const stmt = `DELETE FROM ticket_orders WHERE id = $1 RETURNING event_id`

	var eventID int64
	err := r.pool.QueryRow(ctx, stmt, orderID).Scan(&eventID)
	if err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrOrderNotFound
		}
		if err == pgx.ErrNoRows {
			return 0, domain.ErrOrderNotFound
		}
		return 0, fmt.Errorf("delete order: %w", err)
	}
	return eventID, nil
}

func (r *AdminRepository) DeleteSale(ctx context.Context, saleID string) error {
	const stmt = `DELETE FROM merch_sales WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt, saleID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrSaleNotFound
		}
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}
