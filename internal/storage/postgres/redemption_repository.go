package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

type RedemptionRepository struct {
	pool *pgxpool.Pool
}

func NewRedemptionRepository(pool *pgxpool.Pool) *RedemptionRepository {
	return &RedemptionRepository{pool: pool}
}

func (r *RedemptionRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const orderColumns = `id, event_id, email, first_name, last_name, quantity, created_at`

// GetOrderForUpdate locks the order row, serializing redemption per order so
// two racing scans cannot both consume the last admission.
func (r *RedemptionRepository) GetOrderForUpdate(ctx context.Context, orderID string) (domain.TicketOrder, error) {
	return r.getOrder(ctx, orderID, true)
}

func (r *RedemptionRepository) GetOrder(ctx context.Context, orderID string) (domain.TicketOrder, error) {
	return r.getOrder(ctx, orderID, false)
}

func (r *RedemptionRepository) getOrder(ctx context.Context, orderID string, forUpdate bool) (domain.TicketOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM ticket_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var o domain.TicketOrder
	err := r.queryRow(ctx, query, orderID).
		Scan(&o.ID, &o.EventID, &o.Email, &o.FirstName, &o.LastName, &o.Quantity, &o.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.TicketOrder{}, domain.ErrOrderNotFound
		}
		if err == pgx.ErrNoRows {
			return domain.TicketOrder{}, domain.ErrOrderNotFound
		}
		return domain.TicketOrder{}, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *RedemptionRepository) GetEvent(ctx context.Context, eventID int64) (domain.Event, error) {
	const query = `
SELECT id, name, date, capacity, is_archived, tickets_sold, created_at
FROM events
WHERE id = $1`

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

func (r *RedemptionRepository) GetRedeemedCount(ctx context.Context, orderID string) (int, error) {
	const query = `SELECT COALESCE(MAX(redeemed_count), 0) FROM redemptions WHERE order_id = $1`

	var count int
	if err := r.queryRow(ctx, query, orderID).Scan(&count); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrOrderNotFound
		}
		return 0, fmt.Errorf("get redeemed count: %w", err)
	}
	return count, nil
}

// AddRedemption increments the redemption ledger row, creating it on first
// scan. Callers hold the order row lock, so the add is race-free.
func (r *RedemptionRepository) AddRedemption(ctx context.Context, orderID string, count int, now time.Time) error {
	const stmt = `
INSERT INTO redemptions (order_id, redeemed_count, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (order_id)
DO UPDATE SET redeemed_count = redemptions.redeemed_count + $2, updated_at = $3`

	if _, err := r.exec(ctx, stmt, orderID, count, now); err != nil {
		return fmt.Errorf("add redemption: %w", err)
	}
	return nil
}

func (r *RedemptionRepository) GetSaleForUpdate(ctx context.Context, saleID string) (domain.MerchSale, error) {
	return r.getSale(ctx, saleID, true)
}

func (r *RedemptionRepository) GetSale(ctx context.Context, saleID string) (domain.MerchSale, error) {
	return r.getSale(ctx, saleID, false)
}

func (r *RedemptionRepository) getSale(ctx context.Context, saleID string, forUpdate bool) (domain.MerchSale, error) {
	query := `
SELECT id, item_id, drag_id, email, first_name, last_name, quantity, fulfilled, created_at
FROM merch_sales
WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var s domain.MerchSale
	err := r.queryRow(ctx, query, saleID).
		Scan(&s.ID, &s.ItemID, &s.DragID, &s.Email, &s.FirstName, &s.LastName, &s.Quantity, &s.Fulfilled, &s.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.MerchSale{}, domain.ErrSaleNotFound
		}
		if err == pgx.ErrNoRows {
			return domain.MerchSale{}, domain.ErrSaleNotFound
		}
		return domain.MerchSale{}, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func (r *RedemptionRepository) GetMerchItem(ctx context.Context, itemID int64) (domain.MerchItem, error) {
	return getMerchItem(ctx, r.queryRow, itemID)
}

func (r *RedemptionRepository) GetDrag(ctx context.Context, dragID int64) (domain.Drag, error) {
	return getDrag(ctx, r.queryRow, dragID)
}

func (r *RedemptionRepository) MarkSaleFulfilled(ctx context.Context, saleID string) error {
	const stmt = `UPDATE merch_sales SET fulfilled = TRUE WHERE id = $1`

	tag, err := r.exec(ctx, stmt, saleID)
	if err != nil {
		return fmt.Errorf("mark sale fulfilled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

func (r *RedemptionRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *RedemptionRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
