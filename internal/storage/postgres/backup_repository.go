package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

// BackupRepository dumps and replaces the whole ledger. Dumps are ordered by
// id so a snapshot round-trips byte for byte.
type BackupRepository struct {
	pool *pgxpool.Pool
}

func NewBackupRepository(pool *pgxpool.Pool) *BackupRepository {
	return &BackupRepository{pool: pool}
}

func (r *BackupRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *BackupRepository) DumpCatalog(ctx context.Context) (domain.BackupCatalog, error) {
	catalog := domain.BackupCatalog{
		Events:     []domain.Event{},
		Drags:      []domain.Drag{},
		MerchItems: []domain.MerchItem{},
	}

	rows, err := r.query(ctx, `
SELECT id, name, date, capacity, is_archived, tickets_sold, created_at
FROM events ORDER BY id ASC`)
	if err != nil {
		return domain.BackupCatalog{}, fmt.Errorf("dump events: %w", err)
	}
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Capacity, &e.IsArchived, &e.TicketsSold, &e.CreatedAt); err != nil {
			rows.Close()
			return domain.BackupCatalog{}, fmt.Errorf("scan event: %w", err)
		}
		catalog.Events = append(catalog.Events, e)
	}
	rows.Close()
	if rows.Err() != nil {
		return domain.BackupCatalog{}, fmt.Errorf("iterate events: %w", rows.Err())
	}

	rows, err = r.query(ctx, `SELECT id, name, is_archived, created_at FROM drags ORDER BY id ASC`)
	if err != nil {
		return domain.BackupCatalog{}, fmt.Errorf("dump drags: %w", err)
	}
	for rows.Next() {
		var d domain.Drag
		if err := rows.Scan(&d.ID, &d.Name, &d.IsArchived, &d.CreatedAt); err != nil {
			rows.Close()
			return domain.BackupCatalog{}, fmt.Errorf("scan drag: %w", err)
		}
		catalog.Drags = append(catalog.Drags, d)
	}
	rows.Close()
	if rows.Err() != nil {
		return domain.BackupCatalog{}, fmt.Errorf("iterate drags: %w", rows.Err())
	}

	rows, err = r.query(ctx, `SELECT id, drag_id, name, is_archived, created_at FROM merch_items ORDER BY id ASC`)
	if err != nil {
		return domain.BackupCatalog{}, fmt.Errorf("dump merch items: %w", err)
	}
	for rows.Next() {
		var m domain.MerchItem
		if err := rows.Scan(&m.ID, &m.DragID, &m.Name, &m.IsArchived, &m.CreatedAt); err != nil {
			rows.Close()
			return domain.BackupCatalog{}, fmt.Errorf("scan merch item: %w", err)
		}
		catalog.MerchItems = append(catalog.MerchItems, m)
	}
	rows.Close()
	if rows.Err() != nil {
		return domain.BackupCatalog{}, fmt.Errorf("iterate merch items: %w", rows.Err())
	}

	return catalog, nil
}

func (r *BackupRepository) DumpOrders(ctx context.Context) (domain.BackupOrders, error) {
	orders := domain.BackupOrders{
		Tickets:    []domain.TicketOrder{},
		MerchSales: []domain.MerchSale{},
	}

	rows, err := r.query(ctx, `
SELECT id, event_id, email, first_name, last_name, quantity, created_at
FROM ticket_orders ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return domain.BackupOrders{}, fmt.Errorf("dump ticket orders: %w", err)
	}
	for rows.Next() {
		var o domain.TicketOrder
		if err := rows.Scan(&o.ID, &o.EventID, &o.Email, &o.FirstName, &o.LastName, &o.Quantity, &o.CreatedAt); err != nil {
			rows.Close()
			return domain.BackupOrders{}, fmt.Errorf("scan ticket order: %w", err)
		}
		orders.Tickets = append(orders.Tickets, o)
	}
	rows.Close()
	if rows.Err() != nil {
		return domain.BackupOrders{}, fmt.Errorf("iterate ticket orders: %w", rows.Err())
	}

	rows, err = r.query(ctx, `
SELECT id, item_id, drag_id, email, first_name, last_name, quantity, fulfilled, created_at
FROM merch_sales ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return domain.BackupOrders{}, fmt.Errorf("dump merch sales: %w", err)
	}
	for rows.Next() {
		var s domain.MerchSale
		if err := rows.Scan(&s.ID, &s.ItemID, &s.DragID, &s.Email, &s.FirstName, &s.LastName, &s.Quantity, &s.Fulfilled, &s.CreatedAt); err != nil {
			rows.Close()
			return domain.BackupOrders{}, fmt.Errorf("scan merch sale: %w", err)
		}
		orders.MerchSales = append(orders.MerchSales, s)
	}
	rows.Close()
	if rows.Err() != nil {
		return domain.BackupOrders{}, fmt.Errorf("iterate merch sales: %w", rows.Err())
	}

	return orders, nil
}

func (r *BackupRepository) DumpRedemptions(ctx context.Context) ([]domain.Redemption, error) {
	rows, err := r.query(ctx, `
SELECT order_id, redeemed_count, updated_at
FROM redemptions ORDER BY order_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("dump redemptions: %w", err)
	}
	defer rows.Close()

	redemptions := []domain.Redemption{}
	for rows.Next() {
		var rec domain.Redemption
		if err := rows.Scan(&rec.OrderID, &rec.RedeemedCount, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan redemption: %w", err)
		}
		redemptions = append(redemptions, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate redemptions: %w", rows.Err())
	}
	return redemptions, nil
}

// ReplaceAll swaps the entire ledger for the bundle's contents. Must run
// inside WithTx; the sequence reset keeps new catalog ids monotonic past the
// restored ones.
func (r *BackupRepository) ReplaceAll(ctx context.Context, b domain.Backup) error {
	if _, err := r.exec(ctx, `TRUNCATE redemptions, merch_sales, ticket_orders, merch_items, drags, events`); err != nil {
		return fmt.Errorf("truncate ledger: %w", err)
	}

	for _, e := range b.Catalog.Events {
		if _, err := r.exec(ctx, `
INSERT INTO events (id, name, date, capacity, is_archived, tickets_sold, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			e.ID, e.Name, e.Date, e.Capacity, e.IsArchived, e.TicketsSold, e.CreatedAt); err != nil {
			return fmt.Errorf("restore event %d: %w", e.ID, err)
		}
	}
	for _, d := range b.Catalog.Drags {
		if _, err := r.exec(ctx, `
INSERT INTO drags (id, name, is_archived, created_at)
VALUES ($1, $2, $3, $4)`,
			d.ID, d.Name, d.IsArchived, d.CreatedAt); err != nil {
			return fmt.Errorf("restore drag %d: %w", d.ID, err)
		}
	}
	for _, m := range b.Catalog.MerchItems {
		if _, err := r.exec(ctx, `
INSERT INTO merch_items (id, drag_id, name, is_archived, created_at)
VALUES ($1, $2, $3, $4, $5)`,
			m.ID, m.DragID, m.Name, m.IsArchived, m.CreatedAt); err != nil {
			return fmt.Errorf("restore merch item %d: %w", m.ID, err)
		}
	}
	for _, o := range b.Orders.Tickets {
		if _, err := r.exec(ctx, `
INSERT INTO ticket_orders (id, event_id, email, first_name, last_name, quantity, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			o.ID, o.EventID, o.Email, o.FirstName, o.LastName, o.Quantity, o.CreatedAt); err != nil {
			return fmt.Errorf("restore ticket order %s: %w", o.ID, err)
		}
	}
	for _, s := range b.Orders.MerchSales {
		if _, err := r.exec(ctx, `
INSERT INTO merch_sales (id, item_id, drag_id, email, first_name, last_name, quantity, fulfilled, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			s.ID, s.ItemID, s.DragID, s.Email, s.FirstName, s.LastName, s.Quantity, s.Fulfilled, s.CreatedAt); err != nil {
			return fmt.Errorf("restore merch sale %s: %w", s.ID, err)
		}
	}
	for _, rec := range b.Redemptions {
		if _, err := r.exec(ctx, `
INSERT INTO redemptions (order_id, redeemed_count, updated_at)
VALUES ($1, $2, $3)`,
			rec.OrderID, rec.RedeemedCount, rec.UpdatedAt); err != nil {
			return fmt.Errorf("restore redemption %s: %w", rec.OrderID, err)
		}
	}

	for _, seq := range []struct{ table, seq string }{
		{"events", "events_id_seq"},
		{"drags", "drags_id_seq"},
		{"merch_items", "merch_items_id_seq"},
	} {
		stmt := fmt.Sprintf(
			`SELECT setval('%s', GREATEST((SELECT COALESCE(MAX(id), 0) FROM %s), 1))`,
			seq.seq, seq.table,
		)
		if _, err := r.exec(ctx, stmt); err != nil {
			return fmt.Errorf("reset %s: %w", seq.seq, err)
		}
	}
	return nil
}

func (r *BackupRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *BackupRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
