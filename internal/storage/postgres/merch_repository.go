package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

type MerchRepository struct {
	pool *pgxpool.Pool
}

func NewMerchRepository(pool *pgxpool.Pool) *MerchRepository {
	return &MerchRepository{pool: pool}
}

func (r *MerchRepository) GetMerchItem(ctx context.Context, itemID int64) (domain.MerchItem, error) {
	return getMerchItem(ctx, r.queryRow, itemID)
}

func (r *MerchRepository) GetDrag(ctx context.Context, dragID int64) (domain.Drag, error) {
	return getDrag(ctx, r.queryRow, dragID)
}

func (r *MerchRepository) CreateSale(ctx context.Context, sale domain.MerchSale) error {
	const stmt = `
INSERT INTO merch_sales (id, item_id, drag_id, email, first_name, last_name, quantity, fulfilled, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, stmt,
		sale.ID,
		sale.ItemID,
		sale.DragID,
		sale.Email,
		sale.FirstName,
		sale.LastName,
		sale.Quantity,
		sale.Fulfilled,
		sale.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrItemNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

func (r *MerchRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return r.pool.QueryRow(ctx, sql, args...)
}
