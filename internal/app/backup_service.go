package app

import (
	"context"
	"fmt"

	"github.com/mkandreum/rodetespruebas/internal/domain"
)

type BackupRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	DumpCatalog(ctx context.Context) (domain.BackupCatalog, error)
	DumpOrders(ctx context.Context) (domain.BackupOrders, error)
	DumpRedemptions(ctx context.Context) ([]domain.Redemption, error)
	ReplaceAll(ctx context.Context, b domain.Backup) error
}

// ReconcileAller is satisfied by ReconcileService; restore re-derives every
// counter after swapping the ledger.
type ReconcileAller interface {
	ReconcileAll(ctx context.Context) ([]CounterCorrection, error)
}

// BackupService snapshots and restores the three logical datasets as a unit.
// A bundle with any dataset missing or malformed is rejected wholesale before
// a single row is written; partially applying a backup is the worst data-loss
// mode in this domain.
type BackupService struct {
	repo       BackupRepository
	reconciler ReconcileAller
}

func NewBackupService(repo BackupRepository, rec ReconcileAller) *BackupService {
	return &BackupService{repo: repo, reconciler: rec}
}

func (s *BackupService) Snapshot(ctx context.Context) (domain.Backup, error) {
	var b domain.Backup

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		catalog, err := s.repo.DumpCatalog(txCtx)
		if err != nil {
			return err
		}
		orders, err := s.repo.DumpOrders(txCtx)
		if err != nil {
			return err
		}
		redemptions, err := s.repo.DumpRedemptions(txCtx)
		if err != nil {
			return err
		}
		b = domain.Backup{
			Catalog:     &catalog,
			Orders:      &orders,
			Redemptions: redemptions,
		}
		if b.Redemptions == nil {
			b.Redemptions = []domain.Redemption{}
		}
		return nil
	})
	if err != nil {
		return domain.Backup{}, err
	}
	return b, nil
}

func (s *BackupService) Restore(ctx context.Context, b domain.Backup) error {
	if err := validateBackup(b); err != nil {
		return err
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		return s.repo.ReplaceAll(txCtx, b)
	})
	if err != nil {
		return err
	}

	_, err = s.reconciler.ReconcileAll(ctx)
	return err
}

func validateBackup(b domain.Backup) error {
	if b.Catalog == nil {
		return fmt.Errorf("%w: missing catalog dataset", domain.ErrMalformedBackup)
	}
	if b.Orders == nil {
		return fmt.Errorf("%w: missing orders dataset", domain.ErrMalformedBackup)
	}
	if b.Redemptions == nil {
		return fmt.Errorf("%w: missing redemptions dataset", domain.ErrMalformedBackup)
	}

	eventIDs := make(map[int64]struct{}, len(b.Catalog.Events))
	for _, e := range b.Catalog.Events {
		if e.ID <= 0 || e.Name == "" || e.Capacity < 0 {
			return fmt.Errorf("%w: bad event record %d", domain.ErrMalformedBackup, e.ID)
		}
		eventIDs[e.ID] = struct{}{}
	}
	for _, d := range b.Catalog.Drags {
		if d.ID <= 0 || d.Name == "" {
			return fmt.Errorf("%w: bad drag record %d", domain.ErrMalformedBackup, d.ID)
		}
	}
	for _, m := range b.Catalog.MerchItems {
		if m.ID <= 0 || m.DragID <= 0 || m.Name == "" {
			return fmt.Errorf("%w: bad merch item record %d", domain.ErrMalformedBackup, m.ID)
		}
	}

	orderQuantities := make(map[string]int, len(b.Orders.Tickets))
	for _, o := range b.Orders.Tickets {
		if o.ID == "" || o.Quantity <= 0 || o.Email == "" {
			return fmt.Errorf("%w: bad ticket order record %q", domain.ErrMalformedBackup, o.ID)
		}
		if _, ok := eventIDs[o.EventID]; !ok {
			return fmt.Errorf("%w: order %q references unknown event %d", domain.ErrMalformedBackup, o.ID, o.EventID)
		}
		orderQuantities[o.ID] = o.Quantity
	}
	for _, sale := range b.Orders.MerchSales {
		if sale.ID == "" || sale.Quantity <= 0 || sale.ItemID <= 0 || sale.DragID <= 0 {
			return fmt.Errorf("%w: bad merch sale record %q", domain.ErrMalformedBackup, sale.ID)
		}
	}
	for _, r := range b.Redemptions {
		if r.OrderID == "" || r.RedeemedCount < 0 {
			return fmt.Errorf("%w: bad redemption record %q", domain.ErrMalformedBackup, r.OrderID)
		}
		quantity, ok := orderQuantities[r.OrderID]
		if !ok {
			return fmt.Errorf("%w: redemption for unknown order %q", domain.ErrMalformedBackup, r.OrderID)
		}
		if r.RedeemedCount > quantity {
			return fmt.Errorf("%w: redemption for order %q exceeds its quantity", domain.ErrMalformedBackup, r.OrderID)
		}
	}
	return nil
}
