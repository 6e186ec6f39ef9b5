package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/mkandreum/rodetespruebas/internal/app"
	"github.com/mkandreum/rodetespruebas/internal/domain"
	"github.com/mkandreum/rodetespruebas/internal/storage/postgres"
	"github.com/mkandreum/rodetespruebas/internal/testutil"
)

func TestBackupRoundTrip_Integration(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	eventID := testutil.InsertEvent(t, ctx, pool, "Gala", now.Add(48*time.Hour), 50)
	testutil.InsertDragAndItem(t, ctx, pool, "Victoria", "Tote")
	order := domain.TicketOrder{
		ID:       "f3e0a1cc-0000-4000-8000-000000000001",
		EventID:  eventID,
		Email:    "a@example.com",
		Quantity: 2,
	}
	testutil.InsertOrder(t, ctx, pool, order)
	if _, err := pool.Exec(ctx, `
INSERT INTO redemptions (order_id, redeemed_count) VALUES ($1, 1)`, order.ID); err != nil {
		t.Fatalf("insert redemption: %v", err)
	}

	repo := postgres.NewBackupRepository(pool)
	reconciler := app.NewReconcileService(postgres.NewReconcileRepository(pool), nil)
	svc := app.NewBackupService(repo, reconciler)

	snapshot, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snapshot.Catalog.Events) != 1 || len(snapshot.Orders.Tickets) != 1 || len(snapshot.Redemptions) != 1 {
		t.Fatalf("unexpected snapshot sizes %+v", snapshot)
	}

	// Wreck the live data, then restore the snapshot over it.
	testutil.TruncateAll(t, ctx, pool)
	testutil.InsertEvent(t, ctx, pool, "Impostor", now, 1)

	if err := svc.Restore(ctx, snapshot); err != nil {
		t.Fatalf("restore: %v", err)
	}

	var name string
	if err := pool.QueryRow(ctx, `SELECT name FROM events WHERE id = $1`, eventID).Scan(&name); err != nil {
		t.Fatalf("query restored event: %v", err)
	}
	if name != "Gala" {
		t.Fatalf("expected restored event name Gala, got %q", name)
	}

	// Restore re-derives the counter from the restored ledger.
	var sold int
	if err := pool.QueryRow(ctx, `SELECT tickets_sold FROM events WHERE id = $1`, eventID).Scan(&sold); err != nil {
		t.Fatalf("query tickets_sold: %v", err)
	}
	if sold != 2 {
		t.Fatalf("expected tickets_sold 2 after restore, got %d", sold)
	}

	var redeemed int
	if err := pool.QueryRow(ctx, `SELECT redeemed_count FROM redemptions WHERE order_id = $1`, order.ID).Scan(&redeemed); err != nil {
		t.Fatalf("query redemption: %v", err)
	}
	if redeemed != 1 {
		t.Fatalf("expected redeemed_count 1, got %d", redeemed)
	}

	// New catalog rows allocate ids past the restored ones.
	newEventID := testutil.InsertEvent(t, ctx, pool, "Next Gala", now.Add(96*time.Hour), 10)
	if newEventID <= eventID {
		t.Fatalf("expected new event id beyond %d, got %d", eventID, newEventID)
	}
}
