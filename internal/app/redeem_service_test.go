package app

import (
	"context"
	"testing"
	"time"

	"github.com/mkandreum/rodetespruebas/internal/clock"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

func TestRedemptionService_RedeemTicket(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 21, 0, 0, 0, time.UTC)

	makeSvc := func(repo *fakeRedemptionRepo) *RedemptionService {
		return NewRedemptionService(repo, clock.NewFixed(now))
	}

	t.Run("redeems partially across scans", func(t *testing.T) {
		repo := newFakeRedemptionRepo()
		repo.events[1] = domain.Event{ID: 1, Name: "Gala"}
		repo.orders["o-1"] = domain.TicketOrder{ID: "o-1", EventID: 1, Quantity: 4}
		svc := makeSvc(repo)

		res, err := svc.RedeemTicket(context.Background(), "o-1", 3)
		if err != nil {
			t.Fatalf("first scan: expected no error, got %v", err)
		}
		if res.Redeemed != 3 || res.Remaining != 1 {
			t.Fatalf("first scan: expected 3 redeemed 1 remaining, got %+v", res)
		}

		res, err = svc.RedeemTicket(context.Background(), "o-1", 1)
		if err != nil {
			t.Fatalf("second scan: expected no error, got %v", err)
		}
		if res.Redeemed != 1 || res.Remaining != 0 {
			t.Fatalf("second scan: expected 1 redeemed 0 remaining, got %+v", res)
		}

		_, err = svc.RedeemTicket(context.Background(), "o-1", 1)
		if err != domain.ErrAlreadyRedeemed {
			t.Fatalf("third scan: expected ErrAlreadyRedeemed, got %v", err)
		}
	})

	t.Run("rejects count above available", func(t *testing.T) {
		repo := newFakeRedemptionRepo()
		repo.events[1] = domain.Event{ID: 1}
		repo.orders["o-1"] = domain.TicketOrder{ID: "o-1", EventID: 1, Quantity: 4}
		repo.redeemed["o-1"] = 3
		svc := makeSvc(repo)

		_, err := svc.RedeemTicket(context.Background(), "o-1", 2)
		if err != domain.ErrInvalidQuantity {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
		if repo.redeemed["o-1"] != 3 {
			t.Fatalf("expected ledger untouched, got %d", repo.redeemed["o-1"])
		}
	})

	t.Run("rejects zero and negative counts", func(t *testing.T) {
		repo := newFakeRedemptionRepo()
		repo.events[1] = domain.Event{ID: 1}
		repo.orders["o-1"] = domain.TicketOrder{ID: "o-1", EventID: 1, Quantity: 4}
		svc := makeSvc(repo)

		for _, count := range []int{0, -1} {
			_, err := svc.RedeemTicket(context.Background(), "o-1", count)
			if err != domain.ErrInvalidQuantity {
				t.Fatalf("count %d: expected ErrInvalidQuantity, got %v", count, err)
			}
		}
	})

	t.Run("rejects order on archived event", func(t *testing.T) {
		repo := newFakeRedemptionRepo()
		repo.events[1] = domain.Event{ID: 1, IsArchived: true}
		repo.orders["o-1"] = domain.TicketOrder{ID: "o-1", EventID: 1, Quantity: 4}
		svc := makeSvc(repo)

		_, err := svc.RedeemTicket(context.Background(), "o-1", 1)
		if err != domain.ErrEventUnavailable {
			t.Fatalf("expected ErrEventUnavailable, got %v", err)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		svc := makeSvc(newFakeRedemptionRepo())

		_, err := svc.RedeemTicket(context.Background(), "missing", 1)
		if err != domain.ErrOrderNotFound {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})
}

func TestRedemptionService_RedeemSale(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 21, 0, 0, 0, time.UTC)

	t.Run("fulfils once then refuses", func(t *testing.T) {
		repo := newFakeRedemptionRepo()
		repo.drags[1] = domain.Drag{ID: 1, Name: "Victoria"}
		repo.items[10] = domain.MerchItem{ID: 10, DragID: 1, Name: "Tote"}
		repo.sales["s-1"] = domain.MerchSale{ID: "s-1", ItemID: 10, DragID: 1, Quantity: 2}
		svc := NewRedemptionService(repo, clock.NewFixed(now))

		sale, err := svc.RedeemSale(context.Background(), "s-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !sale.Fulfilled {
			t.Fatalf("expected sale to be fulfilled")
		}

		_, err = svc.RedeemSale(context.Background(), "s-1")
		if err != domain.ErrAlreadyRedeemed {
			t.Fatalf("expected ErrAlreadyRedeemed on second scan, got %v", err)
		}
	})

	t.Run("rejects archived item or drag", func(t *testing.T) {
		repo := newFakeRedemptionRepo()
		repo.drags[1] = domain.Drag{ID: 1, IsArchived: true}
		repo.items[10] = domain.MerchItem{ID: 10, DragID: 1}
		repo.sales["s-1"] = domain.MerchSale{ID: "s-1", ItemID: 10, DragID: 1, Quantity: 1}
		svc := NewRedemptionService(repo, clock.NewFixed(now))

		_, err := svc.RedeemSale(context.Background(), "s-1")
		if err != domain.ErrItemUnavailable {
			t.Fatalf("expected ErrItemUnavailable, got %v", err)
		}
		if repo.sales["s-1"].Fulfilled {
			t.Fatalf("expected sale untouched")
		}
	})

	t.Run("unknown sale", func(t *testing.T) {
		svc := NewRedemptionService(newFakeRedemptionRepo(), clock.NewFixed(now))

		_, err := svc.RedeemSale(context.Background(), "missing")
		if err != domain.ErrSaleNotFound {
			t.Fatalf("expected ErrSaleNotFound, got %v", err)
		}
	})
}

func TestRedemptionService_DescribeTicket(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 21, 0, 0, 0, time.UTC)
	repo := newFakeRedemptionRepo()
	repo.events[1] = domain.Event{ID: 1, Name: "Gala"}
	repo.orders["o-1"] = domain.TicketOrder{ID: "o-1", EventID: 1, FirstName: "Cati", Quantity: 4}
	repo.redeemed["o-1"] = 1
	svc := NewRedemptionService(repo, clock.NewFixed(now))

	status, err := svc.DescribeTicket(context.Background(), "o-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if status.Event.Name != "Gala" {
		t.Fatalf("expected event name, got %q", status.Event.Name)
	}
	if status.Order.RedeemedCount != 1 {
		t.Fatalf("expected redeemed count 1, got %d", status.Order.RedeemedCount)
	}
	if status.Available != 3 {
		t.Fatalf("expected 3 available, got %d", status.Available)
	}
}

func TestRedemptionService_DescribeSale(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 21, 0, 0, 0, time.UTC)
	repo := newFakeRedemptionRepo()
	repo.drags[1] = domain.Drag{ID: 1, Name: "Victoria"}
	repo.items[10] = domain.MerchItem{ID: 10, DragID: 1, Name: "Tote"}
	repo.sales["s-1"] = domain.MerchSale{ID: "s-1", ItemID: 10, DragID: 1, Quantity: 2}
	svc := NewRedemptionService(repo, clock.NewFixed(now))

	status, err := svc.DescribeSale(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if status.ItemName != "Tote" || status.DragName != "Victoria" {
		t.Fatalf("expected item and drag names, got %+v", status)
	}
}

type fakeRedemptionRepo struct {
	orders   map[string]domain.TicketOrder
	events   map[int64]domain.Event
	sales    map[string]domain.MerchSale
	items    map[int64]domain.MerchItem
	drags    map[int64]domain.Drag
	redeemed map[string]int
}

func newFakeRedemptionRepo() *fakeRedemptionRepo {
	return &fakeRedemptionRepo{
		orders:   make(map[string]domain.TicketOrder),
		events:   make(map[int64]domain.Event),
		sales:    make(map[string]domain.MerchSale),
		items:    make(map[int64]domain.MerchItem),
		drags:    make(map[int64]domain.Drag),
		redeemed: make(map[string]int),
	}
}

func (f *fakeRedemptionRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeRedemptionRepo) GetOrderForUpdate(ctx context.Context, orderID string) (domain.TicketOrder, error) {
	return f.GetOrder(ctx, orderID)
}

func (f *fakeRedemptionRepo) GetOrder(_ context.Context, orderID string) (domain.TicketOrder, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return domain.TicketOrder{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeRedemptionRepo) GetEvent(_ context.Context, eventID int64) (domain.Event, error) {
	event, ok := f.events[eventID]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeRedemptionRepo) GetRedeemedCount(_ context.Context, orderID string) (int, error) {
	return f.redeemed[orderID], nil
}

func (f *fakeRedemptionRepo) AddRedemption(_ context.Context, orderID string, count int, _ time.Time) error {
	f.redeemed[orderID] += count
	return nil
}

func (f *fakeRedemptionRepo) GetSaleForUpdate(ctx context.Context, saleID string) (domain.MerchSale, error) {
	return f.GetSale(ctx, saleID)
}

func (f *fakeRedemptionRepo) GetSale(_ context.Context, saleID string) (domain.MerchSale, error) {
	sale, ok := f.sales[saleID]
	if !ok {
		return domain.MerchSale{}, domain.ErrSaleNotFound
	}
	return sale, nil
}

func (f *fakeRedemptionRepo) GetMerchItem(_ context.Context, itemID int64) (domain.MerchItem, error) {
	item, ok := f.items[itemID]
	if !ok {
		return domain.MerchItem{}, domain.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeRedemptionRepo) GetDrag(_ context.Context, dragID int64) (domain.Drag, error) {
	drag, ok := f.drags[dragID]
	if !ok {
		return domain.Drag{}, domain.ErrDragNotFound
	}
	return drag, nil
}

func (f *fakeRedemptionRepo) MarkSaleFulfilled(_ context.Context, saleID string) error {
	sale, ok := f.sales[saleID]
	if !ok {
		return domain.ErrSaleNotFound
	}
	sale.Fulfilled = true
	f.sales[saleID] = sale
	return nil
}
