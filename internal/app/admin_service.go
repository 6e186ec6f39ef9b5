package app

import (
	"context"
	"strings"
	"time"

	"github.com/mkandreum/rodetespruebas/internal/clock"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

type AdminRepository interface {
	CreateEvent(ctx context.Context, name string, date time.Time, capacity int) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	SetEventArchived(ctx context.Context, eventID int64, archived bool) error
	CreateDrag(ctx context.Context, name string) (domain.Drag, error)
	CreateMerchItem(ctx context.Context, dragID int64, name string) (domain.MerchItem, error)
	ListOrdersByEvent(ctx context.Context, eventID int64) ([]domain.TicketOrder, error)
	ListSalesByDrag(ctx context.Context, dragID int64) ([]domain.MerchSale, error)
	DeleteOrder(ctx context.Context, orderID string) (eventID int64, err error)
	DeleteSale(ctx context.Context, saleID string) error
}

// AdminService covers catalog management and direct ledger edits. Deleting an
// order frees its capacity: the counter is re-derived from the surviving rows
// right after the delete.
type AdminService struct {
	repo       AdminRepository
	clock      clock.Clock
	reconciler Reconciler
}

func NewAdminService(repo AdminRepository, clk clock.Clock, rec Reconciler) *AdminService {
	return &AdminService{repo: repo, clock: clk, reconciler: rec}
}

type CreateEventInput struct {
	Name     string
	Date     *time.Time
	Capacity int
}

func (s *AdminService) CreateEvent(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Event{}, domain.ErrEventNameRequired
	}
	if in.Capacity < 0 {
		return domain.Event{}, domain.ErrInvalidCapacity
	}
	date := s.clock.Now()
	if in.Date != nil {
		date = *in.Date
	}
	return s.repo.CreateEvent(ctx, name, date, in.Capacity)
}

func (s *AdminService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListEvents(ctx)
}

func (s *AdminService) ArchiveEvent(ctx context.Context, eventID int64) error {
	if eventID <= 0 {
		return domain.ErrInvalidID
	}
	return s.repo.SetEventArchived(ctx, eventID, true)
}

func (s *AdminService) CreateDrag(ctx context.Context, name string) (domain.Drag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Drag{}, domain.ErrDragNameRequired
	}
	return s.repo.CreateDrag(ctx, name)
}

func (s *AdminService) CreateMerchItem(ctx context.Context, dragID int64, name string) (domain.MerchItem, error) {
	if dragID <= 0 {
		return domain.MerchItem{}, domain.ErrInvalidID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.MerchItem{}, domain.ErrItemNameRequired
	}
	return s.repo.CreateMerchItem(ctx, dragID, name)
}

func (s *AdminService) ListOrders(ctx context.Context, eventID int64) ([]domain.TicketOrder, error) {
	if eventID <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListOrdersByEvent(ctx, eventID)
}

func (s *AdminService) ListSales(ctx context.Context, dragID int64) ([]domain.MerchSale, error) {
	if dragID <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListSalesByDrag(ctx, dragID)
}

// DeleteOrder removes a ticket order from the ledger and immediately
// re-derives the event's sold counter.
func (s *AdminService) DeleteOrder(ctx context.Context, orderID string) (CounterCorrection, error) {
	if orderID == "" {
		return CounterCorrection{}, domain.ErrInvalidID
	}
	eventID, err := s.repo.DeleteOrder(ctx, orderID)
	if err != nil {
		return CounterCorrection{}, err
	}
	return s.reconciler.Reconcile(ctx, eventID)
}

func (s *AdminService) DeleteSale(ctx context.Context, saleID string) error {
	if saleID == "" {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteSale(ctx, saleID)
}
