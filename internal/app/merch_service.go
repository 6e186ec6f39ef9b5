package app

import (
	"context"
	"strings"

	"github.com/mkandreum/rodetespruebas/internal/clock"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

type MerchRepository interface {
	GetMerchItem(ctx context.Context, itemID int64) (domain.MerchItem, error)
	GetDrag(ctx context.Context, dragID int64) (domain.Drag, error)
	CreateSale(ctx context.Context, sale domain.MerchSale) error
}

// MerchService issues merch sale reservations. Merch has no expiry, no
// capacity bookkeeping and no duplicate-buyer rule; the only subject check is
// that the item and its seller still exist and are not archived.
type MerchService struct {
	repo  MerchRepository
	clock clock.Clock
}

func NewMerchService(repo MerchRepository, clk clock.Clock) *MerchService {
	return &MerchService{repo: repo, clock: clk}
}

type CreateSaleInput struct {
	ItemID    int64
	Email     string
	FirstName string
	LastName  string
	Quantity  int
}

type CreateSaleResult struct {
	Sale     domain.MerchSale
	ItemName string
	DragName string
}

func (s *MerchService) CreateSale(ctx context.Context, in CreateSaleInput) (CreateSaleResult, error) {
	if in.Quantity <= 0 {
		return CreateSaleResult{}, domain.ErrInvalidQuantity
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return CreateSaleResult{}, err
	}

	item, err := s.repo.GetMerchItem(ctx, in.ItemID)
	if err != nil {
		return CreateSaleResult{}, err
	}
	drag, err := s.repo.GetDrag(ctx, item.DragID)
	if err != nil {
		return CreateSaleResult{}, err
	}
	if item.IsArchived || drag.IsArchived {
		return CreateSaleResult{}, domain.ErrItemUnavailable
	}

	sale := domain.MerchSale{
		ID:        newOrderID(),
		ItemID:    item.ID,
		DragID:    drag.ID,
		Email:     email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Quantity:  in.Quantity,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateSale(ctx, sale); err != nil {
		return CreateSaleResult{}, err
	}
	return CreateSaleResult{Sale: sale, ItemName: item.Name, DragName: drag.Name}, nil
}
