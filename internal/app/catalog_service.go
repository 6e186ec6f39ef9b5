package app

import (
	"context"

	"github.com/mkandreum/rodetespruebas/internal/clock"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

type CatalogRepository interface {
	ListActiveEvents(ctx context.Context) ([]domain.Event, error)
	ListDrags(ctx context.Context) ([]domain.Drag, error)
	ListMerchItemsByDrag(ctx context.Context, dragID int64) ([]domain.MerchItem, error)
}

// CatalogService serves the public storefront reads. Sold counts come from
// the display cache when warm and from the stored column otherwise; neither
// is authoritative for issuance.
type CatalogService struct {
	repo  CatalogRepository
	cache CounterCache
	clock clock.Clock
}

func NewCatalogService(repo CatalogRepository, cache CounterCache, clk clock.Clock) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, clock: clk}
}

// EventListing is one public listing row.
type EventListing struct {
	Event   domain.Event
	Sold    int
	SoldOut bool
}

func (s *CatalogService) ListEvents(ctx context.Context) ([]EventListing, error) {
	events, err := s.repo.ListActiveEvents(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]EventListing, 0, len(events))
	for _, e := range events {
		sold := e.TicketsSold
		if s.cache != nil {
			if cached, ok, err := s.cache.GetSoldCount(ctx, e.ID); err == nil && ok {
				sold = cached
			}
		}
		listings = append(listings, EventListing{
			Event:   e,
			Sold:    sold,
			SoldOut: e.Capacity > 0 && sold >= e.Capacity,
		})
	}
	return listings, nil
}

func (s *CatalogService) ListDrags(ctx context.Context) ([]domain.Drag, error) {
	return s.repo.ListDrags(ctx)
}

func (s *CatalogService) ListMerchItems(ctx context.Context, dragID int64) ([]domain.MerchItem, error) {
	if dragID <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListMerchItemsByDrag(ctx, dragID)
}
