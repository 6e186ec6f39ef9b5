package app

import (
	"context"
	"time"

	"github.com/mkandreum/rodetespruebas/internal/clock"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

type RedemptionRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetOrderForUpdate(ctx context.Context, orderID string) (domain.TicketOrder, error)
	GetOrder(ctx context.Context, orderID string) (domain.TicketOrder, error)
	GetEvent(ctx context.Context, eventID int64) (domain.Event, error)
	GetRedeemedCount(ctx context.Context, orderID string) (int, error)
	AddRedemption(ctx context.Context, orderID string, count int, now time.Time) error
	GetSaleForUpdate(ctx context.Context, saleID string) (domain.MerchSale, error)
	GetSale(ctx context.Context, saleID string) (domain.MerchSale, error)
	GetMerchItem(ctx context.Context, itemID int64) (domain.MerchItem, error)
	GetDrag(ctx context.Context, dragID int64) (domain.Drag, error)
	MarkSaleFulfilled(ctx context.Context, saleID string) error
}

// RedemptionService is the admission-scanning engine. Ticket orders redeem
// partially across scans without ever exceeding their quantity; merch sales
// redeem as one indivisible unit. Both paths take a row lock on the order so
// two racing scans observe a single sequence of available counts.
type RedemptionService struct {
	repo  RedemptionRepository
	clock clock.Clock
}

func NewRedemptionService(repo RedemptionRepository, clk clock.Clock) *RedemptionService {
	return &RedemptionService{repo: repo, clock: clk}
}

type RedeemTicketResult struct {
	Redeemed  int
	Remaining int
}

func (s *RedemptionService) RedeemTicket(ctx context.Context, orderID string, count int) (RedeemTicketResult, error) {
	var result RedeemTicketResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		order, err := s.repo.GetOrderForUpdate(txCtx, orderID)
		if err != nil {
			return err
		}
		event, err := s.repo.GetEvent(txCtx, order.EventID)
		if err != nil {
			return err
		}
		if event.IsArchived {
			return domain.ErrEventUnavailable
		}

		redeemed, err := s.repo.GetRedeemedCount(txCtx, orderID)
		if err != nil {
			return err
		}
		available := order.Quantity - redeemed
		if available <= 0 {
			return domain.ErrAlreadyRedeemed
		}
		if count < 1 || count > available {
			return domain.ErrInvalidQuantity
		}

		if err := s.repo.AddRedemption(txCtx, orderID, count, s.clock.Now()); err != nil {
			return err
		}

		result = RedeemTicketResult{Redeemed: count, Remaining: available - count}
		return nil
	})
	if err != nil {
		return RedeemTicketResult{}, err
	}
	return result, nil
}

// RedeemSale flips a merch sale to fulfilled. There is no quantity parameter:
// the sale's full quantity is handed over in one go.
func (s *RedemptionService) RedeemSale(ctx context.Context, saleID string) (domain.MerchSale, error) {
	var result domain.MerchSale

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		sale, err := s.repo.GetSaleForUpdate(txCtx, saleID)
		if err != nil {
			return err
		}
		item, err := s.repo.GetMerchItem(txCtx, sale.ItemID)
		if err != nil {
			return err
		}
		drag, err := s.repo.GetDrag(txCtx, sale.DragID)
		if err != nil {
			return err
		}
		if item.IsArchived || drag.IsArchived {
			return domain.ErrItemUnavailable
		}
		if sale.Fulfilled {
			return domain.ErrAlreadyRedeemed
		}
		if err := s.repo.MarkSaleFulfilled(txCtx, saleID); err != nil {
			return err
		}
		sale.Fulfilled = true
		result = sale
		return nil
	})
	if err != nil {
		return domain.MerchSale{}, err
	}
	return result, nil
}

// TicketStatus is the operator-facing view of a scanned ticket order.
type TicketStatus struct {
	Order     domain.TicketOrder
	Event     domain.Event
	Available int
}

// DescribeTicket loads the order behind a scanned code for operator
// confirmation. It takes no lock; the redeem call re-checks under one.
func (s *RedemptionService) DescribeTicket(ctx context.Context, orderID string) (TicketStatus, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return TicketStatus{}, err
	}
	event, err := s.repo.GetEvent(ctx, order.EventID)
	if err != nil {
		return TicketStatus{}, err
	}
	redeemed, err := s.repo.GetRedeemedCount(ctx, orderID)
	if err != nil {
		return TicketStatus{}, err
	}
	order.RedeemedCount = redeemed
	return TicketStatus{Order: order, Event: event, Available: order.Quantity - redeemed}, nil
}

// SaleStatus is the operator-facing view of a scanned merch sale.
type SaleStatus struct {
	Sale     domain.MerchSale
	ItemName string
	DragName string
}

func (s *RedemptionService) DescribeSale(ctx context.Context, saleID string) (SaleStatus, error) {
	sale, err := s.repo.GetSale(ctx, saleID)
	if err != nil {
		return SaleStatus{}, err
	}
	item, err := s.repo.GetMerchItem(ctx, sale.ItemID)
	if err != nil {
		return SaleStatus{}, err
	}
	drag, err := s.repo.GetDrag(ctx, sale.DragID)
	if err != nil {
		return SaleStatus{}, err
	}
	return SaleStatus{Sale: sale, ItemName: item.Name, DragName: drag.Name}, nil
}
