package app

import (
	"context"
	"net/mail"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mkandreum/rodetespruebas/internal/clock"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

type TicketRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEventForUpdate(ctx context.Context, eventID int64) (domain.Event, error)
	FindOrderByBuyer(ctx context.Context, eventID int64, email string) (*domain.TicketOrder, error)
	SumTicketQuantity(ctx context.Context, eventID int64) (int, error)
	CreateOrder(ctx context.Context, order domain.TicketOrder) error
}

// Reconciler realigns an event's derived sold counter with the order ledger.
type Reconciler interface {
	Reconcile(ctx context.Context, eventID int64) (CounterCorrection, error)
}

// TicketService is the issuance engine: it admits a new ticket order if and
// only if the event is sellable, the buyer has no order yet and capacity
// holds against the authoritative ledger.
type TicketService struct {
	repo           TicketRepository
	clock          clock.Clock
	reconciler     Reconciler
	logger         logrus.FieldLogger
	allowedDomains []string
}

func NewTicketService(repo TicketRepository, clk clock.Clock, rec Reconciler, opts ...TicketServiceOption) *TicketService {
	svc := &TicketService{
		repo:       repo,
		clock:      clk,
		reconciler: rec,
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type TicketServiceOption func(*TicketService)

// WithAllowedDomains restricts buyer emails to the given domain suffixes.
// An empty list accepts any domain.
func WithAllowedDomains(domains []string) TicketServiceOption {
	return func(s *TicketService) {
		s.allowedDomains = domains
	}
}

// WithLogger replaces the standard logger.
func WithLogger(logger logrus.FieldLogger) TicketServiceOption {
	return func(s *TicketService) {
		s.logger = logger
	}
}

type IssueTicketInput struct {
	EventID   int64
	Email     string
	FirstName string
	LastName  string
	Quantity  int
}

type IssueTicketResult struct {
	Order domain.TicketOrder
	Event domain.Event
	// Created is false when an order already existed for this buyer and the
	// existing order was returned unchanged.
	Created bool
}

func (s *TicketService) Issue(ctx context.Context, in IssueTicketInput) (IssueTicketResult, error) {
	if in.Quantity <= 0 {
		return IssueTicketResult{}, domain.ErrInvalidQuantity
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return IssueTicketResult{}, err
	}
	if !s.domainAllowed(email) {
		return IssueTicketResult{}, domain.ErrDomainNotAllowed
	}

	now := s.clock.Now()
	var result IssueTicketResult

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEventForUpdate(txCtx, in.EventID)
		if err != nil {
			return err
		}
		if !event.Sellable(now) {
			return domain.ErrEventUnavailable
		}

		// Resubmitting the purchase form returns the existing order; this is
		// a get-or-create contract, not an error.
		if existing, err := s.repo.FindOrderByBuyer(txCtx, in.EventID, email); err != nil {
			return err
		} else if existing != nil {
			result = IssueTicketResult{Order: *existing, Event: event, Created: false}
			return nil
		}

		if event.Capacity > 0 {
			sold, err := s.repo.SumTicketQuantity(txCtx, in.EventID)
			if err != nil {
				return err
			}
			if sold+in.Quantity > event.Capacity {
				remaining := event.Capacity - sold
				if remaining < 0 {
					remaining = 0
				}
				return &domain.CapacityError{Remaining: remaining}
			}
		}

		order := domain.TicketOrder{
			ID:        newOrderID(),
			EventID:   in.EventID,
			Email:     email,
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
			Quantity:  in.Quantity,
			CreatedAt: now,
		}

		if err := s.repo.CreateOrder(txCtx, order); err != nil {
			// Re-read on conflict so a concurrent duplicate submit still
			// resolves to the winning order.
			if err == domain.ErrDuplicateOrder {
				existing, err := s.repo.FindOrderByBuyer(txCtx, in.EventID, email)
				if err != nil {
					return err
				}
				if existing != nil {
					result = IssueTicketResult{Order: *existing, Event: event, Created: false}
					return nil
				}
			}
			return err
		}

		result = IssueTicketResult{Order: order, Event: event, Created: true}
		return nil
	})
	if err != nil {
		return IssueTicketResult{}, err
	}

	if result.Created {
		// The stored counter is display-only and self-corrects on the next
		// run, so a failed reconcile does not fail the issuance.
		if _, err := s.reconciler.Reconcile(ctx, in.EventID); err != nil {
			s.logger.WithError(err).WithField("event_id", in.EventID).
				Warn("post-issue counter reconcile failed")
		}
	}
	return result, nil
}

func (s *TicketService) domainAllowed(email string) bool {
	if len(s.allowedDomains) == 0 {
		return true
	}
	for _, d := range s.allowedDomains {
		if strings.HasSuffix(email, strings.ToLower(strings.TrimSpace(d))) {
			return true
		}
	}
	return false
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", domain.ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}
