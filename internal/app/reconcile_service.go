package app

import "context"

type ReconcileRepository interface {
	SumTicketQuantity(ctx context.Context, eventID int64) (int, error)
	GetTicketsSold(ctx context.Context, eventID int64) (int, error)
	UpdateTicketsSold(ctx context.Context, eventID int64, sold int) error
	ListEventIDs(ctx context.Context) ([]int64, error)
}

// CounterCache mirrors reconciled sold counters for display reads. It is
// never consulted for capacity decisions; errors degrade to the stored value.
type CounterCache interface {
	SetSoldCount(ctx context.Context, eventID int64, sold int) error
	GetSoldCount(ctx context.Context, eventID int64) (int, bool, error)
}

// CounterCorrection reports one reconciliation pass over an event.
type CounterCorrection struct {
	EventID   int64 `json:"event_id"`
	Stored    int   `json:"stored"`
	Actual    int   `json:"actual"`
	Corrected bool  `json:"corrected"`
}

// ReconcileService recomputes each event's sold counter from the order ledger
// and overwrites it on drift. It recovers the counter after edits that bypass
// the issuance engine: admin order deletion and restore from backup.
type ReconcileService struct {
	repo  ReconcileRepository
	cache CounterCache
}

func NewReconcileService(repo ReconcileRepository, cache CounterCache) *ReconcileService {
	return &ReconcileService{repo: repo, cache: cache}
}

func (s *ReconcileService) Reconcile(ctx context.Context, eventID int64) (CounterCorrection, error) {
	actual, err := s.repo.SumTicketQuantity(ctx, eventID)
	if err != nil {
		return CounterCorrection{}, err
	}
	stored, err := s.repo.GetTicketsSold(ctx, eventID)
	if err != nil {
		return CounterCorrection{}, err
	}

	correction := CounterCorrection{EventID: eventID, Stored: stored, Actual: actual}
	if stored != actual {
		if err := s.repo.UpdateTicketsSold(ctx, eventID, actual); err != nil {
			return CounterCorrection{}, err
		}
		correction.Corrected = true
	}

	if s.cache != nil {
		// Cache refresh is best effort; listings fall back to the column.
		_ = s.cache.SetSoldCount(ctx, eventID, actual)
	}
	return correction, nil
}

// ReconcileAll runs Reconcile for every catalog event. Used once after a full
// restore and on demand from the admin panel.
func (s *ReconcileService) ReconcileAll(ctx context.Context) ([]CounterCorrection, error) {
	ids, err := s.repo.ListEventIDs(ctx)
	if err != nil {
		return nil, err
	}

	corrections := make([]CounterCorrection, 0, len(ids))
	for _, id := range ids {
		c, err := s.Reconcile(ctx, id)
		if err != nil {
			return corrections, err
		}
		corrections = append(corrections, c)
	}
	return corrections, nil
}
