package cards

import (
	"context"
	"errors"
	"time"
)

// ErrRegisterNumberRequired rejects an accept without a register number.
var ErrRegisterNumberRequired = errors.New("registerNumber is required")

// ErrAlreadyAccepted rejects a second accept for a register number that is
// already in the accepted collection. This is the idempotent retry key that
// bounds duplication from client retries; two truly concurrent first accepts
// can still both pass the guard.
var ErrAlreadyAccepted = errors.New("register number already accepted")

// Store is the storage capability the service needs: collection-scoped
// find/insert/delete. Implemented by Repository; faked in tests.
type Store interface {
	ListPrintRequests(ctx context.Context) ([]PrintRequest, error)
	ListAccepted(ctx context.Context) ([]AcceptedIDCard, error)
	ListHistory(ctx context.Context) ([]AcceptanceHistory, error)
	InsertAccepted(ctx context.Context, card AcceptedIDCard) (AcceptedIDCard, error)
	DeletePrintRequests(ctx context.Context, registerNumber string) (int64, error)
	AcceptedExists(ctx context.Context, registerNumber string) (bool, error)
	AdminExists(ctx context.Context, adminID string) (bool, error)
}

// Service coordinates the card lifecycle and the login check.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Accept transitions one record from pending-print to accepted: default the
// status and acceptance time, insert the accepted copy, then delete the
// pending copies matching the register number. The two steps are not atomic;
// the accepted copy is guaranteed to exist before the pending one is removed,
// so a partial failure duplicates rather than loses the record. A storage
// error from either step is returned as-is; the caller surfaces it verbatim.
func (s *Service) Accept(ctx context.Context, card AcceptedIDCard) (AcceptedIDCard, error) {
	if card.RegisterNumber == "" {
		return AcceptedIDCard{}, ErrRegisterNumberRequired
	}

	exists, err := s.store.AcceptedExists(ctx, card.RegisterNumber)
	if err != nil {
		return AcceptedIDCard{}, err
	}
	if exists {
		return AcceptedIDCard{}, ErrAlreadyAccepted
	}

	if card.Status == "" {
		card.Status = StatusAccepted
	}
	if card.AcceptedAt.IsZero() {
		card.AcceptedAt = s.now().UTC()
	}

	saved, err := s.store.InsertAccepted(ctx, card)
	if err != nil {
		return AcceptedIDCard{}, err
	}

	// Zero or multiple deletions are both fine; only a storage error matters,
	// and by now the accepted copy is already durable.
	if _, err := s.store.DeletePrintRequests(ctx, card.RegisterNumber); err != nil {
		return saved, err
	}
	return saved, nil
}

// Login reports whether adminID exactly matches an allow-list entry.
func (s *Service) Login(ctx context.Context, adminID string) (bool, error) {
	return s.store.AdminExists(ctx, adminID)
}

// ListPrintRequests returns all pending print requests.
func (s *Service) ListPrintRequests(ctx context.Context) ([]PrintRequest, error) {
	return s.store.ListPrintRequests(ctx)
}

// ListAccepted returns all accepted ID cards.
func (s *Service) ListAccepted(ctx context.Context) ([]AcceptedIDCard, error) {
	return s.store.ListAccepted(ctx)
}

// ListHistory returns the acceptance audit trail.
func (s *Service) ListHistory(ctx context.Context) ([]AcceptanceHistory, error) {
	return s.store.ListHistory(ctx)
}
