package services

import (
	"context"
	"sync"

	"github.com/dmsavelev/caloriebot/internal/domain"
	apperrors "github.com/dmsavelev/caloriebot/internal/errors"
	"github.com/dmsavelev/caloriebot/internal/logger"
	"github.com/dmsavelev/caloriebot/internal/storage"
)

// LedgerService owns the per-user consumption ledger. The running total
// is maintained incrementally and always equals the sum of the history's
// calories: append and reset mutate both together.
type LedgerService struct {
	mu    sync.RWMutex
	users map[string]*domain.UserAccount
	store storage.Storage
}

// NewLedgerService loads the ledger from storage.
func NewLedgerService(ctx context.Context, store storage.Storage) (*LedgerService, error) {
	users, err := store.LoadUsers(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return &LedgerService{users: users, store: store}, nil
}

// EnsureAccount creates a zero-value account if absent. Idempotent.
func (s *LedgerService) EnsureAccount(ctx context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; ok {
		return
	}
	s.users[userID] = &domain.UserAccount{History: []domain.ConsumptionEntry{}}
	s.persist(ctx)
}

// Append records a consumption entry and increments the user's total.
// Returns the new total.
func (s *LedgerService) Append(ctx context.Context, userID, product string, amount, calories int, date string) (int, error) {
	if amount <= 0 {
		return 0, apperrors.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.users[userID]
	if !ok {
		acc = &domain.UserAccount{History: []domain.ConsumptionEntry{}}
		s.users[userID] = acc
	}

	acc.History = append(acc.History, domain.ConsumptionEntry{
		Product:  product,
		Amount:   amount,
		Calories: calories,
		Date:     date,
	})
	acc.Total += calories
	s.persist(ctx)
	return acc.Total, nil
}

// Reset zeroes the total and clears the history together. Idempotent.
func (s *LedgerService) Reset(ctx context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[userID] = &domain.UserAccount{History: []domain.ConsumptionEntry{}}
	s.persist(ctx)
}

// GetTotal returns the user's running total; 0 for an absent account,
// which is not created implicitly.
func (s *LedgerService) GetTotal(ctx context.Context, userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.users[userID]
	if !ok {
		return 0
	}
	return acc.Total
}

// GetHistory returns the last limit entries in chronological order. A
// non-positive limit returns the whole history.
func (s *LedgerService) GetHistory(ctx context.Context, userID string, limit int) []domain.ConsumptionEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.users[userID]
	if !ok {
		return nil
	}

	history := acc.History
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	out := make([]domain.ConsumptionEntry, len(history))
	copy(out, history)
	return out
}

func (s *LedgerService) persist(ctx context.Context) {
	if err := s.store.SaveUsers(ctx, s.users); err != nil {
		logger.Error("Failed to persist ledger", "error", err)
	}
}
