package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	apperrors "github.com/dmsavelev/caloriebot/internal/errors"
	"github.com/dmsavelev/caloriebot/internal/storage"
)

func newTestLedger(t *testing.T) *LedgerService {
	t.Helper()
	dir := t.TempDir()
	store := storage.NewFileStorage(filepath.Join(dir, "products.json"), filepath.Join(dir, "user_data.json"))
	svc, err := NewLedgerService(context.Background(), store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestLedgerTotalEqualsHistorySum(t *testing.T) {
	ctx := context.Background()
	svc := newTestLedger(t)

	appends := []struct {
		product  string
		amount   int
		calories int
	}{
		{"яблоко", 150, 78},
		{"курица", 200, 330},
		{"яблоко", 100, 52},
	}
	for _, a := range appends {
		if _, err := svc.Append(ctx, "42", a.product, a.amount, a.calories, "2026-08-30"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	sum := 0
	for _, e := range svc.GetHistory(ctx, "42", 0) {
		sum += e.Calories
	}
	if total := svc.GetTotal(ctx, "42"); total != sum {
		t.Errorf("total %d does not equal history sum %d", total, sum)
	}
	if total := svc.GetTotal(ctx, "42"); total != 460 {
		t.Errorf("expected total 460, got %d", total)
	}
}

func TestLedgerAppendRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	svc := newTestLedger(t)

	for _, amount := range []int{0, -50} {
		if _, err := svc.Append(ctx, "1", "яблоко", amount, 0, "2026-08-30"); !errors.Is(err, apperrors.ErrInvalidAmount) {
			t.Errorf("amount %d: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if total := svc.GetTotal(ctx, "1"); total != 0 {
		t.Errorf("rejected append must not change total, got %d", total)
	}
}

func TestLedgerResetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestLedger(t)

	svc.Append(ctx, "7", "шоколад", 100, 546, "2026-08-30")
	svc.Reset(ctx, "7")
	svc.Reset(ctx, "7")

	if total := svc.GetTotal(ctx, "7"); total != 0 {
		t.Errorf("expected total 0 after reset, got %d", total)
	}
	if history := svc.GetHistory(ctx, "7", 0); len(history) != 0 {
		t.Errorf("expected empty history after reset, got %d entries", len(history))
	}
}

func TestLedgerGetTotalDoesNotCreateAccount(t *testing.T) {
	ctx := context.Background()
	svc := newTestLedger(t)

	if total := svc.GetTotal(ctx, "nobody"); total != 0 {
		t.Errorf("expected 0 for absent account, got %d", total)
	}
	if history := svc.GetHistory(ctx, "nobody", 10); history != nil {
		t.Errorf("expected nil history for absent account, got %v", history)
	}
}

func TestLedgerHistoryLimit(t *testing.T) {
	ctx := context.Background()
	svc := newTestLedger(t)

	for i := 0; i < 15; i++ {
		if _, err := svc.Append(ctx, "9", "яблоко", 100, 52, "2026-08-30"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if history := svc.GetHistory(ctx, "9", 10); len(history) != 10 {
		t.Errorf("expected last 10 entries, got %d", len(history))
	}
	if history := svc.GetHistory(ctx, "9", 0); len(history) != 15 {
		t.Errorf("expected full history with limit 0, got %d", len(history))
	}
}

func TestLedgerEnsureAccountIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestLedger(t)

	svc.EnsureAccount(ctx, "5")
	svc.Append(ctx, "5", "яблоко", 100, 52, "2026-08-30")
	svc.EnsureAccount(ctx, "5")

	if total := svc.GetTotal(ctx, "5"); total != 52 {
		t.Errorf("EnsureAccount must not reset an existing account, got total %d", total)
	}
}
