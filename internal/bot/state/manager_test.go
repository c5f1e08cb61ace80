package state

import (
	"sync"
	"testing"
)

func TestManagerDefaultsToNone(t *testing.T) {
	m := NewManager()
	if got := m.GetUserState(1); got.State != None {
		t.Errorf("expected %q for unknown user, got %+v", None, got)
	}
}

func TestManagerSetGetClear(t *testing.T) {
	m := NewManager()
	m.SetUserState(1, Pending{State: WaitingForReplaceConfirm, Product: "банан", Kcal: 95})

	got := m.GetUserState(1)
	if got.State != WaitingForReplaceConfirm || got.Product != "банан" || got.Kcal != 95 {
		t.Errorf("unexpected pending: %+v", got)
	}

	// Other users are unaffected.
	if got := m.GetUserState(2); got.State != None {
		t.Errorf("expected %q for other user, got %+v", None, got)
	}

	m.ClearUserState(1)
	if got := m.GetUserState(1); got.State != None {
		t.Errorf("expected %q after clear, got %+v", None, got)
	}
}

func TestManagerOverwrite(t *testing.T) {
	m := NewManager()
	m.SetUserState(1, Pending{State: WaitingForAmount, Product: "яблоко"})
	m.SetUserState(1, Pending{State: WaitingForNewProduct})

	got := m.GetUserState(1)
	if got.State != WaitingForNewProduct || got.Product != "" {
		t.Errorf("expected overwritten pending, got %+v", got)
	}
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.SetUserState(id, Pending{State: WaitingForAmount, Product: "яблоко"})
			m.GetUserState(id)
			m.ClearUserState(id)
		}(int64(i))
	}
	wg.Wait()
}
