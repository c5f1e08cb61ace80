package state

import "sync"

// Pending states: what kind of input the bot expects next from a user.
const (
	None                      = "none"
	WaitingForAmount          = "waiting_for_amount"
	WaitingForNewProduct      = "waiting_for_new_product"
	WaitingForReplaceConfirm  = "waiting_for_replace_confirm"
	WaitingForProductToRemove = "waiting_for_product_to_remove"
)

// Pending is the conversational continuation attached to a user: the
// expected next input plus the payload carried into it.
type Pending struct {
	State   string `json:"state"`
	Product string `json:"product,omitempty"`
	Kcal    int    `json:"kcal,omitempty"`
}

// StateManager manages per-user pending states
type StateManager interface {
	SetUserState(userID int64, pending Pending)
	GetUserState(userID int64) Pending
	ClearUserState(userID int64)
}

// Manager is the in-memory state manager
type Manager struct {
	pending map[int64]Pending
	mu      sync.RWMutex
}

// NewManager creates a new in-memory state manager
func NewManager() *Manager {
	return &Manager{
		pending: make(map[int64]Pending),
	}
}

// SetUserState sets the pending state for a user
func (m *Manager) SetUserState(userID int64, pending Pending) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[userID] = pending
}

// GetUserState gets the pending state for a user
func (m *Manager) GetUserState(userID int64) Pending {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pending, exists := m.pending[userID]
	if !exists {
		return Pending{State: None}
	}
	return pending
}

// ClearUserState clears the pending state for a user
func (m *Manager) ClearUserState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, userID)
}
