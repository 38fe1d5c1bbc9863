package state

import "sync"

// User states constants
const (
	None                = "none"
	WaitingForRecipeURL = "waiting_for_recipe_url"
	WaitingForServings  = "waiting_for_servings"
)

// Temp data keys
const (
	KeyRecipeID = "recipe_id"
)

// StateManager tracks per-user conversation state
type StateManager interface {
	SetUserState(userID int64, state string)
	GetUserState(userID int64) string
	ClearUserState(userID int64)
	SetTempData(userID int64, key string, value string)
	GetTempData(userID int64, key string) (string, bool)
	ClearTempData(userID int64)
}

// Manager manages user states and temporary data in memory
type Manager struct {
	userStates map[int64]string
	tempData   map[int64]map[string]string
	mu         sync.RWMutex
}

// NewManager creates a new state manager
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]string),
		tempData:   make(map[int64]map[string]string),
	}
}

// SetUserState sets the state for a user
func (m *Manager) SetUserState(userID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[userID] = state
}

// GetUserState gets the state for a user
func (m *Manager) GetUserState(userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[userID]
	if !exists {
		return None
	}
	return state
}

// ClearUserState clears the state for a user
func (m *Manager) ClearUserState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
}

// SetTempData sets temporary data for a user
func (m *Manager) SetTempData(userID int64, key string, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tempData[userID] == nil {
		m.tempData[userID] = make(map[string]string)
	}
	m.tempData[userID][key] = value
}

// GetTempData gets temporary data for a user
func (m *Manager) GetTempData(userID int64, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.tempData[userID][key]
	return value, exists
}

// ClearTempData clears all temporary data for a user
func (m *Manager) ClearTempData(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tempData, userID)
}
