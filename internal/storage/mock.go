package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/aimarket/haggle-engine/pkg/level"
	"github.com/aimarket/haggle-engine/pkg/session"
	"github.com/aimarket/haggle-engine/pkg/user"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu        sync.RWMutex
	sessions  map[string]*session.NegotiationState
	levels    map[string]*level.Level
	pingError error
	saveError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		sessions: make(map[string]*session.NegotiationState),
		levels:   make(map[string]*level.Level),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures the mock to fail on SaveSession
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	return nil
}

// SaveSession mocks saving a session
func (m *MockStorage) SaveSession(ctx context.Context, s *session.NegotiationState) error {
	if s == nil {
		return errors.New("session cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.sessions[sessionKey(s.UserID, s.LevelID)] = s
	return nil
}

// LoadSession mocks loading a session
func (m *MockStorage) LoadSession(ctx context.Context, userID, levelID string) (*session.NegotiationState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, exists := m.sessions[sessionKey(userID, levelID)]
	if !exists {
		return nil, nil // Return nil for not found
	}
	return s, nil
}

// ListLevels mocks listing levels
func (m *MockStorage) ListLevels(ctx context.Context) ([]*level.Level, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*level.Level, 0, len(m.levels))
	for _, l := range m.levels {
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].RequiredPoints != result[j].RequiredPoints {
			return result[i].RequiredPoints < result[j].RequiredPoints
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// GetLevel mocks getting a level by ID
func (m *MockStorage) GetLevel(ctx context.Context, id string) (*level.Level, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, exists := m.levels[id]
	if !exists {
		return nil, nil
	}
	return l, nil
}

// AddLevel adds a level to the mock storage (for testing)
func (m *MockStorage) AddLevel(l *level.Level) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels[l.ID] = l
}

// MockUserStore is a mock implementation of UserStore for testing
type MockUserStore struct {
	mu        sync.RWMutex
	users     map[string]*user.User
	byEmail   map[string]string
	pingError error
}

// Ensure MockUserStore implements UserStore interface
var _ UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock user store
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users:   make(map[string]*user.User),
		byEmail: make(map[string]string),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockUserStore) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// Ping mocks user store ping
func (m *MockUserStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks user store close
func (m *MockUserStore) Close() error {
	return nil
}

// CreateUser mocks inserting a user
func (m *MockUserStore) CreateUser(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byEmail[u.Email]; exists {
		return ErrEmailTaken
	}
	m.users[u.ID] = u
	m.byEmail[u.Email] = u.ID
	return nil
}

// GetUser mocks getting a user by ID
func (m *MockUserStore) GetUser(ctx context.Context, id string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, exists := m.users[id]
	if !exists {
		return nil, nil // Return nil for not found
	}
	return u, nil
}

// GetUserByEmail mocks getting a user by email
func (m *MockUserStore) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, exists := m.byEmail[email]
	if !exists {
		return nil, nil
	}
	return m.users[id], nil
}

// AddPoints mocks crediting points
func (m *MockUserStore) AddPoints(ctx context.Context, id string, points int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, exists := m.users[id]
	if !exists {
		return errors.New("user not found: " + id)
	}
	u.TotalPoints += points
	return nil
}
