package storage

import (
	"context"

	"github.com/aimarket/haggle-engine/pkg/level"
	"github.com/aimarket/haggle-engine/pkg/session"
	"github.com/aimarket/haggle-engine/pkg/user"
)

// HealthChecker defines basic health check capabilities
type HealthChecker interface {
	// Ping tests the service connection
	Ping(ctx context.Context) error
}

// Closer defines cleanup capabilities
type Closer interface {
	// Close closes the service connection
	Close() error
}

// Storage defines the interface for negotiation session persistence
// and the level catalog.
type Storage interface {
	HealthChecker
	Closer

	// SaveSession persists a negotiation session.
	SaveSession(ctx context.Context, s *session.NegotiationState) error

	// LoadSession retrieves the session for a player x level pair.
	// Returns nil if no session exists yet.
	LoadSession(ctx context.Context, userID, levelID string) (*session.NegotiationState, error)

	// ListLevels returns the level catalog sorted by required points.
	ListLevels(ctx context.Context) ([]*level.Level, error)

	// GetLevel retrieves one level by ID. Returns nil if it doesn't exist.
	GetLevel(ctx context.Context, id string) (*level.Level, error)
}

// UserStore defines the interface for user account persistence.
type UserStore interface {
	HealthChecker
	Closer

	// CreateUser inserts a new user. Fails when the email is taken.
	CreateUser(ctx context.Context, u *user.User) error

	// GetUser retrieves a user by ID. Returns nil if not found.
	GetUser(ctx context.Context, id string) (*user.User, error)

	// GetUserByEmail retrieves a user by email. Returns nil if not found.
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)

	// AddPoints credits points to a user's running total.
	AddPoints(ctx context.Context, id string, points int) error
}
