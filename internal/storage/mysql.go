package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/aimarket/haggle-engine/pkg/user"
)

// ErrEmailTaken is returned by CreateUser when the email is already
// registered.
var ErrEmailTaken = errors.New("email already registered")

const mysqlDuplicateEntry = 1062

const usersSchema = `CREATE TABLE IF NOT EXISTS users (
	id CHAR(26) PRIMARY KEY,
	username VARCHAR(64) NOT NULL,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	total_points INT NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	UNIQUE KEY idx_users_email (email)
)`

// MySQLUserStore implements UserStore on MySQL.
type MySQLUserStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure MySQLUserStore implements UserStore interface
var _ UserStore = (*MySQLUserStore)(nil)

// NewMySQLUserStore opens a MySQL connection pool and ensures the
// users table exists.
func NewMySQLUserStore(dsn string, logger *slog.Logger) (*MySQLUserStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	store := &MySQLUserStore{db: db, logger: logger}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *MySQLUserStore) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, usersSchema); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

func (s *MySQLUserStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("mysql ping failed: %w", err)
	}
	return nil
}

func (s *MySQLUserStore) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close MySQL connection", "error", err)
		return err
	}
	s.logger.Info("MySQL connection closed")
	return nil
}

func (s *MySQLUserStore) CreateUser(ctx context.Context, u *user.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, total_points, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, u.ID, u.Username, u.Email, u.PasswordHash, u.TotalPoints, u.CreatedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return ErrEmailTaken
		}
		s.logger.Error("Failed to insert user", "email", u.Email, "error", err)
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *MySQLUserStore) GetUser(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT id, username, email, password_hash, total_points, created_at FROM users WHERE id = ?`
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *MySQLUserStore) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT id, username, email, password_hash, total_points, created_at FROM users WHERE email = ?`
	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *MySQLUserStore) scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.TotalPoints, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Return nil for not found
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func (s *MySQLUserStore) AddPoints(ctx context.Context, id string, points int) error {
	query := `UPDATE users SET total_points = total_points + ? WHERE id = ?`
	res, err := s.db.ExecContext(ctx, query, points, id)
	if err != nil {
		s.logger.Error("Failed to add points", "user_id", id, "error", err)
		return fmt.Errorf("failed to add points: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}
