package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fleetwatch/fleetwatch/pkg/models"
)

const selectUserSQL = `
SELECT id, email, password_hash, organization_id, created_at
FROM users
WHERE id = $1`

const selectUserByEmailSQL = `
SELECT id, email, password_hash, organization_id, created_at
FROM users
WHERE email = $1`

const insertUserSQL = `
INSERT INTO users (id, email, password_hash, organization_id, created_at)
VALUES ($1, $2, $3, $4, $5)`

// GetUser fetches an operator account by id.
func (db *DB) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return scanUser(db.pool.QueryRow(ctx, selectUserSQL, userID))
}

// GetUserByEmail fetches an operator account by email for login.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(db.pool.QueryRow(ctx, selectUserByEmailSQL, email))
}

// CreateUser inserts an operator account.
func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return ErrUserNil
	}

	id := strings.TrimSpace(user.ID)
	if id == "" {
		id = uuid.New().String()
		user.ID = id
	}

	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = nowUTC()
	}

	var orgID interface{}
	if user.OrganizationID != "" {
		orgID = user.OrganizationID
	}

	if _, err := db.pool.Exec(ctx, insertUserSQL, id, user.Email, user.PasswordHash, orgID, createdAt.UTC()); err != nil {
		return fmt.Errorf("%w user: %w", ErrFailedToInsert, err)
	}

	return nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		user  models.User
		orgID *string
	)

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &orgID, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w user row: %w", ErrFailedToScan, err)
	}

	if orgID != nil {
		user.OrganizationID = *orgID
	}

	return &user, nil
}
