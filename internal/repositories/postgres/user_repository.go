package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkondo/giveaway/internal/entities"
	"github.com/mkondo/giveaway/internal/repositories"
)

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db *sql.DB
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *sql.DB) repositories.UserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `
	id, username, password_hash, COALESCE(email, ''),
	COALESCE(phone, ''), COALESCE(address, ''), role, status
`

// List retrieves users matching the filter in ID order
func (r *PostgresUserRepository) List(ctx context.Context, filter repositories.UserFilter) ([]*entities.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE 1=1
	`
	var args []interface{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		query += fmt.Sprintf(" AND (username ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", len(args), len(args), len(args))
	}

	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// GetByID retrieves one user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByLogin retrieves a user whose username or email matches login
func (r *PostgresUserRepository) GetByLogin(ctx context.Context, login string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, login))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create stores a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	query := `
		INSERT INTO users (username, password_hash, email, phone, address, role, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.Email,
		user.Phone, user.Address, user.Role, user.Status,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &entities.NameConflictError{Name: user.Username}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// UpdateProfile updates the user's phone and address
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id int, phone, address string) error {
	query := `UPDATE users SET phone = $1, address = $2 WHERE id = $3`
	return r.exec(ctx, query, phone, address, id)
}

// UpdateStatus sets the user's approval status
func (r *PostgresUserRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	query := `UPDATE users SET status = $1 WHERE id = $2`
	return r.exec(ctx, query, status, id)
}

// UpdateRole sets the user's role
func (r *PostgresUserRepository) UpdateRole(ctx context.Context, id int, role string) error {
	query := `UPDATE users SET role = $1 WHERE id = $2`
	return r.exec(ctx, query, role, id)
}

// Delete removes the user; the schema cascades to their items
func (r *PostgresUserRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = $1`
	return r.exec(ctx, query, id)
}

// exec runs a statement that must affect exactly one row
func (r *PostgresUserRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}

func scanUser(row rowScanner) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Email,
		&user.Phone, &user.Address, &user.Role, &user.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}
