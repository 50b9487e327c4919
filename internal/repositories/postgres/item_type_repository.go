package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mkondo/giveaway/internal/entities"
	"github.com/mkondo/giveaway/internal/repositories"
)

// PostgresItemTypeRepository implements ItemTypeRepository using PostgreSQL
type PostgresItemTypeRepository struct {
	db *sql.DB
}

// NewPostgresItemTypeRepository creates a new PostgreSQL item type repository
func NewPostgresItemTypeRepository(db *sql.DB) repositories.ItemTypeRepository {
	return &PostgresItemTypeRepository{db: db}
}

// List retrieves all item types in ID order
func (r *PostgresItemTypeRepository) List(ctx context.Context) ([]*entities.ItemType, error) {
	query := `
		SELECT id, name, attributes
		FROM item_types
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list item types: %w", err)
	}
	defer rows.Close()

	var types []*entities.ItemType
	for rows.Next() {
		t, err := scanItemType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item types: %w", err)
	}
	return types, nil
}

// GetByID retrieves one item type by ID
func (r *PostgresItemTypeRepository) GetByID(ctx context.Context, id int) (*entities.ItemType, error) {
	query := `
		SELECT id, name, attributes
		FROM item_types
		WHERE id = $1
	`
	t, err := scanItemType(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetByName retrieves one item type by its unique name
func (r *PostgresItemTypeRepository) GetByName(ctx context.Context, name string) (*entities.ItemType, error) {
	query := `
		SELECT id, name, attributes
		FROM item_types
		WHERE name = $1
	`
	t, err := scanItemType(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create stores a new item type. The type must already be well formed;
// duplicate attribute keys and duplicate names are rejected with typed
// conflict errors.
func (r *PostgresItemTypeRepository) Create(ctx context.Context, t *entities.ItemType) (*entities.ItemType, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	attrs, err := t.MarshalAttributes()
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO item_types (name, attributes)
		VALUES ($1, $2)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, t.Name, attrs).Scan(&t.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, &entities.NameConflictError{Name: t.Name}
		}
		return nil, fmt.Errorf("failed to create item type: %w", err)
	}
	return t, nil
}

// Update replaces the type's name and whole attribute list
func (r *PostgresItemTypeRepository) Update(ctx context.Context, t *entities.ItemType) (*entities.ItemType, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	attrs, err := t.MarshalAttributes()
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE item_types
		SET name = $1, attributes = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, t.Name, attrs, t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &entities.NameConflictError{Name: t.Name}
		}
		return nil, fmt.Errorf("failed to update item type: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, entities.ErrNotFound
	}
	return t, nil
}

// Delete removes the item type. No cascade: items keep their type_name.
func (r *PostgresItemTypeRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM item_types WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete item type: %w", err)
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

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItemType(row rowScanner) (*entities.ItemType, error) {
	var t entities.ItemType
	var attrs string
	if err := row.Scan(&t.ID, &t.Name, &attrs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan item type: %w", err)
	}
	if err := t.UnmarshalAttributes(attrs); err != nil {
		return nil, fmt.Errorf("item type %d: %w", t.ID, err)
	}
	return &t, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
