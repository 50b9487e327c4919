package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkondo/giveaway/internal/entities"
	"github.com/mkondo/giveaway/internal/repositories"
)

// PostgresItemRepository implements ItemRepository using PostgreSQL
type PostgresItemRepository struct {
	db *sql.DB
}

// NewPostgresItemRepository creates a new PostgreSQL item repository
func NewPostgresItemRepository(db *sql.DB) repositories.ItemRepository {
	return &PostgresItemRepository{db: db}
}

const itemColumns = `
	i.id, i.type_name, i.owner_id, u.username, i.name, i.description,
	COALESCE(i.address, ''), COALESCE(i.phone, ''), COALESCE(i.email, ''),
	i.attributes, i.status, i.created_at
`

// List retrieves items matching the filter, newest first
func (r *PostgresItemRepository) List(ctx context.Context, filter repositories.ItemFilter) ([]*entities.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items i
		JOIN users u ON u.id = i.owner_id
		WHERE 1=1
	`
	var args []interface{}

	if filter.TypeName != "" {
		args = append(args, filter.TypeName)
		query += fmt.Sprintf(" AND i.type_name = $%d", len(args))
	}
	if filter.OwnerID != 0 {
		args = append(args, filter.OwnerID)
		query += fmt.Sprintf(" AND i.owner_id = $%d", len(args))
	}
	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		query += fmt.Sprintf(" AND (i.name ILIKE $%d OR i.description ILIKE $%d)", len(args), len(args))
	}

	query += " ORDER BY i.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*entities.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// GetByID retrieves one item with the owner's username joined in
func (r *PostgresItemRepository) GetByID(ctx context.Context, id int) (*entities.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items i
		JOIN users u ON u.id = i.owner_id
		WHERE i.id = $1
	`
	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Create stores a new item. The attribute bag is stored verbatim: this
// layer accepts any bag.
func (r *PostgresItemRepository) Create(ctx context.Context, item *entities.Item) (*entities.Item, error) {
	bag, err := entities.MarshalValueBag(item.Attributes)
	if err != nil {
		return nil, err
	}

	if item.Status == "" {
		item.Status = entities.ItemStatusAvailable
	}

	query := `
		INSERT INTO items (type_name, owner_id, name, description, address, phone, email, attributes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err = r.db.QueryRowContext(ctx, query,
		item.TypeName, item.OwnerID, item.Name, item.Description,
		item.Address, item.Phone, item.Email, bag, item.Status,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

// Update replaces the item's editable fields and its whole attribute bag
func (r *PostgresItemRepository) Update(ctx context.Context, item *entities.Item) (*entities.Item, error) {
	bag, err := entities.MarshalValueBag(item.Attributes)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE items
		SET name = $1, description = $2, address = $3, attributes = $4, status = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Description, item.Address, bag, item.Status, item.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, entities.ErrNotFound
	}
	return item, nil
}

// Delete removes the item
func (r *PostgresItemRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM items WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
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

func scanItem(row rowScanner) (*entities.Item, error) {
	var item entities.Item
	var bag string
	err := row.Scan(
		&item.ID, &item.TypeName, &item.OwnerID, &item.Owner,
		&item.Name, &item.Description, &item.Address, &item.Phone,
		&item.Email, &bag, &item.Status, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}

	attrs, err := entities.UnmarshalValueBag(bag)
	if err != nil {
		return nil, fmt.Errorf("item %d: failed to unmarshal attributes: %w", item.ID, err)
	}
	item.Attributes = attrs
	return &item, nil
}
