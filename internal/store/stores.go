package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/shramba/internal/model"
)

// CreateStore creates a grocery store, positioned after existing stores.
func CreateStore(ctx context.Context, db *sql.DB, name, icon, color string) (*model.GroceryStore, error) {
	if name == "" {
		return nil, fmt.Errorf("store name is required")
	}

	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO grocery_stores (id, name, icon, color, position)
		 VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(position) + 1, 0) FROM grocery_stores))`,
		id, name, nullable(icon), nullable(color),
	)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	return GetStore(ctx, db, id)
}

// GetStore returns a grocery store by ID.
func GetStore(ctx context.Context, db *sql.DB, id string) (*model.GroceryStore, error) {
	s := &model.GroceryStore{}
	var icon, color sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, icon, color, position, created_at, updated_at
		 FROM grocery_stores WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &icon, &color, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting store: %w", err)
	}
	s.Icon = icon.String
	s.Color = color.String
	return s, nil
}

// ListStores returns all grocery stores in display order.
func ListStores(ctx context.Context, db *sql.DB) ([]model.GroceryStore, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, icon, color, position, created_at, updated_at
		 FROM grocery_stores ORDER BY position, created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing stores: %w", err)
	}
	defer rows.Close()

	var stores []model.GroceryStore
	for rows.Next() {
		var s model.GroceryStore
		var icon, color sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &icon, &color, &s.Position, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning store: %w", err)
		}
		s.Icon = icon.String
		s.Color = color.String
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

// UpdateStore updates a grocery store's metadata.
func UpdateStore(ctx context.Context, db *sql.DB, id, name, icon, color string) (*model.GroceryStore, error) {
	if name == "" {
		return nil, fmt.Errorf("store name is required")
	}

	result, err := db.ExecContext(ctx,
		`UPDATE grocery_stores SET name = ?, icon = ?, color = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		name, nullable(icon), nullable(color), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating store: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, nil
	}
	return GetStore(ctx, db, id)
}

// DeleteStore removes a grocery store. Shopping-list entries assigned to it
// move to the first remaining store, or lose their store assignment when none
// remain.
func DeleteStore(ctx context.Context, db *sql.DB, id string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM grocery_stores WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting store: %w", err)
	}

	var fallback sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM grocery_stores ORDER BY position, created_at LIMIT 1`,
	).Scan(&fallback)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("finding fallback store: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE shopping_list SET store_id = ?, updated_at = CURRENT_TIMESTAMP WHERE store_id = ?`,
		nullString(fallback), id,
	)
	if err != nil {
		return fmt.Errorf("reassigning shopping items: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing store delete: %w", err)
	}
	return nil
}
