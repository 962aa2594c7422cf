package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/shramba/internal/model"
)

const shoppingColumns = `id, name, quantity, unit, store_id, barcode, aisle, linked_item_id,
	last_storage_area_id, last_location_zone_id, is_completed, recipe_group_id,
	created_at, updated_at`

func scanShoppingItem(s scanner) (*model.ShoppingListItem, error) {
	entry := &model.ShoppingListItem{}
	var storeID, barcode, aisle, linkedID, lastArea, lastZone, groupID sql.NullString
	err := s.Scan(&entry.ID, &entry.Name, &entry.Quantity, &entry.Unit, &storeID, &barcode,
		&aisle, &linkedID, &lastArea, &lastZone, &entry.IsCompleted, &groupID,
		&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}
	entry.StoreID = storeID.String
	entry.Barcode = barcode.String
	entry.Aisle = aisle.String
	entry.LinkedItemID = linkedID.String
	entry.LastStorageAreaID = lastArea.String
	entry.LastLocationZoneID = lastZone.String
	entry.RecipeGroupID = groupID.String
	return entry, nil
}

// CreateShoppingItem adds an entry to the shopping list.
func CreateShoppingItem(ctx context.Context, db *sql.DB, entry model.ShoppingListItem) (*model.ShoppingListItem, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := CreateShoppingItemTx(ctx, tx, entry)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing shopping item: %w", err)
	}

	return GetShoppingItem(ctx, db, id)
}

// CreateShoppingItemTx inserts a shopping-list entry within an existing
// transaction and returns its new ID.
func CreateShoppingItemTx(ctx context.Context, tx *sql.Tx, entry model.ShoppingListItem) (string, error) {
	if entry.Name == "" {
		return "", fmt.Errorf("shopping item name is required")
	}
	if entry.Quantity <= 0 {
		return "", fmt.Errorf("quantity must be positive")
	}

	id := uuid.NewString()
	_, err := tx.ExecContext(ctx,
		`INSERT INTO shopping_list (id, name, quantity, unit, store_id, barcode, aisle, recipe_group_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, entry.Name, entry.Quantity, entry.Unit, nullable(entry.StoreID),
		nullable(entry.Barcode), nullable(entry.Aisle), nullable(entry.RecipeGroupID),
	)
	if err != nil {
		return "", fmt.Errorf("creating shopping item: %w", err)
	}

	return id, nil
}

// GetShoppingItem returns a shopping-list entry by ID.
func GetShoppingItem(ctx context.Context, db *sql.DB, id string) (*model.ShoppingListItem, error) {
	entry, err := scanShoppingItem(db.QueryRowContext(ctx,
		`SELECT `+shoppingColumns+` FROM shopping_list WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting shopping item: %w", err)
	}
	return entry, nil
}

// ListShoppingItems returns the whole shopping list, incomplete entries first.
func ListShoppingItems(ctx context.Context, db *sql.DB) ([]model.ShoppingListItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+shoppingColumns+` FROM shopping_list ORDER BY is_completed, created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing shopping items: %w", err)
	}
	defer rows.Close()

	var entries []model.ShoppingListItem
	for rows.Next() {
		entry, err := scanShoppingItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning shopping item: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// UpdateShoppingItem updates an entry's editable fields.
func UpdateShoppingItem(ctx context.Context, db *sql.DB, entry model.ShoppingListItem) (*model.ShoppingListItem, error) {
	if entry.Name == "" {
		return nil, fmt.Errorf("shopping item name is required")
	}
	if entry.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	result, err := db.ExecContext(ctx,
		`UPDATE shopping_list SET name = ?, quantity = ?, unit = ?, store_id = ?, barcode = ?,
		        aisle = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		entry.Name, entry.Quantity, entry.Unit, nullable(entry.StoreID),
		nullable(entry.Barcode), nullable(entry.Aisle), entry.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating shopping item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, nil
	}
	return GetShoppingItem(ctx, db, entry.ID)
}

// ToggleShoppingItem flips an entry's completed flag.
func ToggleShoppingItem(ctx context.Context, db *sql.DB, id string) (*model.ShoppingListItem, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE shopping_list SET is_completed = NOT is_completed, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("toggling shopping item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, nil
	}
	return GetShoppingItem(ctx, db, id)
}

// DeleteShoppingItem removes an entry from the shopping list.
func DeleteShoppingItem(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM shopping_list WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting shopping item: %w", err)
	}
	return nil
}

// ClearCompletedItems removes all completed entries and prunes recipe groups
// left without entries.
func ClearCompletedItems(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shopping_list WHERE is_completed`); err != nil {
		return fmt.Errorf("clearing completed items: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_groups
		 WHERE id NOT IN (SELECT recipe_group_id FROM shopping_list WHERE recipe_group_id IS NOT NULL)`,
	); err != nil {
		return fmt.Errorf("pruning empty recipe groups: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing clear: %w", err)
	}
	return nil
}

// AddCompletedItemToInventory converts a shopping-list entry into an inventory
// item in the given area and removes the entry, both in one transaction. The
// new item inherits the entry's name, quantity, unit, barcode, aisle and store.
func AddCompletedItemToInventory(ctx context.Context, db *sql.DB, shoppingID, areaID, zoneID, expirationDate string) (*model.Item, error) {
	if areaID == "" {
		return nil, fmt.Errorf("storage area is required")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	entry, err := scanShoppingItem(tx.QueryRowContext(ctx,
		`SELECT `+shoppingColumns+` FROM shopping_list WHERE id = ?`, shoppingID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting shopping item: %w", err)
	}

	itemID := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (id, name, barcode, quantity, unit, expiration_date, storage_area_id,
		                    location_zone_id, default_store_id, aisle)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		itemID, entry.Name, nullable(entry.Barcode), entry.Quantity, entry.Unit,
		nullable(expirationDate), areaID, nullable(zoneID), nullable(entry.StoreID),
		nullable(entry.Aisle),
	)
	if err != nil {
		return nil, fmt.Errorf("creating inventory item: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM shopping_list WHERE id = ?`, shoppingID); err != nil {
		return nil, fmt.Errorf("removing shopping item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing conversion: %w", err)
	}

	return GetItem(ctx, db, itemID)
}

// CreateRecipeGroup creates a recipe group and its shopping-list entries in
// one transaction.
func CreateRecipeGroup(ctx context.Context, db *sql.DB, title string, entries []model.ShoppingListItem) (*model.RecipeGroup, error) {
	if title == "" {
		return nil, fmt.Errorf("recipe title is required")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	groupID := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO recipe_groups (id, title) VALUES (?, ?)`, groupID, title,
	); err != nil {
		return nil, fmt.Errorf("creating recipe group: %w", err)
	}

	for _, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("shopping item name is required")
		}
		if entry.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be positive")
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO shopping_list (id, name, quantity, unit, store_id, barcode, aisle, recipe_group_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), entry.Name, entry.Quantity, entry.Unit, nullable(entry.StoreID),
			nullable(entry.Barcode), nullable(entry.Aisle), groupID,
		)
		if err != nil {
			return nil, fmt.Errorf("creating recipe shopping item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing recipe group: %w", err)
	}

	return GetRecipeGroup(ctx, db, groupID)
}

// GetRecipeGroup returns a recipe group by ID.
func GetRecipeGroup(ctx context.Context, db *sql.DB, id string) (*model.RecipeGroup, error) {
	group := &model.RecipeGroup{}
	err := db.QueryRowContext(ctx,
		`SELECT id, title, is_expanded, created_at FROM recipe_groups WHERE id = ?`, id,
	).Scan(&group.ID, &group.Title, &group.IsExpanded, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting recipe group: %w", err)
	}
	return group, nil
}

// ListRecipeGroups returns all recipe groups, oldest first.
func ListRecipeGroups(ctx context.Context, db *sql.DB) ([]model.RecipeGroup, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, is_expanded, created_at FROM recipe_groups ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recipe groups: %w", err)
	}
	defer rows.Close()

	var groups []model.RecipeGroup
	for rows.Next() {
		var group model.RecipeGroup
		if err := rows.Scan(&group.ID, &group.Title, &group.IsExpanded, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning recipe group: %w", err)
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

// ToggleRecipeGroup flips a group's expanded flag.
func ToggleRecipeGroup(ctx context.Context, db *sql.DB, id string) (*model.RecipeGroup, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE recipe_groups SET is_expanded = NOT is_expanded WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("toggling recipe group: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, nil
	}
	return GetRecipeGroup(ctx, db, id)
}

// DeleteRecipeGroup removes a group and its shopping-list entries.
func DeleteRecipeGroup(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM recipe_groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting recipe group: %w", err)
	}
	return nil
}
