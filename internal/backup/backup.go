// Package backup exports and imports inventory data as a JSON document.
package backup

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// Version is the backup document format version.
const Version = "1.0"

// Document is the on-disk backup format.
type Document struct {
	Version    string    `json:"version"`
	ExportDate time.Time `json:"export_date"`
	Inventory  Section   `json:"inventory"`
	Shopping   Section   `json:"shopping"`
}

// Section holds one collection and its count.
type Section struct {
	Items     json.RawMessage `json:"items"`
	ItemCount int             `json:"item_count"`
}

// Summary reports what an import brought in.
type Summary struct {
	InventoryItems int `json:"inventory_items"`
	ShoppingItems  int `json:"shopping_items"`
}

// Export captures the whole inventory, disposed rows included so waste
// analytics survive a restore, plus the shopping list.
func Export(ctx context.Context, db *sql.DB) (*Document, error) {
	items, err := store.ListAllItems(ctx, db)
	if err != nil {
		return nil, err
	}
	shopping, err := store.ListShoppingItems(ctx, db)
	if err != nil {
		return nil, err
	}

	inventoryRaw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding inventory: %w", err)
	}
	shoppingRaw, err := json.Marshal(shopping)
	if err != nil {
		return nil, fmt.Errorf("encoding shopping list: %w", err)
	}

	return &Document{
		Version:    Version,
		ExportDate: time.Now().UTC(),
		Inventory:  Section{Items: inventoryRaw, ItemCount: len(items)},
		Shopping:   Section{Items: shoppingRaw, ItemCount: len(shopping)},
	}, nil
}

// Parse reads and validates a backup document. Documents missing the version
// or either section are rejected before any data is touched.
func Parse(r io.Reader) (*Document, error) {
	var probe struct {
		Version   *string          `json:"version"`
		Inventory *json.RawMessage `json:"inventory"`
		Shopping  *json.RawMessage `json:"shopping"`
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("invalid backup file format")
	}
	if probe.Version == nil || *probe.Version == "" || probe.Inventory == nil || probe.Shopping == nil {
		return nil, fmt.Errorf("invalid backup file format")
	}

	doc := &Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("invalid backup file format")
	}
	return doc, nil
}

// Import replaces the current inventory and shopping list with the document's
// contents, all in one transaction: a document that fails to insert leaves the
// existing data untouched. Imported records get fresh IDs; links between
// disposed items and their shopping successors do not survive the round trip.
func Import(ctx context.Context, db *sql.DB, doc *Document) (*Summary, error) {
	var items []model.Item
	if len(doc.Inventory.Items) > 0 {
		if err := json.Unmarshal(doc.Inventory.Items, &items); err != nil {
			return nil, fmt.Errorf("invalid backup file format")
		}
	}
	var shopping []model.ShoppingListItem
	if len(doc.Shopping.Items) > 0 {
		if err := json.Unmarshal(doc.Shopping.Items, &shopping); err != nil {
			return nil, fmt.Errorf("invalid backup file format")
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shopping_list`); err != nil {
		return nil, fmt.Errorf("clearing shopping list: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_groups`); err != nil {
		return nil, fmt.Errorf("clearing recipe groups: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return nil, fmt.Errorf("clearing items: %w", err)
	}

	summary := &Summary{}
	for _, item := range items {
		if _, err := store.CreateItemTx(ctx, tx, item); err != nil {
			return nil, fmt.Errorf("importing item %q: %w", item.Name, err)
		}
		summary.InventoryItems++
	}
	for _, entry := range shopping {
		// Group membership and item links reference IDs that no longer exist.
		entry.RecipeGroupID = ""
		entry.LinkedItemID = ""
		if _, err := store.CreateShoppingItemTx(ctx, tx, entry); err != nil {
			return nil, fmt.Errorf("importing shopping item %q: %w", entry.Name, err)
		}
		summary.ShoppingItems++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}
	return summary, nil
}
