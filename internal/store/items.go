package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/shramba/internal/model"
)

const itemColumns = `id, name, barcode, quantity, unit, expiration_date, storage_area_id,
	location_zone_id, default_store_id, aisle, notes, category, approximate_cost,
	photo_mime, gone_at, disposal_reason, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*model.Item, error) {
	item := &model.Item{}
	var barcode, expiration, zoneID, storeID, aisle, notes, category, photoMime, reason sql.NullString
	var cost sql.NullFloat64
	var goneAt sql.NullTime
	err := s.Scan(&item.ID, &item.Name, &barcode, &item.Quantity, &item.Unit, &expiration,
		&item.StorageAreaID, &zoneID, &storeID, &aisle, &notes, &category, &cost,
		&photoMime, &goneAt, &reason, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Barcode = barcode.String
	item.ExpirationDate = expiration.String
	item.LocationZoneID = zoneID.String
	item.DefaultStoreID = storeID.String
	item.Aisle = aisle.String
	item.Notes = notes.String
	item.Category = category.String
	item.ApproximateCost = cost.Float64
	item.PhotoMime = photoMime.String
	if goneAt.Valid {
		item.GoneAt = &goneAt.Time
	}
	item.DisposalReason = reason.String
	return item, nil
}

// CreateItem adds an item to active inventory. If the item carries a barcode,
// the barcode catalog is updated in the same transaction so the next scan of
// that barcode can prefill the form.
func CreateItem(ctx context.Context, db *sql.DB, item model.Item) (*model.Item, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := CreateItemTx(ctx, tx, item)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item: %w", err)
	}

	return GetItem(ctx, db, id)
}

// CreateItemTx inserts an item within an existing transaction and returns its
// new ID. The disposal fields are written through, so a restore can carry
// disposed rows. Callers that need one item in one transaction use CreateItem.
func CreateItemTx(ctx context.Context, tx *sql.Tx, item model.Item) (string, error) {
	if item.Name == "" {
		return "", fmt.Errorf("item name is required")
	}
	if item.Quantity < 0 {
		return "", fmt.Errorf("quantity must not be negative")
	}
	if item.StorageAreaID == "" {
		return "", fmt.Errorf("storage area is required")
	}

	var goneAt any
	if item.GoneAt != nil {
		goneAt = *item.GoneAt
	}

	id := uuid.NewString()
	_, err := tx.ExecContext(ctx,
		`INSERT INTO items (id, name, barcode, quantity, unit, expiration_date, storage_area_id,
		                    location_zone_id, default_store_id, aisle, notes, category, approximate_cost,
		                    gone_at, disposal_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, item.Name, nullable(item.Barcode), item.Quantity, item.Unit,
		nullable(item.ExpirationDate), item.StorageAreaID, nullable(item.LocationZoneID),
		nullable(item.DefaultStoreID), nullable(item.Aisle), nullable(item.Notes),
		nullable(item.Category), item.ApproximateCost, goneAt, nullable(item.DisposalReason),
	)
	if err != nil {
		return "", fmt.Errorf("creating item: %w", err)
	}

	if item.Barcode != "" {
		if err := upsertBarcodeTx(ctx, tx, model.BarcodeEntry{
			Barcode:         item.Barcode,
			Name:            item.Name,
			DefaultUnit:     item.Unit,
			DefaultQuantity: item.Quantity,
			Category:        item.Category,
			Aisle:           item.Aisle,
		}); err != nil {
			return "", err
		}
	}

	return id, nil
}

// GetItem returns an item by ID, whether active or gone.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns active inventory, optionally filtered by storage area.
func ListItems(ctx context.Context, db *sql.DB, areaID string) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE gone_at IS NULL`
	var args []any
	if areaID != "" {
		query += ` AND storage_area_id = ?`
		args = append(args, areaID)
	}
	query += ` ORDER BY name`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListAllItems returns every item including disposed ones, for analytics and
// backup export.
func ListAllItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing all items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func collectItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem updates an active item's fields.
func UpdateItem(ctx context.Context, db *sql.DB, item model.Item) (*model.Item, error) {
	if item.Name == "" {
		return nil, fmt.Errorf("item name is required")
	}
	if item.Quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}

	result, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, barcode = ?, quantity = ?, unit = ?, expiration_date = ?,
		        storage_area_id = ?, location_zone_id = ?, default_store_id = ?, aisle = ?,
		        notes = ?, category = ?, approximate_cost = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND gone_at IS NULL`,
		item.Name, nullable(item.Barcode), item.Quantity, item.Unit,
		nullable(item.ExpirationDate), item.StorageAreaID, nullable(item.LocationZoneID),
		nullable(item.DefaultStoreID), nullable(item.Aisle), nullable(item.Notes),
		nullable(item.Category), item.ApproximateCost, item.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, nil
	}
	return GetItem(ctx, db, item.ID)
}

// DeleteItem removes an item outright, without a shopping-list successor and
// without keeping it for analytics. Move history goes with it.
func DeleteItem(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// DecrementItemQuantity reduces an active item's quantity by one. At quantity
// one the item is marked gone instead, so an active item never sits at zero.
// Returns the resulting item; callers can tell the transition happened by the
// GoneAt field being set.
func DecrementItemQuantity(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	item, err := GetItem(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.GoneAt != nil {
		return nil, nil
	}

	if item.Quantity <= 1 {
		return MarkItemGone(ctx, db, id, "", model.DisposalUsed)
	}

	_, err = db.ExecContext(ctx,
		`UPDATE items SET quantity = quantity - 1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND gone_at IS NULL AND quantity > 1`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("decrementing item quantity: %w", err)
	}
	return GetItem(ctx, db, id)
}

// MarkItemGone disposes of an active item and creates exactly one linked
// shopping-list entry so it can be bought again. The entry's store falls back
// from the explicit storeID to the item's default store to the first grocery
// store; its aisle falls back from the item to the barcode catalog. A repeat
// call for the same item is a no-op returning nil.
func MarkItemGone(ctx context.Context, db *sql.DB, id, storeID, reason string) (*model.Item, error) {
	if reason == "" {
		reason = model.DisposalUsed
	}
	if !model.ValidDisposalReason(reason) {
		return nil, fmt.Errorf("invalid disposal reason %q", reason)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := scanItem(tx.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ? AND gone_at IS NULL`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE items SET gone_at = CURRENT_TIMESTAMP, disposal_reason = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		reason, id,
	)
	if err != nil {
		return nil, fmt.Errorf("marking item gone: %w", err)
	}

	targetStore := storeID
	if targetStore == "" {
		targetStore = item.DefaultStoreID
	}
	if targetStore == "" {
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM grocery_stores ORDER BY position, created_at LIMIT 1`,
		).Scan(&targetStore)
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("finding fallback store: %w", err)
		}
	}

	aisle := item.Aisle
	if aisle == "" && item.Barcode != "" {
		var catalogAisle sql.NullString
		err = tx.QueryRowContext(ctx,
			`SELECT aisle FROM barcode_catalog WHERE barcode = ?`, item.Barcode,
		).Scan(&catalogAisle)
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("looking up catalog aisle: %w", err)
		}
		aisle = catalogAisle.String
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO shopping_list (id, name, quantity, unit, store_id, barcode, aisle,
		                            linked_item_id, last_storage_area_id, last_location_zone_id)
		 VALUES (?, ?, 1, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), item.Name, item.Unit, nullable(targetStore), nullable(item.Barcode),
		nullable(aisle), item.ID, nullable(item.StorageAreaID), nullable(item.LocationZoneID),
	)
	if err != nil {
		return nil, fmt.Errorf("creating shopping successor: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing disposal: %w", err)
	}

	return GetItem(ctx, db, id)
}

// SetItemPhoto stores an active item's photo.
func SetItemPhoto(ctx context.Context, db *sql.DB, id string, photo []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET photo = ?, photo_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND gone_at IS NULL`,
		photo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item photo: %w", err)
	}
	return nil
}

// GetItemPhoto returns an item's photo data and MIME type.
func GetItemPhoto(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item photo: %w", err)
	}
	return photo, mime.String, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
