package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/shramba/internal/model"
)

// GetBarcodeEntry returns the catalog entry for a barcode.
func GetBarcodeEntry(ctx context.Context, db *sql.DB, barcode string) (*model.BarcodeEntry, error) {
	entry := &model.BarcodeEntry{}
	var category, aisle sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT barcode, name, default_unit, default_quantity, category, aisle, created_at, updated_at
		 FROM barcode_catalog WHERE barcode = ?`, barcode,
	).Scan(&entry.Barcode, &entry.Name, &entry.DefaultUnit, &entry.DefaultQuantity,
		&category, &aisle, &entry.CreatedAt, &entry.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting barcode entry: %w", err)
	}
	entry.Category = category.String
	entry.Aisle = aisle.String
	return entry, nil
}

// ListBarcodeEntries returns the whole catalog.
func ListBarcodeEntries(ctx context.Context, db *sql.DB) ([]model.BarcodeEntry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT barcode, name, default_unit, default_quantity, category, aisle, created_at, updated_at
		 FROM barcode_catalog ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing barcode entries: %w", err)
	}
	defer rows.Close()

	var entries []model.BarcodeEntry
	for rows.Next() {
		var entry model.BarcodeEntry
		var category, aisle sql.NullString
		if err := rows.Scan(&entry.Barcode, &entry.Name, &entry.DefaultUnit, &entry.DefaultQuantity,
			&category, &aisle, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning barcode entry: %w", err)
		}
		entry.Category = category.String
		entry.Aisle = aisle.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// UpsertBarcodeEntry merges an entry into the catalog. Missing fields on the
// incoming entry never erase existing catalog data.
func UpsertBarcodeEntry(ctx context.Context, db *sql.DB, entry model.BarcodeEntry) (*model.BarcodeEntry, error) {
	if entry.Barcode == "" {
		return nil, fmt.Errorf("barcode is required")
	}
	if entry.Name == "" {
		return nil, fmt.Errorf("barcode entry name is required")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := mergeBarcodeTx(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing barcode entry: %w", err)
	}

	return GetBarcodeEntry(ctx, db, entry.Barcode)
}

// upsertBarcodeTx records a freshly scanned item in the catalog. A new barcode
// gets a full entry; a known one only has its aisle backfilled when the
// catalog is missing it.
func upsertBarcodeTx(ctx context.Context, tx *sql.Tx, entry model.BarcodeEntry) error {
	result, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO barcode_catalog (barcode, name, default_unit, default_quantity, category, aisle)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Barcode, entry.Name, entry.DefaultUnit, entry.DefaultQuantity,
		nullable(entry.Category), nullable(entry.Aisle),
	)
	if err != nil {
		return fmt.Errorf("adding barcode entry: %w", err)
	}
	if n, _ := result.RowsAffected(); n > 0 {
		return nil
	}

	if entry.Aisle != "" {
		_, err = tx.ExecContext(ctx,
			`UPDATE barcode_catalog SET aisle = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE barcode = ? AND (aisle IS NULL OR aisle = '')`,
			entry.Aisle, entry.Barcode,
		)
		if err != nil {
			return fmt.Errorf("backfilling catalog aisle: %w", err)
		}
	}
	return nil
}

// mergeBarcodeTx overwrites an entry's provided fields, keeping existing values
// where the incoming entry is empty.
func mergeBarcodeTx(ctx context.Context, tx *sql.Tx, entry model.BarcodeEntry) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO barcode_catalog (barcode, name, default_unit, default_quantity, category, aisle)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (barcode) DO UPDATE SET
		     name             = excluded.name,
		     default_unit     = CASE WHEN excluded.default_unit != '' THEN excluded.default_unit ELSE default_unit END,
		     default_quantity = CASE WHEN excluded.default_quantity > 0 THEN excluded.default_quantity ELSE default_quantity END,
		     category         = COALESCE(excluded.category, category),
		     aisle            = COALESCE(excluded.aisle, aisle),
		     updated_at       = CURRENT_TIMESTAMP`,
		entry.Barcode, entry.Name, entry.DefaultUnit, entry.DefaultQuantity,
		nullable(entry.Category), nullable(entry.Aisle),
	)
	if err != nil {
		return fmt.Errorf("merging barcode entry: %w", err)
	}
	return nil
}
