package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/shramba/internal/model"
)

// MoveItem relocates an active item to another storage area (and optionally a
// zone within it), recording the move in a single transaction.
func MoveItem(ctx context.Context, db *sql.DB, itemID, toAreaID, toZoneID string, movedBy *int64) (*model.Item, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var fromAreaID string
	var fromZoneID sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT storage_area_id, location_zone_id FROM items WHERE id = ? AND gone_at IS NULL`,
		itemID,
	).Scan(&fromAreaID, &fromZoneID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item location: %w", err)
	}

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM storage_areas WHERE id = ?`, toAreaID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("storage area %q not found", toAreaID)
	}
	if err != nil {
		return nil, fmt.Errorf("checking storage area: %w", err)
	}
	if toZoneID != "" {
		err = tx.QueryRowContext(ctx,
			`SELECT 1 FROM location_zones WHERE id = ? AND storage_area_id = ?`,
			toZoneID, toAreaID,
		).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("zone %q not in storage area %q", toZoneID, toAreaID)
		}
		if err != nil {
			return nil, fmt.Errorf("checking zone: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE items SET storage_area_id = ?, location_zone_id = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		toAreaID, nullable(toZoneID), itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("moving item: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO item_moves (item_id, from_area_id, to_area_id, from_zone_id, to_zone_id, moved_by)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		itemID, fromAreaID, toAreaID, nullString(fromZoneID), nullable(toZoneID), movedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("recording move: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing move: %w", err)
	}

	return GetItem(ctx, db, itemID)
}

// GetItemMoves returns an item's move history, newest first, with area names
// joined in where the areas still exist.
func GetItemMoves(ctx context.Context, db *sql.DB, itemID string) ([]model.ItemMove, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT m.id, m.item_id, m.from_area_id, m.to_area_id, m.from_zone_id, m.to_zone_id,
		        m.moved_at, m.moved_by, fa.name, ta.name
		 FROM item_moves m
		 LEFT JOIN storage_areas fa ON fa.id = m.from_area_id
		 LEFT JOIN storage_areas ta ON ta.id = m.to_area_id
		 WHERE m.item_id = ?
		 ORDER BY m.moved_at DESC, m.id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting item moves: %w", err)
	}
	defer rows.Close()

	var moves []model.ItemMove
	for rows.Next() {
		var m model.ItemMove
		var fromZone, toZone, fromName, toName sql.NullString
		if err := rows.Scan(&m.ID, &m.ItemID, &m.FromAreaID, &m.ToAreaID, &fromZone, &toZone,
			&m.MovedAt, &m.MovedBy, &fromName, &toName); err != nil {
			return nil, fmt.Errorf("scanning item move: %w", err)
		}
		m.FromZoneID = fromZone.String
		m.ToZoneID = toZone.String
		m.FromAreaName = fromName.String
		m.ToAreaName = toName.String
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

func nullString(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}
