package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/shramba/internal/model"
)

// CreateArea creates a storage area.
func CreateArea(ctx context.Context, db *sql.DB, name, areaType, customLabel, icon string) (*model.StorageArea, error) {
	if name == "" {
		return nil, fmt.Errorf("area name is required")
	}
	if !model.ValidAreaType(areaType) {
		return nil, fmt.Errorf("invalid area type %q", areaType)
	}

	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO storage_areas (id, name, type, custom_type_label, icon) VALUES (?, ?, ?, ?, ?)`,
		id, name, areaType, nullable(customLabel), nullable(icon),
	)
	if err != nil {
		return nil, fmt.Errorf("creating storage area: %w", err)
	}

	return GetArea(ctx, db, id)
}

// GetArea returns a storage area with its zones.
func GetArea(ctx context.Context, db *sql.DB, id string) (*model.StorageArea, error) {
	area := &model.StorageArea{}
	var customLabel, icon sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, type, custom_type_label, icon, created_at, updated_at
		 FROM storage_areas WHERE id = ?`, id,
	).Scan(&area.ID, &area.Name, &area.Type, &customLabel, &icon, &area.CreatedAt, &area.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting storage area: %w", err)
	}
	area.CustomTypeLabel = customLabel.String
	area.Icon = icon.String

	area.Zones, err = listZones(ctx, db, id)
	if err != nil {
		return nil, err
	}
	return area, nil
}

// ListAreas returns all storage areas with their zones.
func ListAreas(ctx context.Context, db *sql.DB) ([]model.StorageArea, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, type, custom_type_label, icon, created_at, updated_at
		 FROM storage_areas ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing storage areas: %w", err)
	}
	defer rows.Close()

	var areas []model.StorageArea
	for rows.Next() {
		var area model.StorageArea
		var customLabel, icon sql.NullString
		if err := rows.Scan(&area.ID, &area.Name, &area.Type, &customLabel, &icon,
			&area.CreatedAt, &area.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning storage area: %w", err)
		}
		area.CustomTypeLabel = customLabel.String
		area.Icon = icon.String
		areas = append(areas, area)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range areas {
		areas[i].Zones, err = listZones(ctx, db, areas[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return areas, nil
}

// UpdateArea updates a storage area's metadata.
func UpdateArea(ctx context.Context, db *sql.DB, id, name, areaType, customLabel, icon string) (*model.StorageArea, error) {
	if name == "" {
		return nil, fmt.Errorf("area name is required")
	}
	if !model.ValidAreaType(areaType) {
		return nil, fmt.Errorf("invalid area type %q", areaType)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE storage_areas SET name = ?, type = ?, custom_type_label = ?, icon = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		name, areaType, nullable(customLabel), nullable(icon), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating storage area: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, nil
	}
	return GetArea(ctx, db, id)
}

// DeleteArea removes a storage area. Its zones and every item stored in it go
// with it, so callers should cancel those items' notifications afterwards.
func DeleteArea(ctx context.Context, db *sql.DB, id string) ([]string, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM items WHERE storage_area_id = ? AND gone_at IS NULL`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("listing area items: %w", err)
	}
	var itemIDs []string
	for rows.Next() {
		var itemID string
		if err := rows.Scan(&itemID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning item id: %w", err)
		}
		itemIDs = append(itemIDs, itemID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM storage_areas WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("deleting storage area: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing area delete: %w", err)
	}
	return itemIDs, nil
}

// CreateZone appends a zone to a storage area, positioned after existing zones.
func CreateZone(ctx context.Context, db *sql.DB, areaID, name string) (*model.LocationZone, error) {
	if name == "" {
		return nil, fmt.Errorf("zone name is required")
	}

	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO location_zones (id, storage_area_id, name, position)
		 VALUES (?, ?, ?, (SELECT COALESCE(MAX(position) + 1, 0) FROM location_zones WHERE storage_area_id = ?))`,
		id, areaID, name, areaID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating zone: %w", err)
	}

	zone := &model.LocationZone{}
	err = db.QueryRowContext(ctx,
		`SELECT id, storage_area_id, name, position FROM location_zones WHERE id = ?`, id,
	).Scan(&zone.ID, &zone.StorageAreaID, &zone.Name, &zone.Position)
	if err != nil {
		return nil, fmt.Errorf("getting zone: %w", err)
	}
	return zone, nil
}

// UpdateZone renames a zone.
func UpdateZone(ctx context.Context, db *sql.DB, areaID, zoneID, name string) error {
	if name == "" {
		return fmt.Errorf("zone name is required")
	}
	_, err := db.ExecContext(ctx,
		`UPDATE location_zones SET name = ? WHERE id = ? AND storage_area_id = ?`,
		name, zoneID, areaID,
	)
	if err != nil {
		return fmt.Errorf("updating zone: %w", err)
	}
	return nil
}

// DeleteZone removes a zone. Items referencing it keep their storage area but
// lose the zone assignment.
func DeleteZone(ctx context.Context, db *sql.DB, areaID, zoneID string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE items SET location_zone_id = NULL WHERE location_zone_id = ?`, zoneID,
	); err != nil {
		return fmt.Errorf("clearing zone from items: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM location_zones WHERE id = ? AND storage_area_id = ?`, zoneID, areaID,
	); err != nil {
		return fmt.Errorf("deleting zone: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing zone delete: %w", err)
	}
	return nil
}

func listZones(ctx context.Context, db *sql.DB, areaID string) ([]model.LocationZone, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, storage_area_id, name, position FROM location_zones
		 WHERE storage_area_id = ? ORDER BY position`, areaID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing zones: %w", err)
	}
	defer rows.Close()

	var zones []model.LocationZone
	for rows.Next() {
		var zone model.LocationZone
		if err := rows.Scan(&zone.ID, &zone.StorageAreaID, &zone.Name, &zone.Position); err != nil {
			return nil, fmt.Errorf("scanning zone: %w", err)
		}
		zones = append(zones, zone)
	}
	return zones, rows.Err()
}
