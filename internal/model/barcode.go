package model

import "time"

// BarcodeEntry caches the last-known details for a barcode so rescans can
// prefill item forms. At most one entry exists per barcode; updates merge
// rather than overwrite missing fields.
type BarcodeEntry struct {
	Barcode         string    `json:"barcode"`
	Name            string    `json:"name"`
	DefaultUnit     string    `json:"default_unit"`
	DefaultQuantity int       `json:"default_quantity"`
	Category        string    `json:"category,omitempty"`
	Aisle           string    `json:"aisle,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ItemMove records an item's movement between storage areas.
type ItemMove struct {
	ID         int64     `json:"id"`
	ItemID     string    `json:"item_id"`
	FromAreaID string    `json:"from_area_id"`
	ToAreaID   string    `json:"to_area_id"`
	FromZoneID string    `json:"from_zone_id,omitempty"`
	ToZoneID   string    `json:"to_zone_id,omitempty"`
	MovedAt    time.Time `json:"moved_at"`
	MovedBy    *int64    `json:"moved_by,omitempty"`

	// Joined fields (not always populated).
	FromAreaName string `json:"from_area_name,omitempty"`
	ToAreaName   string `json:"to_area_name,omitempty"`
}
