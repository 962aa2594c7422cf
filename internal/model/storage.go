package model

import "time"

// StorageArea is a top-level named location (fridge, freezer, ...) owning an
// ordered list of zones.
type StorageArea struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Type            string         `json:"type"`
	CustomTypeLabel string         `json:"custom_type_label,omitempty"`
	Icon            string         `json:"icon,omitempty"`
	Zones           []LocationZone `json:"zones"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// LocationZone is a sub-location within a storage area (e.g. "Top Shelf").
type LocationZone struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	StorageAreaID string `json:"storage_area_id"`
	Position      int    `json:"position"`
}

// Storage area types.
const (
	AreaTypeFridge  = "fridge"
	AreaTypeFreezer = "freezer"
	AreaTypePantry  = "pantry"
	AreaTypeCabinet = "cabinet"
	AreaTypeCustom  = "custom"
)

// ValidAreaType reports whether t is a known storage area type.
func ValidAreaType(t string) bool {
	switch t {
	case AreaTypeFridge, AreaTypeFreezer, AreaTypePantry, AreaTypeCabinet, AreaTypeCustom:
		return true
	}
	return false
}
