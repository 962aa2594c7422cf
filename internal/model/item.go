package model

import "time"

// Item represents a tracked inventory unit in a storage area.
// Active inventory is every item with GoneAt unset; disposed items keep their
// row (with GoneAt and DisposalReason) so waste analytics can read them later.
type Item struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Barcode         string     `json:"barcode,omitempty"`
	Quantity        int        `json:"quantity"`
	Unit            string     `json:"unit"`
	ExpirationDate  string     `json:"expiration_date,omitempty"` // YYYY-MM-DD, no time component
	StorageAreaID   string     `json:"storage_area_id"`
	LocationZoneID  string     `json:"location_zone_id,omitempty"`
	DefaultStoreID  string     `json:"default_store_id,omitempty"`
	Aisle           string     `json:"aisle,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Category        string     `json:"category,omitempty"`
	ApproximateCost float64    `json:"approximate_cost,omitempty"`
	PhotoMime       string     `json:"photo_mime,omitempty"`
	GoneAt          *time.Time `json:"gone_at,omitempty"`
	DisposalReason  string     `json:"disposal_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Disposal reasons (terminal, set once when an item leaves active inventory).
const (
	DisposalUsed       = "used"
	DisposalExpired    = "expired"
	DisposalThrownAway = "thrown_away"
	DisposalUnknown    = "unknown"
)

// ValidDisposalReason reports whether reason is a known disposal reason.
func ValidDisposalReason(reason string) bool {
	switch reason {
	case DisposalUsed, DisposalExpired, DisposalThrownAway, DisposalUnknown:
		return true
	}
	return false
}
