package model

import "time"

// GroceryStore is a place shopping-list items are bought at.
type GroceryStore struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShoppingListItem is a to-buy entry, optionally linked back to the inventory
// item that produced it and optionally grouped under a recipe group.
type ShoppingListItem struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Quantity           int       `json:"quantity"`
	Unit               string    `json:"unit"`
	StoreID            string    `json:"store_id,omitempty"`
	Barcode            string    `json:"barcode,omitempty"`
	Aisle              string    `json:"aisle,omitempty"`
	LinkedItemID       string    `json:"linked_item_id,omitempty"`
	LastStorageAreaID  string    `json:"last_storage_area_id,omitempty"`
	LastLocationZoneID string    `json:"last_location_zone_id,omitempty"`
	IsCompleted        bool      `json:"is_completed"`
	RecipeGroupID      string    `json:"recipe_group_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// RecipeGroup is a cosmetic grouping of shopping-list items under a recipe
// title. It carries no recipe logic beyond the title and an expand/collapse
// flag.
type RecipeGroup struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	IsExpanded bool      `json:"is_expanded"`
	CreatedAt  time.Time `json:"created_at"`
}
