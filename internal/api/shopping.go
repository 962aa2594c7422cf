package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/notify"
	"github.com/erazemk/shramba/internal/store"
)

// ShoppingHandler handles shopping list and recipe group endpoints.
type ShoppingHandler struct {
	DB   *sql.DB
	Sync *notify.Synchronizer
}

type shoppingItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	StoreID  string `json:"store_id"`
	Barcode  string `json:"barcode"`
	Aisle    string `json:"aisle"`
}

func (req *shoppingItemRequest) toModel() model.ShoppingListItem {
	return model.ShoppingListItem{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		StoreID:  req.StoreID,
		Barcode:  req.Barcode,
		Aisle:    req.Aisle,
	}
}

type recipeGroupRequest struct {
	Title string                `json:"title"`
	Items []shoppingItemRequest `json:"items"`
}

type toInventoryRequest struct {
	StorageAreaID  string `json:"storage_area_id"`
	LocationZoneID string `json:"location_zone_id"`
	ExpirationDate string `json:"expiration_date"`
}

// List handles GET /api/shopping.
func (h *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := store.ListShoppingItems(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list shopping items")
		return
	}
	if entries == nil {
		entries = []model.ShoppingListItem{}
	}
	jsonResponse(w, http.StatusOK, entries)
}

// Create handles POST /api/shopping.
func (h *ShoppingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req shoppingItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := store.CreateShoppingItem(r.Context(), h.DB, req.toModel())
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	resyncNotifications(r.Context(), h.DB, h.Sync)
	jsonResponse(w, http.StatusCreated, entry)
}

// Update handles PUT /api/shopping/{id}.
func (h *ShoppingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req shoppingItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated := req.toModel()
	updated.ID = r.PathValue("id")
	entry, err := store.UpdateShoppingItem(r.Context(), h.DB, updated)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if entry == nil {
		jsonError(w, http.StatusNotFound, "shopping item not found")
		return
	}
	jsonResponse(w, http.StatusOK, entry)
}

// Toggle handles POST /api/shopping/{id}/toggle.
func (h *ShoppingHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	entry, err := store.ToggleShoppingItem(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to toggle shopping item")
		return
	}
	if entry == nil {
		jsonError(w, http.StatusNotFound, "shopping item not found")
		return
	}

	resyncNotifications(r.Context(), h.DB, h.Sync)
	jsonResponse(w, http.StatusOK, entry)
}

// Delete handles DELETE /api/shopping/{id}.
func (h *ShoppingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteShoppingItem(r.Context(), h.DB, r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete shopping item")
		return
	}

	resyncNotifications(r.Context(), h.DB, h.Sync)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "shopping item deleted"})
}

// ClearCompleted handles POST /api/shopping/clear-completed.
func (h *ShoppingHandler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	if err := store.ClearCompletedItems(r.Context(), h.DB); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to clear completed items")
		return
	}

	resyncNotifications(r.Context(), h.DB, h.Sync)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "completed items cleared"})
}

// ToInventory handles POST /api/shopping/{id}/to-inventory, converting a
// bought entry into an inventory item.
func (h *ShoppingHandler) ToInventory(w http.ResponseWriter, r *http.Request) {
	var req toInventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.AddCompletedItemToInventory(r.Context(), h.DB, r.PathValue("id"),
		req.StorageAreaID, req.LocationZoneID, req.ExpirationDate)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "shopping item not found")
		return
	}

	h.Sync.SyncItem(r.Context(), *item, notificationSettings(r.Context(), h.DB))
	resyncNotifications(r.Context(), h.DB, h.Sync)
	jsonResponse(w, http.StatusCreated, item)
}

// ListGroups handles GET /api/shopping/groups.
func (h *ShoppingHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := store.ListRecipeGroups(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list recipe groups")
		return
	}
	if groups == nil {
		groups = []model.RecipeGroup{}
	}
	jsonResponse(w, http.StatusOK, groups)
}

// CreateGroup handles POST /api/shopping/groups.
func (h *ShoppingHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req recipeGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entries := make([]model.ShoppingListItem, 0, len(req.Items))
	for _, item := range req.Items {
		entries = append(entries, item.toModel())
	}

	group, err := store.CreateRecipeGroup(r.Context(), h.DB, req.Title, entries)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	resyncNotifications(r.Context(), h.DB, h.Sync)
	jsonResponse(w, http.StatusCreated, group)
}

// ToggleGroup handles POST /api/shopping/groups/{id}/toggle.
func (h *ShoppingHandler) ToggleGroup(w http.ResponseWriter, r *http.Request) {
	group, err := store.ToggleRecipeGroup(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to toggle recipe group")
		return
	}
	if group == nil {
		jsonError(w, http.StatusNotFound, "recipe group not found")
		return
	}
	jsonResponse(w, http.StatusOK, group)
}

// DeleteGroup handles DELETE /api/shopping/groups/{id}. The group's entries
// go with it.
func (h *ShoppingHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteRecipeGroup(r.Context(), h.DB, r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete recipe group")
		return
	}

	resyncNotifications(r.Context(), h.DB, h.Sync)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "recipe group deleted"})
}
