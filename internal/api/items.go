package api

import (
	"database/sql"
	"net/http"
	"sort"
	"time"

	"github.com/erazemk/shramba/internal/expiration"
	"github.com/erazemk/shramba/internal/imaging"
	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/notify"
	"github.com/erazemk/shramba/internal/store"
)

// ItemsHandler handles inventory item endpoints.
type ItemsHandler struct {
	DB   *sql.DB
	Sync *notify.Synchronizer
}

type itemRequest struct {
	Name            string  `json:"name"`
	Barcode         string  `json:"barcode"`
	Quantity        int     `json:"quantity"`
	Unit            string  `json:"unit"`
	ExpirationDate  string  `json:"expiration_date"`
	StorageAreaID   string  `json:"storage_area_id"`
	LocationZoneID  string  `json:"location_zone_id"`
	DefaultStoreID  string  `json:"default_store_id"`
	Aisle           string  `json:"aisle"`
	Notes           string  `json:"notes"`
	Category        string  `json:"category"`
	ApproximateCost float64 `json:"approximate_cost"`
}

func (req *itemRequest) toModel() model.Item {
	return model.Item{
		Name:            req.Name,
		Barcode:         req.Barcode,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		ExpirationDate:  req.ExpirationDate,
		StorageAreaID:   req.StorageAreaID,
		LocationZoneID:  req.LocationZoneID,
		DefaultStoreID:  req.DefaultStoreID,
		Aisle:           req.Aisle,
		Notes:           req.Notes,
		Category:        req.Category,
		ApproximateCost: req.ApproximateCost,
	}
}

type markGoneRequest struct {
	StoreID        string `json:"store_id"`
	DisposalReason string `json:"disposal_reason"`
}

type moveItemRequest struct {
	StorageAreaID  string `json:"storage_area_id"`
	LocationZoneID string `json:"location_zone_id"`
}

// List handles GET /api/items, optionally filtered by ?area=.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB, r.URL.Query().Get("area"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

type itemStatus struct {
	model.Item
	Status    string `json:"status"`
	DaysUntil *int   `json:"days_until,omitempty"`
	Display   string `json:"display"`
}

// ListExpiring handles GET /api/items/expiring, returning expiring and expired
// items with their derived status, soonest first.
func (h *ItemsHandler) ListExpiring(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB, "")
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	warningDays := notificationSettings(r.Context(), h.DB).DaysBeforeExpiration
	now := time.Now()

	out := []itemStatus{}
	for _, item := range items {
		res := expiration.Classify(item.ExpirationDate, warningDays, now)
		if res.Status == expiration.StatusSafe {
			continue
		}
		out = append(out, itemStatus{
			Item:      item,
			Status:    res.Status,
			DaysUntil: res.DaysUntil,
			Display:   expiration.DisplayText(res.DaysUntil),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ExpirationDate < out[j].ExpirationDate
	})
	jsonResponse(w, http.StatusOK, out)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, req.toModel())
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Sync.SyncItem(r.Context(), *item, notificationSettings(r.Context(), h.DB))
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItem(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated := req.toModel()
	updated.ID = r.PathValue("id")
	item, err := store.UpdateItem(r.Context(), h.DB, updated)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	settings := notificationSettings(r.Context(), h.DB)
	h.Sync.SyncItem(r.Context(), *item, settings)
	if item.Quantity <= settings.LowStockThreshold {
		h.Sync.NotifyLowStock(r.Context(), *item, settings)
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}. The item is removed outright, with
// no shopping-list successor.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := store.DeleteItem(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	h.Sync.CancelItem(r.Context(), id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Decrement handles POST /api/items/{id}/decrement. At quantity one this
// turns into a disposal with a shopping-list successor.
func (h *ItemsHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	item, err := store.DecrementItemQuantity(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to decrement item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	settings := notificationSettings(r.Context(), h.DB)
	if item.GoneAt != nil {
		h.Sync.CancelItem(r.Context(), item.ID)
		resyncNotifications(r.Context(), h.DB, h.Sync)
	} else if item.Quantity <= settings.LowStockThreshold {
		h.Sync.NotifyLowStock(r.Context(), *item, settings)
	}
	jsonResponse(w, http.StatusOK, item)
}

// MarkGone handles POST /api/items/{id}/gone.
func (h *ItemsHandler) MarkGone(w http.ResponseWriter, r *http.Request) {
	var req markGoneRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.MarkItemGone(r.Context(), h.DB, r.PathValue("id"), req.StoreID, req.DisposalReason)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found or already gone")
		return
	}

	h.Sync.CancelItem(r.Context(), item.ID)
	resyncNotifications(r.Context(), h.DB, h.Sync)
	jsonResponse(w, http.StatusOK, item)
}

// Move handles POST /api/items/{id}/move.
func (h *ItemsHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req moveItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.StorageAreaID == "" {
		jsonError(w, http.StatusBadRequest, "storage_area_id required")
		return
	}

	var movedBy *int64
	if claims := GetClaims(r.Context()); claims != nil {
		movedBy = &claims.UserID
	}

	item, err := store.MoveItem(r.Context(), h.DB, r.PathValue("id"), req.StorageAreaID, req.LocationZoneID, movedBy)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// GetHistory handles GET /api/items/{id}/history.
func (h *ItemsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	moves, err := store.GetItemMoves(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item history")
		return
	}
	if moves == nil {
		moves = []model.ItemMove{}
	}
	jsonResponse(w, http.StatusOK, moves)
}

// UploadPhoto handles PUT /api/items/{id}/photo.
func (h *ItemsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil || item.GoneAt != nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemPhoto(r.Context(), h.DB, id, photo.Data, photo.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo uploaded"})
}

// GetPhoto handles GET /api/items/{id}/photo.
func (h *ItemsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetItemPhoto(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
