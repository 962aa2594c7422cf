package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/notify"
	"github.com/erazemk/shramba/internal/store"
)

// AreasHandler handles storage area and zone endpoints.
type AreasHandler struct {
	DB   *sql.DB
	Sync *notify.Synchronizer
}

type areaRequest struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	CustomTypeLabel string `json:"custom_type_label"`
	Icon            string `json:"icon"`
}

type zoneRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/areas.
func (h *AreasHandler) List(w http.ResponseWriter, r *http.Request) {
	areas, err := store.ListAreas(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list storage areas")
		return
	}
	if areas == nil {
		areas = []model.StorageArea{}
	}
	jsonResponse(w, http.StatusOK, areas)
}

// Create handles POST /api/areas.
func (h *AreasHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req areaRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	area, err := store.CreateArea(r.Context(), h.DB, req.Name, req.Type, req.CustomTypeLabel, req.Icon)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusCreated, area)
}

// Get handles GET /api/areas/{id}.
func (h *AreasHandler) Get(w http.ResponseWriter, r *http.Request) {
	area, err := store.GetArea(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get storage area")
		return
	}
	if area == nil {
		jsonError(w, http.StatusNotFound, "storage area not found")
		return
	}
	jsonResponse(w, http.StatusOK, area)
}

// Update handles PUT /api/areas/{id}.
func (h *AreasHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req areaRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	area, err := store.UpdateArea(r.Context(), h.DB, r.PathValue("id"), req.Name, req.Type, req.CustomTypeLabel, req.Icon)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if area == nil {
		jsonError(w, http.StatusNotFound, "storage area not found")
		return
	}
	jsonResponse(w, http.StatusOK, area)
}

// Delete handles DELETE /api/areas/{id}. Items stored in the area are removed
// with it and their notifications cancelled.
func (h *AreasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := store.DeleteArea(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete storage area")
		return
	}

	for _, itemID := range removed {
		h.Sync.CancelItem(r.Context(), itemID)
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "storage area deleted"})
}

// CreateZone handles POST /api/areas/{id}/zones.
func (h *AreasHandler) CreateZone(w http.ResponseWriter, r *http.Request) {
	var req zoneRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	area, err := store.GetArea(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get storage area")
		return
	}
	if area == nil {
		jsonError(w, http.StatusNotFound, "storage area not found")
		return
	}

	zone, err := store.CreateZone(r.Context(), h.DB, area.ID, req.Name)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusCreated, zone)
}

// UpdateZone handles PUT /api/areas/{id}/zones/{zone}.
func (h *AreasHandler) UpdateZone(w http.ResponseWriter, r *http.Request) {
	var req zoneRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.UpdateZone(r.Context(), h.DB, r.PathValue("id"), r.PathValue("zone"), req.Name); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "zone updated"})
}

// DeleteZone handles DELETE /api/areas/{id}/zones/{zone}.
func (h *AreasHandler) DeleteZone(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteZone(r.Context(), h.DB, r.PathValue("id"), r.PathValue("zone")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete zone")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "zone deleted"})
}
