package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// StoresHandler handles grocery store endpoints.
type StoresHandler struct {
	DB *sql.DB
}

type storeRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// List handles GET /api/stores.
func (h *StoresHandler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := store.ListStores(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list stores")
		return
	}
	if stores == nil {
		stores = []model.GroceryStore{}
	}
	jsonResponse(w, http.StatusOK, stores)
}

// Create handles POST /api/stores.
func (h *StoresHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req storeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := store.CreateStore(r.Context(), h.DB, req.Name, req.Icon, req.Color)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusCreated, s)
}

// Get handles GET /api/stores/{id}.
func (h *StoresHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := store.GetStore(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get store")
		return
	}
	if s == nil {
		jsonError(w, http.StatusNotFound, "store not found")
		return
	}
	jsonResponse(w, http.StatusOK, s)
}

// Update handles PUT /api/stores/{id}.
func (h *StoresHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req storeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := store.UpdateStore(r.Context(), h.DB, r.PathValue("id"), req.Name, req.Icon, req.Color)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if s == nil {
		jsonError(w, http.StatusNotFound, "store not found")
		return
	}
	jsonResponse(w, http.StatusOK, s)
}

// Delete handles DELETE /api/stores/{id}. Shopping entries pointing at the
// store are reassigned to the first remaining one.
func (h *StoresHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteStore(r.Context(), h.DB, r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete store")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "store deleted"})
}
