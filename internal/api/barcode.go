package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// BarcodeHandler handles barcode catalog endpoints.
type BarcodeHandler struct {
	DB *sql.DB
}

type barcodeRequest struct {
	Name            string `json:"name"`
	DefaultUnit     string `json:"default_unit"`
	DefaultQuantity int    `json:"default_quantity"`
	Category        string `json:"category"`
	Aisle           string `json:"aisle"`
}

// List handles GET /api/barcodes.
func (h *BarcodeHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := store.ListBarcodeEntries(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list barcode entries")
		return
	}
	if entries == nil {
		entries = []model.BarcodeEntry{}
	}
	jsonResponse(w, http.StatusOK, entries)
}

// Get handles GET /api/barcodes/{code}.
func (h *BarcodeHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := store.GetBarcodeEntry(r.Context(), h.DB, r.PathValue("code"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get barcode entry")
		return
	}
	if entry == nil {
		jsonError(w, http.StatusNotFound, "barcode not found")
		return
	}
	jsonResponse(w, http.StatusOK, entry)
}

// Upsert handles PUT /api/barcodes/{code}. Empty fields on the request keep
// the existing catalog values.
func (h *BarcodeHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req barcodeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := store.UpsertBarcodeEntry(r.Context(), h.DB, model.BarcodeEntry{
		Barcode:         r.PathValue("code"),
		Name:            req.Name,
		DefaultUnit:     req.DefaultUnit,
		DefaultQuantity: req.DefaultQuantity,
		Category:        req.Category,
		Aisle:           req.Aisle,
	})
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, entry)
}
