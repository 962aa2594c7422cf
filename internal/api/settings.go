package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/notify"
	"github.com/erazemk/shramba/internal/store"
)

// SettingsHandler handles application settings endpoints.
type SettingsHandler struct {
	DB   *sql.DB
	Sync *notify.Synchronizer
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := store.GetAppSettings(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}
	jsonResponse(w, http.StatusOK, settings)
}

// Update handles PUT /api/settings. Changed notification preferences take
// effect immediately through a full reschedule.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var settings model.AppSettings
	if err := decodeJSON(r, &settings); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.SaveAppSettings(r.Context(), h.DB, settings); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	resyncNotifications(r.Context(), h.DB, h.Sync)
	jsonResponse(w, http.StatusOK, settings)
}
