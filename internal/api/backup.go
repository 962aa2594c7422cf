package api

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/erazemk/shramba/internal/backup"
	"github.com/erazemk/shramba/internal/notify"
)

// BackupHandler handles data export and import.
type BackupHandler struct {
	DB   *sql.DB
	Sync *notify.Synchronizer
}

// Export handles GET /api/backup, returning a downloadable snapshot of the
// inventory and shopping list.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := backup.Export(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to export data")
		return
	}

	filename := fmt.Sprintf("shramba-backup-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	jsonResponse(w, http.StatusOK, doc)
}

// Import handles POST /api/backup. The uploaded document replaces the current
// inventory and shopping list.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	doc, err := backup.Parse(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := backup.Import(r.Context(), h.DB, doc)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	resyncNotifications(r.Context(), h.DB, h.Sync)
	jsonResponse(w, http.StatusOK, summary)
}
