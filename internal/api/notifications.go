package api

import (
	"net/http"

	"github.com/erazemk/shramba/internal/notify"
)

// NotificationsHandler exposes the pending notification queue.
type NotificationsHandler struct {
	Platform notify.Platform
}

// List handles GET /api/notifications, returning everything currently
// scheduled on the platform.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	scheduled, err := h.Platform.ListScheduled(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	if scheduled == nil {
		scheduled = []notify.Scheduled{}
	}
	jsonResponse(w, http.StatusOK, scheduled)
}
