package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/erazemk/shramba/internal/analytics"
	"github.com/erazemk/shramba/internal/store"
)

// AnalyticsHandler handles waste analytics endpoints.
type AnalyticsHandler struct {
	DB *sql.DB
}

type reportResponse struct {
	Report    *analytics.Report        `json:"report"`
	Breakdown []analytics.CategoryShare `json:"breakdown"`
}

// Report handles GET /api/analytics, with ?period=week|month|custom and
// ?start=/?end= for custom ranges.
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListAllItems(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load items")
		return
	}

	q := r.URL.Query()
	period := q.Get("period")
	if period == "" {
		period = analytics.PeriodMonth
	}

	report, err := analytics.Calculate(items, period, q.Get("start"), q.Get("end"), time.Now())
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	breakdown := analytics.Breakdown(report)
	if breakdown == nil {
		breakdown = []analytics.CategoryShare{}
	}
	jsonResponse(w, http.StatusOK, reportResponse{Report: report, Breakdown: breakdown})
}

// History handles GET /api/analytics/history?months=N, returning one report
// per month, oldest first.
func (h *AnalyticsHandler) History(w http.ResponseWriter, r *http.Request) {
	months := 6
	if s := r.URL.Query().Get("months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 24 {
			jsonError(w, http.StatusBadRequest, "months must be between 1 and 24")
			return
		}
		months = n
	}

	items, err := store.ListAllItems(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load items")
		return
	}

	jsonResponse(w, http.StatusOK, analytics.History(items, months, time.Now()))
}
