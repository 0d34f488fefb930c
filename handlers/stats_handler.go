package handlers

import (
	"net/http"
	"strconv"

	"github.com/atanum62/shyama-erp-sub000/inspection"
)

type StatsHandler struct {
	Service *inspection.Service
}

// Dashboard returns the inspection roll-up for the requested window
// (?days=7|30|90|180|365, default 30).
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	days := 0
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "invalid days value"})
			return
		}
		days = n
	}

	summary, err := h.Service.DashboardStats(days)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: summary})
}
