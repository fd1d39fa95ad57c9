package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/services"
	"github.com/serwaa467/ElderCare_Manager/pkg/logger"
)

type AnalyticsHandler struct {
	Service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: service}
}

// SummaryHandler returns the dashboard summary cards.
func (h *AnalyticsHandler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	cards := h.Service.Summary(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cards)
}

// AdherenceHandler returns the 24 hour repositioning adherence report.
// Query params: resident_id restricts to one resident, full=true returns
// every row instead of the worst five.
func (h *AnalyticsHandler) AdherenceHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	report, err := h.Service.Adherence(r.Context(), services.AdherenceOptions{
		ResidentID: q.Get("resident_id"),
		Full:       q.Get("full") == "true",
	})
	if err != nil {
		http.Error(w, "Failed to compute adherence", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// ExportAdherenceHandler streams the full adherence report as CSV.
func (h *AnalyticsHandler) ExportAdherenceHandler(w http.ResponseWriter, r *http.Request) {
	stamp := time.Now().Format("20060102_1504")

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=adherence_"+stamp+".csv")

	opts := services.AdherenceOptions{
		ResidentID: r.URL.Query().Get("resident_id"),
		Full:       true,
	}
	if err := h.Service.ExportAdherenceCSV(r.Context(), opts, w); err != nil {
		logger.Log.WithError(err).Error("Failed to export adherence CSV")
	}
}
