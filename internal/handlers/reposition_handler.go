package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/internal/scheduling"
	"github.com/serwaa467/ElderCare_Manager/internal/services"
	"github.com/gorilla/mux"
)

type RepositionHandler struct {
	Service *services.RepositionService
}

func NewRepositionHandler(service *services.RepositionService) *RepositionHandler {
	return &RepositionHandler{Service: service}
}

// SaveIntervalHandler sets the repositioning interval for a resident.
func (h *RepositionHandler) SaveIntervalHandler(w http.ResponseWriter, r *http.Request) {
	residentID := mux.Vars(r)["id"]

	var payload struct {
		IntervalMins int `json:"interval_mins"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	pref, err := h.Service.SaveInterval(r.Context(), residentID, payload.IntervalMins)
	if err != nil {
		if err == scheduling.ErrInvalidInterval {
			http.Error(w, "Interval must be a positive number of minutes", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to save interval", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pref)
}

// DueStatusHandler reports whether a resident's repositioning is overdue.
func (h *RepositionHandler) DueStatusHandler(w http.ResponseWriter, r *http.Request) {
	residentID := mux.Vars(r)["id"]

	status, err := h.Service.DueStatus(r.Context(), residentID)
	if err != nil {
		if err == scheduling.ErrInvalidInterval {
			http.Error(w, "No valid interval configured for resident", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to compute due status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// CompleteHandler records a finished repositioning for a resident.
func (h *RepositionHandler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	residentID := mux.Vars(r)["id"]

	var payload struct {
		Params   models.RepositionParams   `json:"params"`
		Guidance models.RepositionGuidance `json:"guidance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	event, err := h.Service.LogCompletion(r.Context(), residentID, payload.Params, payload.Guidance)
	if err != nil {
		http.Error(w, "Failed to log completion", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(event)
}

// GuidanceHandler recommends a repositioning technique for the given
// resident parameters.
func (h *RepositionHandler) GuidanceHandler(w http.ResponseWriter, r *http.Request) {
	var params models.RepositionParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	guidance := h.Service.Guidance(params.WeightKg, params.Mobility, params.Pain)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(guidance)
}

// GuideStepsHandler returns the guided repositioning checklist.
func (h *RepositionHandler) GuideStepsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(services.GuideSteps)
}

// HistoryHandler returns the recorded repositioning events for a resident,
// most recent first.
func (h *RepositionHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	residentID := mux.Vars(r)["id"]

	events, err := h.Service.History(r.Context(), residentID)
	if err != nil {
		http.Error(w, "Failed to fetch history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}
