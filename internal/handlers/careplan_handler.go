package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/internal/services"
	"github.com/gorilla/mux"
)

type CarePlanHandler struct {
	Service *services.CarePlanService
}

func NewCarePlanHandler(service *services.CarePlanService) *CarePlanHandler {
	return &CarePlanHandler{Service: service}
}

// CreateCarePlanHandler creates a recurring care plan item.
func (h *CarePlanHandler) CreateCarePlanHandler(w http.ResponseWriter, r *http.Request) {
	var plan models.CarePlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(plan.Title) == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateCarePlan(r.Context(), &plan)
	if err != nil {
		http.Error(w, "Failed to create care plan", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// ListCarePlansHandler returns care plans with computed due info, optionally
// filtered by resident_id.
func (h *CarePlanHandler) ListCarePlansHandler(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Service.ListCarePlans(r.Context(), r.URL.Query().Get("resident_id"))
	if err != nil {
		http.Error(w, "Failed to fetch care plans", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(plans)
}

// CompleteCarePlanHandler marks a care plan item done now.
func (h *CarePlanHandler) CompleteCarePlanHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload struct {
		Note string `json:"note"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&payload)
		r.Body.Close()
	}

	if err := h.Service.CompleteNow(r.Context(), id, payload.Note); err != nil {
		http.Error(w, "Failed to complete care plan item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"completed": true})
}

// RecentNotesHandler returns the latest completion notes for a care plan.
func (h *CarePlanHandler) RecentNotesHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	notes, err := h.Service.RecentNotes(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to fetch notes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notes)
}
