package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/internal/services"
	"github.com/serwaa467/ElderCare_Manager/pkg/logger"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ResidentHandler struct {
	Service *services.ResidentService
}

func NewResidentHandler(service *services.ResidentService) *ResidentHandler {
	return &ResidentHandler{Service: service}
}

// CreateResidentHandler handles creation of a new resident
func (h *ResidentHandler) CreateResidentHandler(w http.ResponseWriter, r *http.Request) {
	var resident models.Resident
	if err := json.NewDecoder(r.Body).Decode(&resident); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(resident.Name) == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateResident(r.Context(), &resident)
	if err != nil {
		http.Error(w, "Failed to create resident", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetResidentHandler retrieves a specific resident by ID
func (h *ResidentHandler) GetResidentHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	resident, err := h.Service.GetResident(r.Context(), id)
	if err != nil {
		http.Error(w, "Resident not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resident)
}

// ListResidentsHandler returns a filtered, sorted page of residents.
// Query params: search, mobility (repeatable or comma separated), diet,
// sort (name_asc|name_desc), page, page_size.
func (h *ResidentHandler) ListResidentsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var mobility []string
	for _, v := range q["mobility"] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				mobility = append(mobility, part)
			}
		}
	}

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	result, err := h.Service.ListResidents(r.Context(), services.ResidentQuery{
		Search:   q.Get("search"),
		Mobility: mobility,
		Diet:     q.Get("diet"),
		Sort:     q.Get("sort"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		http.Error(w, "Failed to fetch residents", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// UpdateResidentHandler updates a resident
func (h *ResidentHandler) UpdateResidentHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var resident models.Resident
	if err := json.NewDecoder(r.Body).Decode(&resident); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateResident(r.Context(), id, &resident)
	if err != nil {
		http.Error(w, "Failed to update resident", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// DeleteResidentHandler deletes a resident
func (h *ResidentHandler) DeleteResidentHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.DeleteResident(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete resident", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportResidentsHandler streams all residents as CSV or JSON depending on
// the format query param (csv by default).
func (h *ResidentHandler) ExportResidentsHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	stamp := time.Now().Format("20060102")

	if format == "json" {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=residents_"+stamp+".json")
		if err := h.Service.ExportJSON(r.Context(), w); err != nil {
			logger.Log.WithError(err).Error("Failed to export residents as JSON")
		}
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=residents_"+stamp+".csv")
	if err := h.Service.ExportCSV(r.Context(), w); err != nil {
		logger.Log.WithError(err).Error("Failed to export residents as CSV")
	}
}

// ImportResidentsHandler reads residents from the request body (CSV or JSON,
// chosen by the format query param) and inserts them under a fresh batch ID.
func (h *ResidentHandler) ImportResidentsHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	batchID := uuid.New().String()

	var result *services.ImportResult
	var err error
	if r.URL.Query().Get("format") == "json" {
		result, err = h.Service.ImportJSON(r.Context(), r.Body, batchID)
	} else {
		result, err = h.Service.ImportCSV(r.Context(), r.Body, batchID)
	}
	if err != nil {
		http.Error(w, "Failed to import residents", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
