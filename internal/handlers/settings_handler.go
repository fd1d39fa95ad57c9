package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/internal/services"
)

type SettingsHandler struct {
	Service *services.SettingsService
}

func NewSettingsHandler(service *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Service: service}
}

// GetSettingsHandler returns the facility settings.
func (h *SettingsHandler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.GetSettings(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// SaveSettingsHandler replaces the facility settings.
func (h *SettingsHandler) SaveSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.SaveSettings(r.Context(), &settings); err != nil {
		http.Error(w, "Failed to save settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}
