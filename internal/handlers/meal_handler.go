package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/internal/services"
	"github.com/gorilla/mux"
)

type MealHandler struct {
	Service *services.MealService
}

func NewMealHandler(service *services.MealService) *MealHandler {
	return &MealHandler{Service: service}
}

// CreateMealHandler adds a meal to the menu.
func (h *MealHandler) CreateMealHandler(w http.ResponseWriter, r *http.Request) {
	var meal models.Meal
	if err := json.NewDecoder(r.Body).Decode(&meal); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(meal.Name) == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateMeal(r.Context(), &meal)
	if err != nil {
		http.Error(w, "Failed to create meal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetMealsHandler returns the full menu.
func (h *MealHandler) GetMealsHandler(w http.ResponseWriter, r *http.Request) {
	meals, err := h.Service.GetMeals(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch meals", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(meals)
}

// DeleteMealHandler removes a meal from the menu.
func (h *MealHandler) DeleteMealHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.DeleteMeal(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete meal", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SubmitFeedbackHandler records meal feedback and returns the stored
// feedback with its sentiment and any allergy alert.
func (h *MealHandler) SubmitFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	mealID := mux.Vars(r)["id"]

	var payload struct {
		ResidentID string `json:"resident_id"`
		Rating     int    `json:"rating"`
		Comment    string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	result, err := h.Service.SubmitFeedback(r.Context(), mealID, payload.ResidentID, payload.Rating, payload.Comment)
	if err != nil {
		http.Error(w, "Failed to submit feedback", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

// GetFeedbackHandler returns all recorded meal feedback.
func (h *MealHandler) GetFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.Service.GetFeedback(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch feedback", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(feedback)
}
