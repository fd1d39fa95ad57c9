package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/internal/services"
	"github.com/gorilla/mux"
)

type TaskHandler struct {
	Service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{Service: service}
}

// CreateTaskHandler creates a staff task.
func (h *TaskHandler) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(task.Title) == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateTask(r.Context(), &task)
	if err != nil {
		http.Error(w, "Failed to create task", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetTasksHandler returns tasks, optionally filtered by assignee and shift.
func (h *TaskHandler) GetTasksHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	tasks, err := h.Service.GetTasks(r.Context(), q.Get("assignee"), q.Get("shift"))
	if err != nil {
		http.Error(w, "Failed to fetch tasks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

// SetStatusHandler moves a task between open, in_progress and done.
func (h *TaskHandler) SetStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !models.ValidTaskStatus(payload.Status) {
		http.Error(w, "Invalid task status", http.StatusBadRequest)
		return
	}

	if err := h.Service.SetStatus(r.Context(), id, payload.Status); err != nil {
		http.Error(w, "Failed to update task", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": payload.Status})
}

// NudgeHandler records a reminder ping against a task.
func (h *TaskHandler) NudgeHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.Nudge(r.Context(), id); err != nil {
		http.Error(w, "Failed to nudge task", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"nudged": true})
}
