package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/serwaa467/ElderCare_Manager/internal/services"
	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: service}
}

// GetNotificationsHandler returns recent notifications, newest first.
func (h *NotificationHandler) GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.Service.GetNotifications(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch notifications", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notifications)
}

// MarkAsReadHandler marks a notification as read.
func (h *NotificationHandler) MarkAsReadHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.MarkNotificationAsRead(r.Context(), id); err != nil {
		http.Error(w, "Failed to mark notification as read", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"read": true})
}

// DeleteNotificationHandler removes a notification.
func (h *NotificationHandler) DeleteNotificationHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.DeleteNotification(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete notification", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RunScanHandler triggers an immediate due scan outside the cron cadence.
func (h *NotificationHandler) RunScanHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RunDueScan(r.Context()); err != nil {
		http.Error(w, "Failed to run due scan", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"scanned": true})
}
