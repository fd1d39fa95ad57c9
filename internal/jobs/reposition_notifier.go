package jobs

import (
	"context"

	"github.com/serwaa467/ElderCare_Manager/internal/services"
	"github.com/sirupsen/logrus"
)

// RepositionNotifier drives the periodic due scan that turns overdue and
// due-soon repositioning statuses into notifications.
type RepositionNotifier struct {
	NotificationService *services.NotificationService
}

// NewRepositionNotifier creates a new instance of RepositionNotifier
func NewRepositionNotifier(notifService *services.NotificationService) *RepositionNotifier {
	return &RepositionNotifier{
		NotificationService: notifService,
	}
}

// RunDueScan executes one scan tick. Errors are returned so the cron driver
// can log them; the next tick retries from the persisted throttle state.
func (n *RepositionNotifier) RunDueScan(ctx context.Context) error {
	if err := n.NotificationService.RunDueScan(ctx); err != nil {
		return err
	}
	logrus.Debug("Reposition due scan completed")
	return nil
}
