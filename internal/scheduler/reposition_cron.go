package cron

import (
	"context"
	"fmt"

	"github.com/serwaa467/ElderCare_Manager/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartRepositionCronJobs schedules the due scan at the configured cadence
// (in minutes). The cron runner skips a tick if the previous one is still
// running, so scans never overlap.
func StartRepositionCronJobs(notifier *jobs.RepositionNotifier, everyMins int) *cron.Cron {
	if everyMins <= 0 {
		everyMins = 1
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	spec := fmt.Sprintf("@every %dm", everyMins)
	_, err := c.AddFunc(spec, func() {
		if err := notifier.RunDueScan(context.Background()); err != nil {
			logrus.WithError(err).Error("Reposition due scan failed")
		}
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to schedule reposition due scan")
		return c
	}

	c.Start()
	logrus.WithField("every_mins", everyMins).Info("Reposition due scan scheduled")
	return c
}
