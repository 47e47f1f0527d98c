package scheduler

import (
	"context"
	"time"

	"kidspace/metrics"
	"kidspace/middleware"
	"kidspace/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	SystemMetricsInterval    = 15 * time.Second
	PendingApprovalsInterval = time.Minute
)

// Start schedules the background jobs and starts the scheduler.
// The caller stops it with Shutdown.
func Start(db *gorm.DB, log logrus.FieldLogger) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	// Every 15 seconds: memory, goroutine and host gauges
	_, err = sched.NewJob(
		gocron.DurationJob(SystemMetricsInterval),
		gocron.NewTask(func() {
			middleware.CollectSystemMetrics()
			if err := middleware.CollectHostMetrics(context.Background()); err != nil {
				log.WithError(err).Debug("some host metrics are unavailable")
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	// Every minute: size of the moderation queue
	_, err = sched.NewJob(
		gocron.DurationJob(PendingApprovalsInterval),
		gocron.NewTask(func() {
			if err := RefreshPendingApprovals(context.Background(), db); err != nil {
				log.WithError(err).Warn("failed to refresh pending approvals gauge")
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}

// RefreshPendingApprovals copies the moderation queue sizes into the gauge
func RefreshPendingApprovals(ctx context.Context, db *gorm.DB) error {
	challenges, solutions, err := services.CountPending(ctx, db)
	if err != nil {
		return err
	}
	metrics.PendingApprovals.WithLabelValues(services.KindChallenge).Set(float64(challenges))
	metrics.PendingApprovals.WithLabelValues(services.KindSolution).Set(float64(solutions))
	return nil
}
