// File: cron/worker.go
package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"slotbook/config"
	slotSvc "slotbook/services/slot"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeCountsReconcile = "counts:reconcile"

// InitReconcileWorker runs a background worker that periodically recounts
// confirmed bookings per slot and repairs any drifted counters. Booking
// writes keep the counters correct on their own; this is the safety net
// for counters corrupted out of band.
func InitReconcileWorker(slots slotSvc.SlotService, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReconcileDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCountsReconcile, handleReconcileTask(slots, logger))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.Local})
	spec := fmt.Sprintf("@every %dm", config.AppConfig.ReconcileIntervalMin)
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeCountsReconcile, nil)); err != nil {
		log.Printf("[ReconcileWorker] Failed to register schedule: %v", err)
		return
	}

	go func() {
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReconcileWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[ReconcileWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[ReconcileWorker] Scheduler stopped: %v", err)
		}
	}()
}

func handleReconcileTask(slots slotSvc.SlotService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		repaired, err := slots.RefreshAllBookingCounts(ctx)
		if err != nil {
			logger.Error("Booking count reconciliation failed", zap.Error(err))
			return err
		}
		logger.Info("Booking count reconciliation finished", zap.Int("slots", repaired))
		return nil
	}
}
