package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"medledger/config"
	"medledger/models"
	"medledger/services/notification"
	"medledger/services/reconcile"

	"github.com/hibiken/asynq"
)

// TypeRevenueRefresh triggers a full authoritative re-projection.
const TypeRevenueRefresh = "revenue:refresh"

// InitReconcileWorker runs the async worker in background. It delivers settlement
// notices and performs the periodic authoritative refresh of the revenue view.
func InitReconcileWorker(notifSvc notification.NotificationService, reconcileSvc reconcile.ReconcileService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeSettlementNotify, handleSettlementNotice(notifSvc))
	mux.HandleFunc(TypeRevenueRefresh, handleRevenueRefresh(reconcileSvc))

	// Start the periodic refresh ticker.
	go runRefreshTicker(redisOpts)

	// Start async worker with retry logic
	go func() {
		log.Println("[ReconcileWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReconcileWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReconcileWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleSettlementNotice(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var notice models.SettlementNotice
		if err := json.Unmarshal(task.Payload(), &notice); err != nil {
			log.Printf("[SettlementNotice] invalid payload: %v", err)
			return nil // nothing to retry
		}

		// Delivery is best effort; a failed push never resurfaces as a settlement error.
		if err := notifSvc.NotifySettlement(ctx, notice); err != nil {
			log.Printf("[SettlementNotice] delivery failed for doctor %s: %v", notice.DoctorID, err)
		}
		return nil
	}
}

func handleRevenueRefresh(reconcileSvc reconcile.ReconcileService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		if _, err := reconcileSvc.Refresh(ctx); err != nil {
			log.Printf("[RevenueRefresh] refresh failed: %v", err)
		}
		return nil
	}
}

// runRefreshTicker enqueues a refresh task on the configured cadence.
func runRefreshTicker(redisOpts asynq.RedisClientOpt) {
	interval := time.Duration(config.AppConfig.RefreshIntervalSeconds) * time.Second
	if interval <= 0 {
		return
	}

	client := asynq.NewClient(redisOpts)
	defer client.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		task := asynq.NewTask(TypeRevenueRefresh, nil, asynq.MaxRetry(0))
		if _, err := client.Enqueue(task); err != nil {
			log.Printf("[RevenueRefresh] enqueue failed: %v", err)
		}
	}
}
