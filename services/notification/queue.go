package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"medledger/config"
	"medledger/models"

	"github.com/hibiken/asynq"
)

// TypeSettlementNotify is the asynq task type for doctor settlement pushes.
const TypeSettlementNotify = "notify:settlement"

// AsynqNoticeQueue hands settlement notices to the background worker through asynq.
// It implements reconcile.NoticeQueue.
type AsynqNoticeQueue struct {
	client *asynq.Client
}

// NewAsynqNoticeQueue builds the queue client over the configured Redis instance.
func NewAsynqNoticeQueue() *AsynqNoticeQueue {
	return &AsynqNoticeQueue{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

// EnqueueSettlementNotice queues a notice for delivery. Delivery is fire-and-forget;
// the task is not retried on handler failure.
func (q *AsynqNoticeQueue) EnqueueSettlementNotice(ctx context.Context, notice models.SettlementNotice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("EnqueueSettlementNotice: marshal: %w", err)
	}
	task := asynq.NewTask(TypeSettlementNotify, payload, asynq.MaxRetry(0))
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("EnqueueSettlementNotice: enqueue: %w", err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (q *AsynqNoticeQueue) Close() error {
	return q.client.Close()
}
