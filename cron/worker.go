package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"handyhelp/config"
	"handyhelp/models"
	"handyhelp/services/tasks"
	"handyhelp/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// WorkflowResumer continues an interrupted booking workflow.
type WorkflowResumer interface {
	ResumeWorkflow(ctx context.Context, workflowID string) error
}

// QueueRedisOpt is the asynq connection for the workflow queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitWorkflowWorker runs the async worker in background. The returned
// server should be shut down on exit.
func InitWorkflowWorker(resumer WorkflowResumer) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeWorkflowResume, HandleWorkflowResume(resumer))

	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		logger.Info("Starting workflow worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Start(mux); err != nil {
				logger.Error("Workflow worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Error("Workflow worker gave up; failed workflows resume only on client retry")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	return srv
}

// HandleWorkflowResume decodes a resume task and hands it to the resumer.
// Tasks that can never succeed are not retried.
func HandleWorkflowResume(resumer WorkflowResumer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.WorkflowResumePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid workflow resume payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}

		logger.Info("Resuming booking workflow", zap.String("workflowId", p.WorkflowID), zap.String("bookingId", p.BookingID))

		err := resumer.ResumeWorkflow(ctx, p.WorkflowID)
		if err == nil {
			return nil
		}
		switch utils.KindOf(err) {
		case utils.KindConflict:
			logger.Info("Workflow lost its booking to another action", zap.String("workflowId", p.WorkflowID))
			return nil
		case utils.KindNotFound, utils.KindValidation:
			logger.Warn("Dropping workflow resume", zap.String("workflowId", p.WorkflowID), zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		logger.Error("Workflow resume failed", zap.String("workflowId", p.WorkflowID), zap.Error(err))
		return err
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			utils.GetLogger().Warn("Workflow queue Redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
