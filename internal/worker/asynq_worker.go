package worker

import (
	"context"
	"fmt"

	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/metrics"
	"github.com/foodgram-next/internal/provider"
	"github.com/foodgram-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskRecipePublishedNotify, c.handleRecipePublished)
	mux.HandleFunc(queue.TaskFollowerRecipeEmail, c.handleFollowerRecipeEmail)
}

// handleRecipePublished 扇出：为作者的每个关注者投递一封邮件任务
func (c *Consumer) handleRecipePublished(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_recipe_published_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.RecipePublishedPayload
	if err := queue.DecodePayload(task, &payload); err != nil {
		logger.Warnw("worker_recipe_published_unmarshal_failed", "error", err)
		return fmt.Errorf("decode recipe published payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.RecipeID == 0 || payload.AuthorID == 0 {
		logger.Debugw("worker_recipe_published_skip_invalid_payload",
			"recipe_id", payload.RecipeID,
			"author_id", payload.AuthorID,
		)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_recipe_published_service_unavailable", "recipe_id", payload.RecipeID)
		return nil
	}

	dispatched, err := c.NotificationService.DispatchRecipePublished(payload)
	if err != nil {
		logger.Warnw("worker_recipe_published_dispatch_failed",
			"recipe_id", payload.RecipeID,
			"dispatched", dispatched,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleFollowerRecipeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_follower_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.FollowerRecipeEmailPayload
	if err := queue.DecodePayload(task, &payload); err != nil {
		logger.Warnw("worker_follower_email_unmarshal_failed", "error", err)
		return fmt.Errorf("decode follower email payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.RecipeID == 0 || payload.FollowerID == 0 {
		logger.Debugw("worker_follower_email_skip_invalid_payload",
			"recipe_id", payload.RecipeID,
			"follower_id", payload.FollowerID,
		)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_follower_email_service_unavailable", "recipe_id", payload.RecipeID)
		return nil
	}

	err := c.NotificationService.SendFollowerEmail(payload)
	metrics.RecordFollowerEmail(err)
	if err != nil {
		logger.Warnw("worker_follower_email_send_failed",
			"recipe_id", payload.RecipeID,
			"follower_id", payload.FollowerID,
			"error", err,
		)
		return err
	}
	return nil
}
