package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/foodgram-next/internal/provider"
	"github.com/foodgram-next/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandlersRejectMalformedPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskRecipePublishedNotify, []byte("{broken"))

	err := consumer.handleRecipePublished(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload should skip retry, got %v", err)
	}

	task = asynq.NewTask(queue.TaskFollowerRecipeEmail, []byte("[]"))
	err = consumer.handleFollowerRecipeEmail(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload should skip retry, got %v", err)
	}
}

func TestHandlersSkipIncompletePayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task, err := queue.NewRecipePublishedTask(queue.RecipePublishedPayload{RecipeID: 3})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleRecipePublished(context.Background(), task); err != nil {
		t.Fatalf("payload without author should be skipped, got %v", err)
	}

	emailTask, err := queue.NewFollowerRecipeEmailTask(queue.FollowerRecipeEmailPayload{FollowerID: 7})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleFollowerRecipeEmail(context.Background(), emailTask); err != nil {
		t.Fatalf("payload without recipe should be skipped, got %v", err)
	}
}

func TestHandlersWithoutNotificationService(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task, err := queue.NewFollowerRecipeEmailTask(queue.FollowerRecipeEmailPayload{RecipeID: 1, FollowerID: 2})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleFollowerRecipeEmail(context.Background(), task); err != nil {
		t.Fatalf("missing service should not fail the task, got %v", err)
	}
}

func TestRegisterHandlesBothTasks(t *testing.T) {
	mux := asynq.NewServeMux()
	NewConsumer(&provider.Container{}).Register(mux)

	for _, typename := range []string{queue.TaskRecipePublishedNotify, queue.TaskFollowerRecipeEmail} {
		_, pattern := mux.Handler(asynq.NewTask(typename, nil))
		if pattern != typename {
			t.Fatalf("task %s not registered, pattern=%q", typename, pattern)
		}
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(nil, NewConsumer(&provider.Container{})); err == nil {
		t.Fatalf("expected error for disabled queue")
	}
}

func TestRetryDelayIsCapped(t *testing.T) {
	if got := retryDelay(0, nil, nil); got != time.Second {
		t.Fatalf("first retry should wait 1s, got %s", got)
	}
	if got := retryDelay(3, nil, nil); got != 8*time.Second {
		t.Fatalf("third retry should wait 8s, got %s", got)
	}
	if got := retryDelay(40, nil, nil); got != maxRetryDelay {
		t.Fatalf("delay should be capped, got %s", got)
	}
}

func TestStopWithoutServerIsNoop(t *testing.T) {
	var svc *Service
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("nil service stop should be a no-op: %v", err)
	}
}
