package queue

import (
	"testing"

	"github.com/foodgram-next/internal/config"
)

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueRecipePublished(RecipePublishedPayload{RecipeID: 1, AuthorID: 2}, 0); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestRecipePublishedTaskRoundTrip(t *testing.T) {
	task, err := NewRecipePublishedTask(RecipePublishedPayload{RecipeID: 5, AuthorID: 9, Locale: "en-US"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskRecipePublishedNotify {
		t.Fatalf("unexpected task type: got=%s expected=%s", task.Type(), TaskRecipePublishedNotify)
	}
	var payload RecipePublishedPayload
	if err := DecodePayload(task, &payload); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if payload.RecipeID != 5 || payload.AuthorID != 9 || payload.Locale != "en-US" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("unexpected concurrency: got=%d expected=10", cfg.Concurrency)
	}
	if cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("default queue weight missing: %+v", cfg.Queues)
	}
}

func TestRedisOptFallbacks(t *testing.T) {
	if opt := redisOpt(nil); opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("nil config should use local redis: %+v", opt)
	}
	opt, cfg := BuildServerConfig(&config.QueueConfig{Concurrency: 3, Queues: map[string]int{"mail": 2}})
	if opt.Addr != "127.0.0.1:6379" || cfg.Concurrency != 3 || cfg.Queues["mail"] != 2 {
		t.Fatalf("explicit settings should win: opt=%+v cfg=%+v", opt, cfg)
	}
	var disabled *Client
	if disabled.Enabled() || disabled.Close() != nil {
		t.Fatalf("nil client should behave as disabled")
	}
}
