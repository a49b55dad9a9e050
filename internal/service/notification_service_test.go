package service

import (
	"testing"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/queue"
)

func TestDispatchRecipePublishedPagesFollowers(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	recipe := &models.Recipe{AuthorID: author.ID, Name: "Pie", Image: "recipes/p.png", Text: "t", CookingTime: 40}
	if err := env.db.Create(recipe).Error; err != nil {
		t.Fatalf("create recipe failed: %v", err)
	}
	for _, name := range []string{"f1", "f2", "f3", "f4", "f5"} {
		follower := env.createUser(t, name)
		if err := env.follows.Create(&models.Follow{UserID: follower.ID, AuthorID: author.ID}); err != nil {
			t.Fatalf("create follow failed: %v", err)
		}
	}

	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	email := NewEmailService(&config.EmailConfig{Enabled: true, Host: "smtp.invalid", Port: 25, From: "no-reply@foodgram.example"})
	svc := NewNotificationService(env.cfg, env.recipes, env.users, env.follows, email, queueClient)
	svc.batchSize = 2

	dispatched, err := svc.DispatchRecipePublished(queue.RecipePublishedPayload{RecipeID: recipe.ID, AuthorID: author.ID, Locale: "en-US"})
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if dispatched != 5 {
		t.Fatalf("unexpected dispatched count: got=%d expected=5", dispatched)
	}

	missing, err := svc.DispatchRecipePublished(queue.RecipePublishedPayload{RecipeID: recipe.ID + 100, AuthorID: author.ID})
	if err != nil || missing != 0 {
		t.Fatalf("missing recipe should be skipped: count=%d err=%v", missing, err)
	}
}

func TestSendFollowerEmailSkipsStaleRelations(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	stranger := env.createUser(t, "stranger")
	recipe := &models.Recipe{AuthorID: author.ID, Name: "Pie", Image: "recipes/p.png", Text: "t", CookingTime: 40}
	if err := env.db.Create(recipe).Error; err != nil {
		t.Fatalf("create recipe failed: %v", err)
	}
	svc := NewNotificationService(env.cfg, env.recipes, env.users, env.follows, NewEmailService(&config.EmailConfig{}), nil)

	if err := svc.SendFollowerEmail(queue.FollowerRecipeEmailPayload{RecipeID: recipe.ID, FollowerID: stranger.ID}); err != nil {
		t.Fatalf("non follower should be skipped: %v", err)
	}
	if err := svc.SendFollowerEmail(queue.FollowerRecipeEmailPayload{RecipeID: recipe.ID + 1, FollowerID: stranger.ID}); err != nil {
		t.Fatalf("missing recipe should be skipped: %v", err)
	}
	if got := svc.recipeURL(7); got != "http://localhost:8080/recipes/7" {
		t.Fatalf("unexpected recipe url: %s", got)
	}
	if got := displayName(&models.User{Username: "nick"}); got != "nick" {
		t.Fatalf("unexpected display name: %s", got)
	}
}
