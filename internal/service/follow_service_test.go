package service

import (
	"errors"
	"testing"

	"github.com/foodgram-next/internal/models"
)

func TestFollowRules(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFollowService(env.follows, env.users, env.recipes, env.upload)
	reader := env.createUser(t, "reader")
	author := env.createUser(t, "author")

	if _, err := svc.Subscribe(reader.ID, reader.ID, 0); !errors.Is(err, ErrFollowSelf) {
		t.Fatalf("expected follow self error, got %v", err)
	}
	if _, err := svc.Subscribe(reader.ID, author.ID+100, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected missing author, got %v", err)
	}
	card, err := svc.Subscribe(reader.ID, author.ID, 0)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if card.ID != author.ID || !card.IsSubscribed || card.RecipesCount != 0 || card.Recipes == nil {
		t.Fatalf("unexpected follow card: %+v", card)
	}
	if _, err := svc.Subscribe(reader.ID, author.ID, 0); !errors.Is(err, ErrFollowExists) {
		t.Fatalf("expected duplicate follow error, got %v", err)
	}

	if err := svc.Unsubscribe(reader.ID, reader.ID); !errors.Is(err, ErrFollowSelf) {
		t.Fatalf("expected unfollow self error, got %v", err)
	}
	if err := svc.Unsubscribe(reader.ID, author.ID); err != nil {
		t.Fatalf("unsubscribe failed: %v", err)
	}
	if err := svc.Unsubscribe(reader.ID, author.ID); !errors.Is(err, ErrFollowNotFound) {
		t.Fatalf("expected follow not found, got %v", err)
	}
	if err := svc.Unsubscribe(reader.ID, author.ID+100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected missing author on unsubscribe, got %v", err)
	}
}

func TestSubscriptionsRecipesLimit(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFollowService(env.follows, env.users, env.recipes, env.upload)
	reader := env.createUser(t, "reader")
	first := env.createUser(t, "first")
	second := env.createUser(t, "second")

	for i, name := range []string{"A", "B", "C"} {
		recipe := &models.Recipe{AuthorID: first.ID, Name: name, Image: "recipes/x.png", Text: "t", CookingTime: i + 1}
		if err := env.db.Create(recipe).Error; err != nil {
			t.Fatalf("create recipe failed: %v", err)
		}
	}
	for _, authorID := range []uint{second.ID, first.ID} {
		if _, err := svc.Subscribe(reader.ID, authorID, 0); err != nil {
			t.Fatalf("subscribe failed: %v", err)
		}
	}

	cards, total, err := svc.Subscriptions(reader.ID, 1, 6, 2)
	if err != nil {
		t.Fatalf("subscriptions failed: %v", err)
	}
	if total != 2 || len(cards) != 2 {
		t.Fatalf("unexpected subscriptions: total=%d len=%d", total, len(cards))
	}
	if cards[0].ID != second.ID || cards[1].ID != first.ID {
		t.Fatalf("cards must follow subscription order: %d, %d", cards[0].ID, cards[1].ID)
	}
	if cards[1].RecipesCount != 3 || len(cards[1].Recipes) != 2 {
		t.Fatalf("unexpected recipes in card: count=%d len=%d", cards[1].RecipesCount, len(cards[1].Recipes))
	}
	if cards[1].Recipes[0].Image != "http://localhost:8080/media/recipes/x.png" {
		t.Fatalf("unexpected summary image: %s", cards[1].Recipes[0].Image)
	}

	empty, total, err := svc.Subscriptions(first.ID, 1, 6, 0)
	if err != nil {
		t.Fatalf("empty subscriptions failed: %v", err)
	}
	if total != 0 || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list: %+v", empty)
	}
}
