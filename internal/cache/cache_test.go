package cache

import (
	"context"
	"testing"
	"time"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/models"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init redis failed: %v", err)
	}
	if Enabled() {
		t.Fatalf("cache should be disabled")
	}
	if Client() != nil {
		t.Fatalf("client should be nil when disabled")
	}

	ctx := context.Background()
	if err := SetTagList(ctx, []models.Tag{{ID: 1, Slug: "breakfast"}}); err != nil {
		t.Fatalf("set should be noop: %v", err)
	}
	tags, hit, err := GetTagList(ctx)
	if err != nil || hit || tags != nil {
		t.Fatalf("unexpected disabled get: hit=%v err=%v tags=%v", hit, err, tags)
	}
	if err := Ping(ctx); err != nil {
		t.Fatalf("ping should be noop: %v", err)
	}
}

func TestBuildKeyPrefix(t *testing.T) {
	UseClient(nil, "")
	if got := BuildKey("catalog:tags"); got != "fg:catalog:tags" {
		t.Fatalf("unexpected key: got=%s expected=fg:catalog:tags", got)
	}
	if got := BuildKey("  "); got != "fg" {
		t.Fatalf("unexpected empty key: got=%s expected=fg", got)
	}
}

func TestBuildUserAuthState(t *testing.T) {
	invalidBefore := time.Unix(1700000000, 0)
	state := BuildUserAuthState(&models.User{
		ID:                 7,
		Status:             "active",
		IsStaff:            true,
		TokenVersion:       3,
		TokenInvalidBefore: &invalidBefore,
	})
	if state.UserID != 7 || state.TokenVersion != 3 || !state.IsStaff {
		t.Fatalf("unexpected state: %+v", state)
	}
	if state.TokenInvalidBefore != 1700000000 {
		t.Fatalf("unexpected invalid before: got=%d", state.TokenInvalidBefore)
	}
	if BuildUserAuthState(nil) != nil {
		t.Fatalf("nil user should build nil state")
	}
	if got := BuildAdminAuthState(&models.Admin{ID: 1}).TokenInvalidBefore; got != 0 {
		t.Fatalf("unset invalid before should be 0, got=%d", got)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	UseClient(nil, "test")
	if Enabled() {
		t.Fatalf("nil client should leave cache disabled")
	}
	if got := BuildKey("auth:user:1"); got != "test:auth:user:1" {
		t.Fatalf("prefix should survive without a client: %s", got)
	}
	for i := 0; i < 2; i++ {
		if err := Close(); err != nil {
			t.Fatalf("close #%d failed: %v", i, err)
		}
	}
	if got := BuildKey("x"); got != "fg:x" {
		t.Fatalf("closed cache should fall back to default prefix: %s", got)
	}
}
