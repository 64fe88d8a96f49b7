package cache

import (
	"context"
	"errors"
	"testing"

	"resume-match/internal/config"

	"github.com/google/uuid"
)

func TestRedis_BypassesWhenNotConfigured(t *testing.T) {
	t.Parallel()

	r := NewRedis(config.RedisConfig{}, nil)
	ctx := context.Background()

	if err := r.SetJSON(ctx, "k", map[string]int{"a": 1}, 0); err != nil {
		t.Fatalf("set must be a no-op, got %v", err)
	}
	var out map[string]int
	found, err := r.GetJSON(ctx, "k", &out)
	if err != nil || found {
		t.Fatalf("expected miss, got found=%v err=%v", found, err)
	}
	if err := r.InvalidateDocument(ctx, uuid.New()); err != nil {
		t.Fatalf("invalidate must be a no-op, got %v", err)
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("expected ping error without a server")
	}
}

func TestKeys(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("6f1c1f8e-1d6a-4c55-9d59-0c8b8e3f5a10")
	if got := AnalysisKey(id); got != "documents:6f1c1f8e-1d6a-4c55-9d59-0c8b8e3f5a10:analysis" {
		t.Fatalf("unexpected analysis key %q", got)
	}
	if AnalysisKey(id) == FeedbackKey(id) {
		t.Fatalf("analysis and feedback keys must differ")
	}
}

func TestPubSub_UnavailableWithoutServer(t *testing.T) {
	t.Parallel()

	r := NewRedis(config.RedisConfig{}, nil)
	ctx := context.Background()

	if err := r.Publish(ctx, StatusChannel, []byte("{}")); !errors.Is(err, ErrPubSubUnavailable) {
		t.Fatalf("expected ErrPubSubUnavailable, got %v", err)
	}
	err := r.Subscribe(ctx, StatusChannel, func([]byte) { t.Fatalf("unexpected message") })
	if !errors.Is(err, ErrPubSubUnavailable) {
		t.Fatalf("expected ErrPubSubUnavailable, got %v", err)
	}
}
