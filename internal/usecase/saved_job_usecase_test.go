package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestSavedJobs(t *testing.T) {
	t.Parallel()

	open := posting("go")
	closed := posting("go")
	closed.IsActive = false
	repo := newMockSavedJobRepo()
	uc := NewSavedJobUsecase(repo, NewJobUsecase(newMockJobRepo(open, closed), nil, nil), nil)
	ctx := context.Background()
	user := candidate()

	s, err := uc.Save(ctx, user, open.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Job.ID != open.ID || s.UserID != user.UserID {
		t.Fatalf("unexpected saved job %+v", s)
	}
	again, err := uc.Save(ctx, user, open.ID)
	if err != nil || again.ID != s.ID {
		t.Fatalf("saving twice must return the same bookmark, got %+v (%v)", again, err)
	}

	if _, err := uc.Save(ctx, user, closed.ID); !errors.Is(err, ErrJobInactive) {
		t.Fatalf("expected ErrJobInactive, got %v", err)
	}
	if _, err := uc.Save(ctx, user, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.Save(ctx, Actor{}, open.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	list, err := uc.List(ctx, user, 20, 0)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one saved job, got %d (%v)", len(list), err)
	}
	if others, _ := uc.List(ctx, candidate(), 20, 0); len(others) != 0 {
		t.Fatalf("saved jobs are private, got %d", len(others))
	}

	if err := uc.Remove(ctx, candidate(), s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("another user cannot remove the bookmark, got %v", err)
	}
	if err := uc.Remove(ctx, user, s.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := uc.Remove(ctx, user, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after removal, got %v", err)
	}
}
