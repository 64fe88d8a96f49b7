package usecase

import (
	"context"
	"errors"
	"testing"

	"resume-match/internal/domain/document"
	"resume-match/internal/domain/job"

	"github.com/google/uuid"
)

func newApplyFixture(doc document.Document, f matchingFixture, disp *mockDispatcher) *Applications {
	f.docs.docs[doc.ID] = doc
	docs := NewDocumentUsecase(f.docs, &mockFileStore{}, disp, nil)
	jobs := NewJobUsecase(f.jobs, nil, nil)
	return NewApplicationUsecase(docs, jobs, f.analyses, f.apps, f.uc, disp, nil)
}

func TestApply_PendingDocumentIsDispatched(t *testing.T) {
	t.Parallel()

	j := posting("go")
	f := newMatchingFixture(j)
	owner := candidate()
	doc := document.Document{ID: uuid.New(), OwnerID: owner.UserID, Status: document.StatusPending}
	disp := &mockDispatcher{}
	uc := newApplyFixture(doc, f, disp)

	app, err := uc.Apply(context.Background(), owner, j.ID, doc.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if app.DocumentID != doc.ID || app.ApplicantID != owner.UserID {
		t.Fatalf("unexpected application %+v", app)
	}
	if len(disp.dispatched) != 1 {
		t.Fatalf("expected the pending document to be dispatched")
	}
	if len(f.matches.records) != 0 {
		t.Fatalf("no match can be scored before the run completes")
	}
}

func TestApply_CompletedDocumentIsScored(t *testing.T) {
	t.Parallel()

	j := posting("go", "docker")
	f := newMatchingFixture(j)
	owner := f.owner
	doc := document.Document{ID: f.profile.DocumentID, OwnerID: owner.UserID, Status: document.StatusCompleted}
	uc := newApplyFixture(doc, f, &mockDispatcher{})

	if _, err := uc.Apply(context.Background(), owner, j.ID, doc.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	rec, _ := f.uc.Get(context.Background(), owner, f.profile.ID, j.ID)
	if rec == nil || *rec.MatchScore != 100 {
		t.Fatalf("expected a scored match, got %+v", rec)
	}

	// applying twice keeps one application
	if _, err := uc.Apply(context.Background(), owner, j.ID, doc.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(f.apps.apps) != 1 {
		t.Fatalf("expected one application, got %d", len(f.apps.apps))
	}
}

func TestApply_Rejections(t *testing.T) {
	t.Parallel()

	active := posting("go")
	closed := posting("go")
	closed.IsActive = false
	f := newMatchingFixture(active, closed)
	owner := candidate()
	doc := document.Document{ID: uuid.New(), OwnerID: owner.UserID, Status: document.StatusPending}
	uc := newApplyFixture(doc, f, &mockDispatcher{})

	tests := []struct {
		name    string
		actor   Actor
		jobID   uuid.UUID
		wantErr error
	}{
		{name: "inactive job", actor: owner, jobID: closed.ID, wantErr: ErrJobInactive},
		{name: "unknown job", actor: owner, jobID: uuid.New(), wantErr: ErrNotFound},
		{name: "someone else's document", actor: recruiter(), jobID: active.ID, wantErr: ErrForbidden},
		{name: "nil job", actor: owner, jobID: uuid.Nil, wantErr: ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Apply(context.Background(), tt.actor, tt.jobID, doc.ID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
	if len(f.apps.apps) != 0 {
		t.Fatalf("rejected applications must not be stored")
	}
}

func TestApplications_ListAndReview(t *testing.T) {
	t.Parallel()

	hiring := recruiter()
	j := posting("go")
	j.RecruiterID = hiring.UserID
	other := posting("go")
	other.RecruiterID = uuid.New()
	f := newMatchingFixture(j, other)
	owner := candidate()
	doc := document.Document{ID: uuid.New(), OwnerID: owner.UserID, Status: document.StatusPending}
	uc := newApplyFixture(doc, f, &mockDispatcher{})
	ctx := context.Background()

	app, err := uc.Apply(ctx, owner, j.ID, doc.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := uc.Apply(ctx, owner, other.ID, doc.ID); err != nil {
		t.Fatalf("apply: %v", err)
	}

	mine, err := uc.List(ctx, owner, 20, 0)
	if err != nil || len(mine) != 2 {
		t.Fatalf("applicant should see both applications, got %d (%v)", len(mine), err)
	}
	theirs, err := uc.List(ctx, hiring, 20, 0)
	if err != nil || len(theirs) != 1 || theirs[0].ID != app.ID {
		t.Fatalf("recruiter should see only applications to their postings, got %+v (%v)", theirs, err)
	}

	if _, err := uc.Get(ctx, candidate(), app.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a stranger, got %v", err)
	}
	if _, err := uc.Get(ctx, hiring, app.ID); err != nil {
		t.Fatalf("posting recruiter may view, got %v", err)
	}

	if _, err := uc.UpdateStatus(ctx, owner, app.ID, "H"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("applicants cannot review themselves, got %v", err)
	}
	if _, err := uc.UpdateStatus(ctx, recruiter(), app.ID, "H"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("another recruiter cannot review, got %v", err)
	}
	if _, err := uc.UpdateStatus(ctx, hiring, app.ID, "maybe"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.UpdateStatus(ctx, hiring, uuid.New(), "S"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	got, err := uc.UpdateStatus(ctx, hiring, app.ID, "s")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != job.ApplicationShortlisted {
		t.Fatalf("expected shortlisted, got %s", got.Status)
	}
}
