package usecase

import (
	"context"
	"errors"
	"testing"

	"resume-match/internal/domain/analysis"
	"resume-match/internal/domain/document"
	"resume-match/internal/domain/job"
	"resume-match/internal/domain/matching"

	"github.com/google/uuid"
)

type matchingFixture struct {
	docs     *mockDocRepo
	analyses *mockAnalysisRepo
	jobs     *mockJobRepo
	apps     *mockApplicationRepo
	matches  *mockMatchRepo
	profile  analysis.Profile
	owner    Actor
	uc       *Matching
}

func newMatchingFixture(postings ...job.Posting) matchingFixture {
	f := matchingFixture{
		analyses: newMockAnalysisRepo(),
		jobs:     newMockJobRepo(postings...),
		matches:  newMockMatchRepo(),
		profile:  analysis.Profile{ID: uuid.New(), DocumentID: uuid.New(), Skills: []string{"Go", "Docker", "SQL"}},
		owner:    candidate(),
	}
	f.apps = &mockApplicationRepo{jobs: f.jobs}
	f.docs = newMockDocRepo(document.Document{ID: f.profile.DocumentID, OwnerID: f.owner.UserID, Status: document.StatusCompleted})
	f.analyses.profiles[f.profile.DocumentID] = f.profile
	f.uc = NewMatchingUsecase(f.docs, f.analyses, f.jobs, f.apps, f.matches, nil)
	return f
}

func posting(skills ...string) job.Posting {
	return job.Posting{ID: uuid.New(), Type: job.TypeFullTime, ExperienceLevel: job.LevelMid, RequiredSkills: skills, IsActive: true}
}

func TestMatching_Get_AbsentIsNil(t *testing.T) {
	t.Parallel()

	f := newMatchingFixture()
	rec, err := f.uc.Get(context.Background(), f.owner, f.profile.ID, uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record for an unscored pair, got %+v", rec)
	}
}

func TestMatching_Compute(t *testing.T) {
	t.Parallel()

	j := posting("go", "kubernetes")
	f := newMatchingFixture(j)

	rec, err := f.uc.Compute(context.Background(), f.owner, f.profile.ID, j.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.MatchScore == nil || *rec.MatchScore != 50 {
		t.Fatalf("expected score 50, got %v", rec.MatchScore)
	}

	got, err := f.uc.Get(context.Background(), f.owner, f.profile.ID, j.ID)
	if err != nil || got == nil || got.ID != rec.ID {
		t.Fatalf("expected stored record, got %+v (%v)", got, err)
	}

	again, _ := f.uc.Compute(context.Background(), f.owner, f.profile.ID, j.ID)
	if again.ID != rec.ID {
		t.Fatalf("recompute must update the same record")
	}
}

func TestMatching_Compute_NotFound(t *testing.T) {
	t.Parallel()

	j := posting("go")
	f := newMatchingFixture(j)

	if _, err := f.uc.Compute(context.Background(), f.owner, uuid.New(), j.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown profile, got %v", err)
	}
	if _, err := f.uc.Compute(context.Background(), f.owner, f.profile.ID, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown job, got %v", err)
	}
	if _, err := f.uc.Compute(context.Background(), f.owner, uuid.Nil, j.ID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatching_ProfileMatches_OrderedAndFiltered(t *testing.T) {
	t.Parallel()

	low := posting("rust", "go", "elixir", "haskell")
	high := posting("go", "docker")
	mid := posting("go", "java")
	inactive := posting("go")
	inactive.IsActive = false
	senior := posting("go", "docker", "sql")
	senior.ExperienceLevel = job.LevelSenior

	f := newMatchingFixture(low, high, mid, inactive, senior)

	got, err := f.uc.ProfileMatches(context.Background(), f.owner, f.profile.ID, matching.Filter{ExperienceLevel: job.LevelMid})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
	if got[0].JobID != high.ID || got[1].JobID != mid.ID || got[2].JobID != low.ID {
		t.Fatalf("unexpected order: %v %v %v", *got[0].MatchScore, *got[1].MatchScore, *got[2].MatchScore)
	}
}

func TestMatching_MatchApplications_SkipsInactive(t *testing.T) {
	t.Parallel()

	active := posting("go")
	closed := posting("docker")
	closed.IsActive = false
	f := newMatchingFixture(active, closed)

	for _, jobID := range []uuid.UUID{active.ID, closed.ID} {
		_, _ = f.apps.Create(context.Background(), job.Application{JobID: jobID, DocumentID: f.profile.DocumentID})
	}

	if err := f.uc.MatchApplications(context.Background(), f.profile); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(f.matches.records) != 1 {
		t.Fatalf("expected one match record, got %d", len(f.matches.records))
	}
	if rec, _ := f.uc.Get(context.Background(), f.owner, f.profile.ID, active.ID); rec == nil || *rec.MatchScore != 100 {
		t.Fatalf("expected full match for the active job, got %+v", rec)
	}
}

func TestMatching_Access(t *testing.T) {
	t.Parallel()

	j := posting("go")
	f := newMatchingFixture(j)

	tests := []struct {
		name    string
		actor   Actor
		wantErr error
	}{
		{name: "owner", actor: f.owner},
		{name: "recruiter", actor: recruiter()},
		{name: "another candidate", actor: candidate(), wantErr: ErrForbidden},
		{name: "anonymous", actor: Actor{}, wantErr: ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.uc.Compute(context.Background(), tt.actor, f.profile.ID, j.ID); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Compute: expected %v, got %v", tt.wantErr, err)
			}
			if _, err := f.uc.Get(context.Background(), tt.actor, f.profile.ID, j.ID); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Get: expected %v, got %v", tt.wantErr, err)
			}
			if _, err := f.uc.ProfileMatches(context.Background(), tt.actor, f.profile.ID, matching.Filter{}); !errors.Is(err, tt.wantErr) {
				t.Fatalf("ProfileMatches: expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMatching_RejectsUnfinishedDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status  document.Status
		wantErr error
	}{
		{status: document.StatusPending, wantErr: ErrNotYetProcessed},
		{status: document.StatusProcessing, wantErr: ErrNotYetProcessed},
		{status: document.StatusFailed, wantErr: ErrRunFailed},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()

			j := posting("go")
			f := newMatchingFixture(j)
			doc := f.docs.docs[f.profile.DocumentID]
			doc.Status = tt.status
			doc.FailureReason = "no text"
			f.docs.docs[doc.ID] = doc

			if _, err := f.uc.Compute(context.Background(), f.owner, f.profile.ID, j.ID); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if _, err := f.uc.ProfileMatches(context.Background(), f.owner, f.profile.ID, matching.Filter{}); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if len(f.matches.records) != 0 {
				t.Fatalf("no record may be stored for a %s document", tt.status)
			}
		})
	}
}

func TestMatching_List(t *testing.T) {
	t.Parallel()

	j := posting("go", "docker")
	f := newMatchingFixture(j)
	if _, err := f.uc.Compute(context.Background(), f.owner, f.profile.ID, j.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, err := f.uc.List(context.Background(), f.owner, f.profile.ID, 0, 0)
	if err != nil || len(got) != 1 || got[0].JobID != j.ID {
		t.Fatalf("expected the stored record, got %+v (%v)", got, err)
	}
	if _, err := f.uc.List(context.Background(), candidate(), f.profile.ID, 0, 0); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if _, err := f.uc.List(context.Background(), f.owner, uuid.Nil, 10, 0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f.matches.listedBy != "owner:"+f.owner.UserID.String() {
		t.Fatalf("candidates list by owner, got %q", f.matches.listedBy)
	}
	r := recruiter()
	if _, err := f.uc.List(context.Background(), r, uuid.Nil, 10, 0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f.matches.listedBy != "recruiter:"+r.UserID.String() {
		t.Fatalf("recruiters list by posting owner, got %q", f.matches.listedBy)
	}
}
