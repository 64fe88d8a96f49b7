package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resume-match/internal/domain/analysis"
	"resume-match/internal/domain/document"

	"github.com/google/uuid"
)

func TestAnalysis_GetAnalysis_Lifecycle(t *testing.T) {
	t.Parallel()

	owner := candidate()
	tests := []struct {
		name    string
		status  document.Status
		reason  string
		wantErr error
	}{
		{name: "pending", status: document.StatusPending, wantErr: ErrNotYetProcessed},
		{name: "processing", status: document.StatusProcessing, wantErr: ErrNotYetProcessed},
		{name: "failed", status: document.StatusFailed, reason: "extraction error: bad xref", wantErr: ErrRunFailed},
		{name: "completed", status: document.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := document.Document{ID: uuid.New(), OwnerID: owner.UserID, Status: tt.status, FailureReason: tt.reason}
			analyses := newMockAnalysisRepo()
			if tt.status == document.StatusCompleted {
				analyses.profiles[doc.ID] = analysis.Profile{ID: uuid.New(), DocumentID: doc.ID, Score: 1.2}
			}
			docs := NewDocumentUsecase(newMockDocRepo(doc), &mockFileStore{}, &mockDispatcher{}, nil)
			uc := NewAnalysisUsecase(docs, analyses, newMapCache(), nil)

			p, err := uc.GetAnalysis(context.Background(), owner, doc.ID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.reason != "" && !strings.Contains(err.Error(), tt.reason) {
				t.Fatalf("expected failure reason in %q", err)
			}
			if tt.wantErr == nil && p.DocumentID != doc.ID {
				t.Fatalf("unexpected profile %+v", p)
			}
		})
	}
}

func TestAnalysis_GetAnalysis_NotFound(t *testing.T) {
	t.Parallel()

	docs := NewDocumentUsecase(newMockDocRepo(), &mockFileStore{}, &mockDispatcher{}, nil)
	uc := NewAnalysisUsecase(docs, newMockAnalysisRepo(), nil, nil)

	if _, err := uc.GetAnalysis(context.Background(), candidate(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalysis_GetAnalysis_UsesCache(t *testing.T) {
	t.Parallel()

	owner := candidate()
	doc := document.Document{ID: uuid.New(), OwnerID: owner.UserID, Status: document.StatusCompleted}
	analyses := newMockAnalysisRepo()
	analyses.profiles[doc.ID] = analysis.Profile{ID: uuid.New(), DocumentID: doc.ID}
	docs := NewDocumentUsecase(newMockDocRepo(doc), &mockFileStore{}, &mockDispatcher{}, nil)
	uc := NewAnalysisUsecase(docs, analyses, newMapCache(), nil)

	for i := 0; i < 3; i++ {
		if _, err := uc.GetAnalysis(context.Background(), owner, doc.ID); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if analyses.calls != 1 {
		t.Fatalf("expected one repository read, got %d", analyses.calls)
	}
}

func TestAnalysis_GetFeedback(t *testing.T) {
	t.Parallel()

	owner := candidate()
	pending := document.Document{ID: uuid.New(), OwnerID: owner.UserID, Status: document.StatusPending}
	done := document.Document{ID: uuid.New(), OwnerID: owner.UserID, Status: document.StatusCompleted}

	analyses := newMockAnalysisRepo()
	analyses.advisories[done.ID] = analysis.Feedback(0, 0, 0)

	docs := NewDocumentUsecase(newMockDocRepo(pending, done), &mockFileStore{}, &mockDispatcher{}, nil)
	uc := NewAnalysisUsecase(docs, analyses, nil, nil)

	got, err := uc.GetFeedback(context.Background(), owner, pending.ID)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("expected empty feedback while pending, got %v (%v)", got, err)
	}

	got, err = uc.GetFeedback(context.Background(), owner, done.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 3 || got[0].Category != analysis.CategorySkillGap || got[2].Category != analysis.CategoryATS {
		t.Fatalf("unexpected feedback %+v", got)
	}
}
