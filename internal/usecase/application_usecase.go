package usecase

import (
	"context"
	"errors"

	"resume-match/internal/domain/document"
	"resume-match/internal/domain/job"
	"resume-match/internal/pipeline"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApplicationUsecase interface {
	// Apply records the application. A pending document is dispatched so its match is scored
	// when the run commits; a completed one is scored immediately.
	Apply(ctx context.Context, actor Actor, jobID, documentID uuid.UUID) (job.Application, error)
	// List returns the candidate's own applications, or for a recruiter the applications
	// to their postings.
	List(ctx context.Context, actor Actor, limit, offset int) ([]job.Application, error)
	// Get is allowed for the applicant and for the recruiter who owns the posting.
	Get(ctx context.Context, actor Actor, id uuid.UUID) (job.Application, error)
	// UpdateStatus moves an application through review. Only the posting's recruiter may.
	UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (job.Application, error)
}

type Applications struct {
	documents    DocumentUsecase
	jobs         JobUsecase
	analyses     repository.AnalysisRepository
	applications repository.ApplicationRepository
	matching     MatchingUsecase
	dispatcher   pipeline.Dispatcher
	logger       *zap.Logger
}

func NewApplicationUsecase(
	documents DocumentUsecase,
	jobs JobUsecase,
	analyses repository.AnalysisRepository,
	applications repository.ApplicationRepository,
	matching MatchingUsecase,
	dispatcher pipeline.Dispatcher,
	logger *zap.Logger,
) *Applications {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applications{
		documents:    documents,
		jobs:         jobs,
		analyses:     analyses,
		applications: applications,
		matching:     matching,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

func (u *Applications) Apply(ctx context.Context, actor Actor, jobID, documentID uuid.UUID) (job.Application, error) {
	if jobID == uuid.Nil || documentID == uuid.Nil {
		return job.Application{}, ErrInvalidInput
	}

	j, err := u.jobs.Get(ctx, jobID)
	if err != nil {
		return job.Application{}, err
	}
	if !j.IsActive {
		return job.Application{}, ErrJobInactive
	}

	doc, err := u.documents.Get(ctx, actor, documentID)
	if err != nil {
		return job.Application{}, err
	}
	if doc.OwnerID != actor.UserID {
		return job.Application{}, ErrForbidden
	}

	app, err := u.applications.Create(ctx, job.Application{
		JobID:       jobID,
		ApplicantID: actor.UserID,
		DocumentID:  documentID,
	})
	if err != nil {
		u.logger.Error("create application failed", zap.Error(err))
		return job.Application{}, ErrInternal
	}

	switch doc.Status {
	case document.StatusPending:
		if err := u.dispatcher.Dispatch(ctx, documentID); err != nil {
			u.logger.Warn("dispatch on apply failed", zap.String("document_id", documentID.String()), zap.Error(err))
		}
	case document.StatusCompleted:
		p, err := u.analyses.GetProfileByDocument(ctx, documentID)
		if err != nil {
			if !errors.Is(err, repository.ErrProfileNotFound) {
				u.logger.Warn("load profile on apply failed", zap.Error(err))
			}
			break
		}
		if _, err := u.matching.Compute(ctx, actor, p.ID, jobID); err != nil {
			u.logger.Warn("match on apply failed", zap.Error(err))
		}
	}

	return app, nil
}

func (u *Applications) List(ctx context.Context, actor Actor, limit, offset int) ([]job.Application, error) {
	if !actor.valid() {
		return nil, ErrUnauthorized
	}

	var (
		out []job.Application
		err error
	)
	if actor.IsRecruiter() {
		out, err = u.applications.ListByRecruiter(ctx, actor.UserID, limit, offset)
	} else {
		out, err = u.applications.ListByApplicant(ctx, actor.UserID, limit, offset)
	}
	if err != nil {
		u.logger.Error("list applications failed", zap.String("user_id", actor.UserID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Applications) Get(ctx context.Context, actor Actor, id uuid.UUID) (job.Application, error) {
	a, _, err := u.load(ctx, actor, id)
	return a, err
}

func (u *Applications) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (job.Application, error) {
	st, err := job.ParseApplicationStatus(status)
	if err != nil {
		return job.Application{}, ErrInvalidInput
	}

	_, postedBy, err := u.load(ctx, actor, id)
	if err != nil {
		return job.Application{}, err
	}
	if !actor.IsRecruiter() || postedBy != actor.UserID {
		return job.Application{}, ErrForbidden
	}

	a, err := u.applications.UpdateStatus(ctx, id, st)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return job.Application{}, ErrNotFound
		}
		u.logger.Error("update application status failed", zap.String("application_id", id.String()), zap.Error(err))
		return job.Application{}, ErrInternal
	}
	return a, nil
}

// load returns the application and the recruiter of its posting after the visibility check.
func (u *Applications) load(ctx context.Context, actor Actor, id uuid.UUID) (job.Application, uuid.UUID, error) {
	if !actor.valid() {
		return job.Application{}, uuid.Nil, ErrUnauthorized
	}
	if id == uuid.Nil {
		return job.Application{}, uuid.Nil, ErrInvalidInput
	}

	a, err := u.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return job.Application{}, uuid.Nil, ErrNotFound
		}
		return job.Application{}, uuid.Nil, ErrInternal
	}
	j, err := u.jobs.Get(ctx, a.JobID)
	if err != nil {
		return job.Application{}, uuid.Nil, err
	}
	if a.ApplicantID != actor.UserID && j.RecruiterID != actor.UserID {
		return job.Application{}, uuid.Nil, ErrForbidden
	}
	return a, j.RecruiterID, nil
}
