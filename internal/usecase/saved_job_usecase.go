package usecase

import (
	"context"
	"errors"

	"resume-match/internal/domain/job"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SavedJobUsecase interface {
	List(ctx context.Context, actor Actor, limit, offset int) ([]job.SavedJob, error)
	// Save bookmarks an active posting for the caller.
	Save(ctx context.Context, actor Actor, jobID uuid.UUID) (job.SavedJob, error)
	Remove(ctx context.Context, actor Actor, id uuid.UUID) error
}

type SavedJobs struct {
	saved  repository.SavedJobRepository
	jobs   JobUsecase
	logger *zap.Logger
}

func NewSavedJobUsecase(saved repository.SavedJobRepository, jobs JobUsecase, logger *zap.Logger) *SavedJobs {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SavedJobs{saved: saved, jobs: jobs, logger: logger}
}

func (u *SavedJobs) List(ctx context.Context, actor Actor, limit, offset int) ([]job.SavedJob, error) {
	if !actor.valid() {
		return nil, ErrUnauthorized
	}
	out, err := u.saved.ListByUser(ctx, actor.UserID, limit, offset)
	if err != nil {
		u.logger.Error("list saved jobs failed", zap.String("user_id", actor.UserID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

func (u *SavedJobs) Save(ctx context.Context, actor Actor, jobID uuid.UUID) (job.SavedJob, error) {
	if !actor.valid() {
		return job.SavedJob{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return job.SavedJob{}, ErrInvalidInput
	}

	p, err := u.jobs.Get(ctx, jobID)
	if err != nil {
		return job.SavedJob{}, err
	}
	if !p.IsActive {
		return job.SavedJob{}, ErrJobInactive
	}

	s, err := u.saved.Save(ctx, job.SavedJob{UserID: actor.UserID, JobID: jobID})
	if err != nil {
		u.logger.Error("save job failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return job.SavedJob{}, ErrInternal
	}
	s.Job = p
	return s, nil
}

func (u *SavedJobs) Remove(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.valid() {
		return ErrUnauthorized
	}
	if err := u.saved.Delete(ctx, actor.UserID, id); err != nil {
		if errors.Is(err, repository.ErrSavedJobNotFound) {
			return ErrNotFound
		}
		u.logger.Error("remove saved job failed", zap.String("saved_job_id", id.String()), zap.Error(err))
		return ErrInternal
	}
	return nil
}
