package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"resume-match/internal/domain/analysis"
	"resume-match/internal/domain/document"
	"resume-match/internal/domain/job"
	"resume-match/internal/domain/match"
	"resume-match/internal/domain/matching"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxJobsPerProfileMatch = 500

type MatchingUsecase interface {
	// Compute scores the profile against the job now and stores the result.
	Compute(ctx context.Context, actor Actor, profileID, jobID uuid.UUID) (match.Record, error)
	// Get returns the stored record, or nil when the pair was never scored.
	Get(ctx context.Context, actor Actor, profileID, jobID uuid.UUID) (*match.Record, error)
	// ProfileMatches rescores the profile against every active job passing the filter,
	// best first.
	ProfileMatches(ctx context.Context, actor Actor, profileID uuid.UUID, filter matching.Filter) ([]match.Record, error)
	// List returns stored records, best first. With a profile id it lists that profile;
	// otherwise a candidate sees records for their own documents and a recruiter sees
	// records against their postings.
	List(ctx context.Context, actor Actor, profileID uuid.UUID, limit, offset int) ([]match.Record, error)
	MatchApplications(ctx context.Context, profile analysis.Profile) error
}

type Matching struct {
	documents    repository.DocumentRepository
	analyses     repository.AnalysisRepository
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	matches      repository.MatchRepository
	logger       *zap.Logger
}

func NewMatchingUsecase(
	documents repository.DocumentRepository,
	analyses repository.AnalysisRepository,
	jobs repository.JobRepository,
	applications repository.ApplicationRepository,
	matches repository.MatchRepository,
	logger *zap.Logger,
) *Matching {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{
		documents:    documents,
		analyses:     analyses,
		jobs:         jobs,
		applications: applications,
		matches:      matches,
		logger:       logger,
	}
}

// profileFor loads a profile the actor may match. The owner of the source document and
// any recruiter pass; the document must have completed its run.
func (u *Matching) profileFor(ctx context.Context, actor Actor, profileID uuid.UUID) (analysis.Profile, error) {
	if !actor.valid() {
		return analysis.Profile{}, ErrUnauthorized
	}
	if profileID == uuid.Nil {
		return analysis.Profile{}, ErrInvalidInput
	}

	p, err := u.analyses.GetProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return analysis.Profile{}, ErrNotFound
		}
		return analysis.Profile{}, ErrInternal
	}
	doc, err := u.documents.GetByID(ctx, p.DocumentID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return analysis.Profile{}, ErrNotFound
		}
		return analysis.Profile{}, ErrInternal
	}
	if doc.OwnerID != actor.UserID && !actor.IsRecruiter() {
		return analysis.Profile{}, ErrForbidden
	}

	switch doc.Status {
	case document.StatusPending, document.StatusProcessing:
		return analysis.Profile{}, ErrNotYetProcessed
	case document.StatusFailed:
		return analysis.Profile{}, fmt.Errorf("%w: %s", ErrRunFailed, doc.FailureReason)
	}
	return p, nil
}

func (u *Matching) Compute(ctx context.Context, actor Actor, profileID, jobID uuid.UUID) (match.Record, error) {
	if jobID == uuid.Nil {
		return match.Record{}, ErrInvalidInput
	}

	p, err := u.profileFor(ctx, actor, profileID)
	if err != nil {
		return match.Record{}, err
	}
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return match.Record{}, ErrNotFound
		}
		return match.Record{}, ErrInternal
	}

	return u.score(ctx, p, j)
}

func (u *Matching) score(ctx context.Context, p analysis.Profile, j job.Posting) (match.Record, error) {
	res := matching.Calculate(p.Skills, j.RequiredSkills)
	score := res.MatchScore

	rec, err := u.matches.Upsert(ctx, match.Record{
		ProfileID:     p.ID,
		JobID:         j.ID,
		MatchScore:    &score,
		MatchedSkills: res.MatchedSkills,
		MissingSkills: res.MissingSkills,
	})
	if err != nil {
		u.logger.Error("upsert match failed",
			zap.String("profile_id", p.ID.String()),
			zap.String("job_id", j.ID.String()),
			zap.Error(err),
		)
		return match.Record{}, ErrInternal
	}
	return rec, nil
}

func (u *Matching) Get(ctx context.Context, actor Actor, profileID, jobID uuid.UUID) (*match.Record, error) {
	if _, err := u.profileFor(ctx, actor, profileID); err != nil {
		return nil, err
	}
	rec, err := u.matches.Get(ctx, profileID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return nil, nil
		}
		return nil, ErrInternal
	}
	return &rec, nil
}

func (u *Matching) ProfileMatches(ctx context.Context, actor Actor, profileID uuid.UUID, filter matching.Filter) ([]match.Record, error) {
	p, err := u.profileFor(ctx, actor, profileID)
	if err != nil {
		return nil, err
	}

	out := make([]match.Record, 0)
	f := repository.JobFilter{JobType: filter.JobType, ExperienceLevel: filter.ExperienceLevel, Limit: 50}
	for f.Offset < maxJobsPerProfileMatch {
		page, err := u.jobs.ListJobs(ctx, f)
		if err != nil {
			return nil, ErrInternal
		}
		for _, j := range page {
			if !filter.Allows(j) {
				continue
			}
			rec, err := u.score(ctx, p, j)
			if err != nil {
				return nil, err
			}
			out = append(out, rec)
		}
		if len(page) < f.Limit {
			break
		}
		f.Offset += len(page)
	}

	sort.SliceStable(out, func(i, k int) bool { return *out[i].MatchScore > *out[k].MatchScore })
	return out, nil
}

func (u *Matching) List(ctx context.Context, actor Actor, profileID uuid.UUID, limit, offset int) ([]match.Record, error) {
	if !actor.valid() {
		return nil, ErrUnauthorized
	}

	var (
		out []match.Record
		err error
	)
	switch {
	case profileID != uuid.Nil:
		if _, err := u.profileFor(ctx, actor, profileID); err != nil {
			return nil, err
		}
		out, err = u.matches.ListByProfile(ctx, profileID)
	case actor.IsRecruiter():
		out, err = u.matches.ListByRecruiter(ctx, actor.UserID, limit, offset)
	default:
		out, err = u.matches.ListByOwner(ctx, actor.UserID, limit, offset)
	}
	if err != nil {
		u.logger.Error("list matches failed", zap.String("user_id", actor.UserID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

// MatchApplications scores a profile against the active jobs its document was submitted to.
func (u *Matching) MatchApplications(ctx context.Context, profile analysis.Profile) error {
	apps, err := u.applications.ListByDocument(ctx, profile.DocumentID)
	if err != nil {
		return err
	}

	var firstErr error
	for _, a := range apps {
		j, err := u.jobs.GetByID(ctx, a.JobID)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if !j.IsActive {
			continue
		}
		if _, err := u.score(ctx, profile, j); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
