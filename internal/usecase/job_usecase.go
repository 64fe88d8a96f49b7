package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"resume-match/internal/domain/job"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateJobParams struct {
	Title           string
	Description     string
	Location        string
	JobType         string
	ExperienceLevel string
	RequiredSkills  []string
	SalaryMin       *float64
	SalaryMax       *float64
}

type JobListParams struct {
	JobType         string
	ExperienceLevel string
	Skill           string
	Query           string
	SalaryMin       *float64
	SalaryMax       *float64
	Limit           int
	Offset          int
}

type JobUsecase interface {
	Create(ctx context.Context, actor Actor, params CreateJobParams) (job.Posting, error)
	List(ctx context.Context, params JobListParams) ([]job.Posting, error)
	Get(ctx context.Context, id uuid.UUID) (job.Posting, error)
	Deactivate(ctx context.Context, actor Actor, id uuid.UUID) error
}

// jobSearchTTL is short because postings change under recruiters' hands.
const jobSearchTTL = time.Minute

type Jobs struct {
	jobs   repository.JobRepository
	cache  SearchCache
	logger *zap.Logger
}

// NewJobUsecase builds the job usecase. cache may be nil.
func NewJobUsecase(jobs repository.JobRepository, cache SearchCache, logger *zap.Logger) *Jobs {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Jobs{jobs: jobs, cache: cache, logger: logger}
}

func (u *Jobs) Create(ctx context.Context, actor Actor, params CreateJobParams) (job.Posting, error) {
	if !actor.valid() {
		return job.Posting{}, ErrUnauthorized
	}
	if !actor.IsRecruiter() {
		return job.Posting{}, ErrForbidden
	}

	title := strings.TrimSpace(params.Title)
	if title == "" {
		return job.Posting{}, ErrInvalidInput
	}
	jt, err := job.ParseType(params.JobType)
	if err != nil {
		return job.Posting{}, ErrInvalidInput
	}
	level, err := job.ParseExperienceLevel(params.ExperienceLevel)
	if err != nil {
		return job.Posting{}, ErrInvalidInput
	}
	if !validSalaryRange(params.SalaryMin, params.SalaryMax) {
		return job.Posting{}, ErrInvalidInput
	}

	p, err := u.jobs.Create(ctx, job.Posting{
		RecruiterID:     actor.UserID,
		Title:           title,
		Description:     strings.TrimSpace(params.Description),
		Location:        strings.TrimSpace(params.Location),
		Type:            jt,
		ExperienceLevel: level,
		RequiredSkills:  normalizeSkills(params.RequiredSkills),
		SalaryMin:       params.SalaryMin,
		SalaryMax:       params.SalaryMax,
	})
	if err != nil {
		u.logger.Error("create job failed", zap.Error(err))
		return job.Posting{}, ErrInternal
	}
	u.invalidateSearches(ctx)
	return p, nil
}

func (u *Jobs) List(ctx context.Context, params JobListParams) ([]job.Posting, error) {
	if params.Limit < 0 || params.Offset < 0 || !validSalaryRange(params.SalaryMin, params.SalaryMax) {
		return nil, ErrInvalidInput
	}

	f := repository.JobFilter{
		Skill:     strings.TrimSpace(params.Skill),
		Query:     strings.TrimSpace(params.Query),
		SalaryMin: params.SalaryMin,
		SalaryMax: params.SalaryMax,
		Limit:     params.Limit,
		Offset:    params.Offset,
	}
	if s := strings.TrimSpace(params.JobType); s != "" {
		jt, err := job.ParseType(s)
		if err != nil {
			return nil, ErrInvalidInput
		}
		f.JobType = jt
	}
	if s := strings.TrimSpace(params.ExperienceLevel); s != "" {
		level, err := job.ParseExperienceLevel(s)
		if err != nil {
			return nil, ErrInvalidInput
		}
		f.ExperienceLevel = level
	}

	key := JobsSearchCacheKey(params)
	if u.cache != nil {
		var cached []job.Posting
		if found, err := u.cache.GetJSON(ctx, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	out, err := u.jobs.ListJobs(ctx, f)
	if err != nil {
		u.logger.Error("list jobs failed", zap.Error(err))
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, jobSearchTTL); err != nil {
			u.logger.Debug("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}

func validSalaryRange(lo, hi *float64) bool {
	if lo != nil && *lo < 0 || hi != nil && *hi < 0 {
		return false
	}
	return lo == nil || hi == nil || *lo <= *hi
}

func (u *Jobs) invalidateSearches(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, jobSearchKeyPrefix+"*"); err != nil {
		u.logger.Debug("invalidate job searches failed", zap.Error(err))
	}
}

func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	p, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Posting{}, ErrNotFound
		}
		return job.Posting{}, ErrInternal
	}
	return p, nil
}

// Deactivate soft-deletes a posting; only its recruiter may do so.
func (u *Jobs) Deactivate(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.valid() {
		return ErrUnauthorized
	}
	p, err := u.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsRecruiter() || p.RecruiterID != actor.UserID {
		return ErrForbidden
	}
	if err := u.jobs.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	u.invalidateSearches(ctx)
	return nil
}

// normalizeSkills trims, drops blanks and removes case-insensitive repeats, keeping the first spelling.
func normalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
