package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"resume-match/internal/domain/job"
	"resume-match/internal/pkg/jwt"

	"github.com/google/uuid"
)

func recruiter() Actor { return Actor{UserID: uuid.New(), Role: jwt.RoleRecruiter} }

func TestJobs_Create(t *testing.T) {
	t.Parallel()

	lo, hi := 100.0, 50.0
	tests := []struct {
		name    string
		actor   Actor
		params  CreateJobParams
		wantErr error
	}{
		{name: "anonymous", actor: Actor{}, params: CreateJobParams{Title: "Go dev"}, wantErr: ErrUnauthorized},
		{name: "candidate", actor: candidate(), params: CreateJobParams{Title: "Go dev", JobType: "FT", ExperienceLevel: "SR"}, wantErr: ErrForbidden},
		{name: "blank title", actor: recruiter(), params: CreateJobParams{Title: "  ", JobType: "FT", ExperienceLevel: "SR"}, wantErr: ErrInvalidInput},
		{name: "bad type", actor: recruiter(), params: CreateJobParams{Title: "Go dev", JobType: "XX", ExperienceLevel: "SR"}, wantErr: ErrInvalidInput},
		{name: "bad level", actor: recruiter(), params: CreateJobParams{Title: "Go dev", JobType: "FT", ExperienceLevel: "guru"}, wantErr: ErrInvalidInput},
		{name: "inverted salary", actor: recruiter(), params: CreateJobParams{Title: "Go dev", JobType: "FT", ExperienceLevel: "SR", SalaryMin: &lo, SalaryMax: &hi}, wantErr: ErrInvalidInput},
		{name: "ok", actor: recruiter(), params: CreateJobParams{Title: "Go dev", JobType: "ft", ExperienceLevel: "sr"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newMockJobRepo()
			uc := NewJobUsecase(repo, nil, nil)

			p, err := uc.Create(context.Background(), tt.actor, tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				if len(repo.created) != 0 {
					t.Fatalf("rejected posting must not be stored")
				}
				return
			}
			if p.Type != job.TypeFullTime || p.ExperienceLevel != job.LevelSenior || p.RecruiterID != tt.actor.UserID {
				t.Fatalf("unexpected posting %+v", p)
			}
		})
	}
}

func TestJobs_Create_NormalizesSkills(t *testing.T) {
	t.Parallel()

	repo := newMockJobRepo()
	uc := NewJobUsecase(repo, nil, nil)

	p, err := uc.Create(context.Background(), recruiter(), CreateJobParams{
		Title:           "Backend",
		JobType:         "FT",
		ExperienceLevel: "MD",
		RequiredSkills:  []string{" Go ", "", "go", "PostgreSQL", "Docker", "docker"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := []string{"Go", "PostgreSQL", "Docker"}
	if !reflect.DeepEqual(p.RequiredSkills, want) {
		t.Fatalf("expected %v, got %v", want, p.RequiredSkills)
	}
}

func TestJobs_List_ParsesFilters(t *testing.T) {
	t.Parallel()

	repo := newMockJobRepo()
	uc := NewJobUsecase(repo, nil, nil)

	if _, err := uc.List(context.Background(), JobListParams{JobType: "rm", ExperienceLevel: "jr", Skill: " go ", Limit: 10}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	f := repo.lastFilter
	if f.JobType != job.TypeRemote || f.ExperienceLevel != job.LevelJunior || f.Skill != "go" || f.Limit != 10 {
		t.Fatalf("unexpected filter %+v", f)
	}

	if _, err := uc.List(context.Background(), JobListParams{JobType: "weekly"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.List(context.Background(), JobListParams{Offset: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestJobs_Deactivate(t *testing.T) {
	t.Parallel()

	owner := recruiter()
	posting := job.Posting{ID: uuid.New(), RecruiterID: owner.UserID, IsActive: true}
	repo := newMockJobRepo(posting)
	uc := NewJobUsecase(repo, nil, nil)

	if err := uc.Deactivate(context.Background(), recruiter(), posting.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another recruiter, got %v", err)
	}
	if err := uc.Deactivate(context.Background(), owner, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := uc.Deactivate(context.Background(), owner, posting.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.jobs[posting.ID].IsActive {
		t.Fatalf("expected posting to be inactive")
	}
}

func TestJobs_List_CachedUntilPostingsChange(t *testing.T) {
	t.Parallel()

	owner := recruiter()
	repo := newMockJobRepo(job.Posting{ID: uuid.New(), RecruiterID: owner.UserID, IsActive: true})
	uc := NewJobUsecase(repo, newMapCache(), nil)
	ctx := context.Background()

	first, err := uc.List(ctx, JobListParams{Skill: "Go"})
	if err != nil || len(first) != 1 {
		t.Fatalf("unexpected first page %v (%v)", first, err)
	}

	// a write behind the usecase's back is not seen while cached
	repo.jobs[uuid.New()] = job.Posting{IsActive: true}
	cached, _ := uc.List(ctx, JobListParams{Skill: " go "})
	if len(cached) != 1 {
		t.Fatalf("expected cached result, got %d postings", len(cached))
	}

	if _, err := uc.Create(ctx, owner, CreateJobParams{Title: "New", JobType: "FT", ExperienceLevel: "MD"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	fresh, _ := uc.List(ctx, JobListParams{Skill: "Go"})
	if len(fresh) != 3 {
		t.Fatalf("expected cache to be invalidated by create, got %d postings", len(fresh))
	}
}

func TestJobsSearchCacheKey_Normalizes(t *testing.T) {
	t.Parallel()

	a := JobsSearchCacheKey(JobListParams{JobType: "FT", Query: "Backend  Engineer", Limit: 20})
	b := JobsSearchCacheKey(JobListParams{JobType: " ft ", Query: "backend engineer", Limit: 20})
	c := JobsSearchCacheKey(JobListParams{JobType: "FT", Query: "backend engineer", Limit: 20, Offset: 20})
	if a != b {
		t.Fatalf("expected equal keys for equivalent filters")
	}
	if a == c {
		t.Fatalf("expected distinct keys for different pages")
	}
}

func TestJobs_List_SalaryBounds(t *testing.T) {
	t.Parallel()

	repo := newMockJobRepo()
	uc := NewJobUsecase(repo, nil, nil)
	lo, hi, neg := 40000.0, 80000.0, -1.0

	if _, err := uc.List(context.Background(), JobListParams{SalaryMin: &lo, SalaryMax: &hi}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f := repo.lastFilter; f.SalaryMin == nil || *f.SalaryMin != lo || f.SalaryMax == nil || *f.SalaryMax != hi {
		t.Fatalf("expected salary bounds to reach the filter, got %+v", f)
	}

	for name, p := range map[string]JobListParams{
		"inverted": {SalaryMin: &hi, SalaryMax: &lo},
		"negative": {SalaryMin: &neg},
	} {
		if _, err := uc.List(context.Background(), p); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}

	withSalary := JobsSearchCacheKey(JobListParams{SalaryMin: &lo})
	if withSalary == JobsSearchCacheKey(JobListParams{}) {
		t.Fatalf("salary bounds must be part of the cache key")
	}
}
