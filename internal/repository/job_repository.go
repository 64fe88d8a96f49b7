package repository

import (
	"context"
	"errors"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/job"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("job not found")

// JobFilter narrows ListJobs. Empty fields match everything. A salary bound excludes
// postings that leave that side of the range unset.
type JobFilter struct {
	JobType         job.Type
	ExperienceLevel job.ExperienceLevel
	Skill           string
	Query           string
	SalaryMin       *float64
	SalaryMax       *float64
	IncludeInactive bool
	Limit           int
	Offset          int
}

type JobRepository interface {
	Create(ctx context.Context, p job.Posting) (job.Posting, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
	ListJobs(ctx context.Context, f JobFilter) ([]job.Posting, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, recruiter_id, title, description, location, job_type, experience_level,
	required_skills, salary_min::float8, salary_max::float8, is_active, created_at, updated_at`

func scanJob(row database.Row) (job.Posting, error) {
	var (
		p              job.Posting
		jobType, level string
		skills         []byte
	)
	err := row.Scan(
		&p.ID,
		&p.RecruiterID,
		&p.Title,
		&p.Description,
		&p.Location,
		&jobType,
		&level,
		&skills,
		&p.SalaryMin,
		&p.SalaryMax,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return job.Posting{}, err
	}
	p.Type = job.Type(jobType)
	p.ExperienceLevel = job.ExperienceLevel(level)
	if p.RequiredSkills, err = fromJSONB(skills); err != nil {
		return job.Posting{}, err
	}
	return p, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, p job.Posting) (job.Posting, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.IsActive = true
	p.CreatedAt = now
	p.UpdatedAt = now

	skills, err := toJSONB(p.RequiredSkills)
	if err != nil {
		return job.Posting{}, err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO job_postings (
			id, recruiter_id, title, description, location, job_type, experience_level,
			required_skills, salary_min, salary_max, is_active, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8::jsonb,$9,$10,$11,$12,$13)`,
		p.ID,
		p.RecruiterID,
		p.Title,
		p.Description,
		p.Location,
		string(p.Type),
		string(p.ExperienceLevel),
		skills,
		p.SalaryMin,
		p.SalaryMax,
		p.IsActive,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return job.Posting{}, err
	}
	return p, nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	p, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE id = $1`, id))
	if err != nil {
		if database.IsNoRows(err) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func (r *PostgresJobRepository) ListJobs(ctx context.Context, f JobFilter) ([]job.Posting, error) {
	limit, offset := clampPage(f.Limit, f.Offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM job_postings
		 WHERE ($1 OR is_active = true)
		   AND ($2 = '' OR job_type = $2)
		   AND ($3 = '' OR experience_level = $3)
		   AND ($4 = '' OR EXISTS (
				SELECT 1 FROM jsonb_array_elements_text(required_skills) s WHERE lower(s) = lower($4)
		   ))
		   AND ($5 = '' OR title ILIKE '%' || $5 || '%' OR location ILIKE '%' || $5 || '%')
		   AND ($6::float8 IS NULL OR salary_min >= $6)
		   AND ($7::float8 IS NULL OR salary_max <= $7)
		 ORDER BY created_at DESC
		 LIMIT $8 OFFSET $9`,
		f.IncludeInactive,
		string(f.JobType),
		string(f.ExperienceLevel),
		f.Skill,
		f.Query,
		f.SalaryMin,
		f.SalaryMax,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `UPDATE job_postings SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}
