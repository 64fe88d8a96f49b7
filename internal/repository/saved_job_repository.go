package repository

import (
	"context"
	"errors"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/job"

	"github.com/google/uuid"
)

var ErrSavedJobNotFound = errors.New("saved job not found")

type SavedJobRepository interface {
	// Save bookmarks the posting once per user; saving again returns the existing row.
	Save(ctx context.Context, s job.SavedJob) (job.SavedJob, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]job.SavedJob, error)
	// Delete removes the user's bookmark; another user's id reports ErrSavedJobNotFound.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type PostgresSavedJobRepository struct {
	db database.DB
}

func NewPostgresSavedJobRepository(db database.DB) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

func (r *PostgresSavedJobRepository) Save(ctx context.Context, s job.SavedJob) (job.SavedJob, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now().UTC()

	err := r.db.QueryRow(ctx,
		`INSERT INTO saved_jobs (id, user_id, job_id, created_at)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (user_id, job_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING id, created_at`,
		s.ID,
		s.UserID,
		s.JobID,
		s.CreatedAt,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return job.SavedJob{}, err
	}
	return s, nil
}

// leadingRow scans the head columns itself and hands the rest of the row to dest.
type leadingRow struct {
	row  database.Row
	head []any
}

func (r leadingRow) Scan(dest ...any) error {
	return r.row.Scan(append(r.head, dest...)...)
}

func (r *PostgresSavedJobRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]job.SavedJob, error) {
	limit, offset = clampPage(limit, offset)

	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.user_id, s.created_at,
			j.id, j.recruiter_id, j.title, j.description, j.location, j.job_type, j.experience_level,
			j.required_skills, j.salary_min::float8, j.salary_max::float8, j.is_active, j.created_at, j.updated_at
		 FROM saved_jobs s
		 JOIN job_postings j ON j.id = s.job_id
		 WHERE s.user_id = $1
		 ORDER BY s.created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.SavedJob, 0)
	for rows.Next() {
		var s job.SavedJob
		p, err := scanJob(leadingRow{row: rows, head: []any{&s.ID, &s.UserID, &s.CreatedAt}})
		if err != nil {
			return nil, err
		}
		s.JobID = p.ID
		s.Job = p
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSavedJobRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSavedJobNotFound
	}
	return nil
}
