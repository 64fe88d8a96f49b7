package repository

import (
	"context"
	"errors"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/job"

	"github.com/google/uuid"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	// Create records the application once per (job, document); repeating it returns the existing row.
	Create(ctx context.Context, a job.Application) (job.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Application, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]job.Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID, limit, offset int) ([]job.Application, error)
	// ListByRecruiter returns applications to postings the recruiter owns.
	ListByRecruiter(ctx context.Context, recruiterID uuid.UUID, limit, offset int) ([]job.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status job.ApplicationStatus) (job.Application, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, applicant_id, document_id, status, created_at`

func scanApplication(row database.Row) (job.Application, error) {
	var (
		a      job.Application
		status string
	)
	if err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.DocumentID, &status, &a.CreatedAt); err != nil {
		return job.Application{}, err
	}
	a.Status = job.ApplicationStatus(status)
	return a, nil
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a job.Application) (job.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = job.ApplicationPending
	}
	a.CreatedAt = time.Now().UTC()

	return scanApplication(r.db.QueryRow(ctx,
		`INSERT INTO job_applications (id, job_id, applicant_id, document_id, status, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (job_id, document_id) DO UPDATE SET job_id = EXCLUDED.job_id
		 RETURNING `+applicationColumns,
		a.ID,
		a.JobID,
		a.ApplicantID,
		a.DocumentID,
		string(a.Status),
		a.CreatedAt,
	))
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE id = $1`, id))
	if err != nil {
		if database.IsNoRows(err) {
			return job.Application{}, ErrApplicationNotFound
		}
		return job.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]job.Application, error) {
	return r.list(ctx,
		`SELECT `+applicationColumns+`
		 FROM job_applications
		 WHERE document_id = $1
		 ORDER BY created_at ASC`,
		documentID,
	)
}

func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID, limit, offset int) ([]job.Application, error) {
	limit, offset = clampPage(limit, offset)
	return r.list(ctx,
		`SELECT `+applicationColumns+`
		 FROM job_applications
		 WHERE applicant_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		applicantID, limit, offset,
	)
}

func (r *PostgresApplicationRepository) ListByRecruiter(ctx context.Context, recruiterID uuid.UUID, limit, offset int) ([]job.Application, error) {
	limit, offset = clampPage(limit, offset)
	return r.list(ctx,
		`SELECT a.id, a.job_id, a.applicant_id, a.document_id, a.status, a.created_at
		 FROM job_applications a
		 JOIN job_postings j ON j.id = a.job_id
		 WHERE j.recruiter_id = $1
		 ORDER BY a.created_at DESC
		 LIMIT $2 OFFSET $3`,
		recruiterID, limit, offset,
	)
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status job.ApplicationStatus) (job.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx,
		`UPDATE job_applications SET status = $2 WHERE id = $1 RETURNING `+applicationColumns,
		id, string(status),
	))
	if err != nil {
		if database.IsNoRows(err) {
			return job.Application{}, ErrApplicationNotFound
		}
		return job.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) list(ctx context.Context, query string, args ...any) ([]job.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
