package repository

import (
	"context"
	"errors"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/match"

	"github.com/google/uuid"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Upsert(ctx context.Context, m match.Record) (match.Record, error)
	Get(ctx context.Context, profileID, jobID uuid.UUID) (match.Record, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]match.Record, error)
	// ListByOwner returns records for profiles extracted from the owner's documents.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]match.Record, error)
	// ListByRecruiter returns records scored against postings the recruiter owns.
	ListByRecruiter(ctx context.Context, recruiterID uuid.UUID, limit, offset int) ([]match.Record, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

func (r *PostgresMatchRepository) Upsert(ctx context.Context, m match.Record) (match.Record, error) {
	if m.ProfileID == uuid.Nil || m.JobID == uuid.Nil {
		return match.Record{}, ErrMatchNotFound
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.MatchScore != nil && m.MatchedAt == nil {
		now := time.Now().UTC()
		m.MatchedAt = &now
	}

	matched, err := toJSONB(m.MatchedSkills)
	if err != nil {
		return match.Record{}, err
	}
	missing, err := toJSONB(m.MissingSkills)
	if err != nil {
		return match.Record{}, err
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO match_records (id, profile_id, job_id, match_score, matched_skills, missing_skills, matched_at)
		 VALUES ($1,$2,$3,$4,$5::jsonb,$6::jsonb,$7)
		 ON CONFLICT (profile_id, job_id) DO UPDATE SET
			match_score = EXCLUDED.match_score,
			matched_skills = EXCLUDED.matched_skills,
			missing_skills = EXCLUDED.missing_skills,
			matched_at = EXCLUDED.matched_at
		 RETURNING id`,
		m.ID,
		m.ProfileID,
		m.JobID,
		m.MatchScore,
		matched,
		missing,
		m.MatchedAt,
	).Scan(&m.ID)
	if err != nil {
		return match.Record{}, err
	}
	return m, nil
}

const matchColumns = `id, profile_id, job_id, match_score, matched_skills, missing_skills, matched_at`

func scanMatch(row database.Row) (match.Record, error) {
	var (
		m                match.Record
		matched, missing []byte
	)
	if err := row.Scan(&m.ID, &m.ProfileID, &m.JobID, &m.MatchScore, &matched, &missing, &m.MatchedAt); err != nil {
		return match.Record{}, err
	}
	var err error
	if m.MatchedSkills, err = fromJSONB(matched); err != nil {
		return match.Record{}, err
	}
	if m.MissingSkills, err = fromJSONB(missing); err != nil {
		return match.Record{}, err
	}
	return m, nil
}

func (r *PostgresMatchRepository) Get(ctx context.Context, profileID, jobID uuid.UUID) (match.Record, error) {
	m, err := scanMatch(r.db.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM match_records WHERE profile_id = $1 AND job_id = $2`,
		profileID, jobID,
	))
	if err != nil {
		if database.IsNoRows(err) {
			return match.Record{}, ErrMatchNotFound
		}
		return match.Record{}, err
	}
	return m, nil
}

func (r *PostgresMatchRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]match.Record, error) {
	return r.list(ctx,
		`SELECT `+matchColumns+`
		 FROM match_records
		 WHERE profile_id = $1
		 ORDER BY match_score DESC NULLS LAST, matched_at DESC`,
		profileID,
	)
}

const joinedMatchColumns = `m.id, m.profile_id, m.job_id, m.match_score, m.matched_skills, m.missing_skills, m.matched_at`

func (r *PostgresMatchRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]match.Record, error) {
	limit, offset = clampPage(limit, offset)
	return r.list(ctx,
		`SELECT `+joinedMatchColumns+`
		 FROM match_records m
		 JOIN extracted_profiles p ON p.id = m.profile_id
		 JOIN documents d ON d.id = p.document_id
		 WHERE d.owner_id = $1
		 ORDER BY m.match_score DESC NULLS LAST, m.matched_at DESC
		 LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
}

func (r *PostgresMatchRepository) ListByRecruiter(ctx context.Context, recruiterID uuid.UUID, limit, offset int) ([]match.Record, error) {
	limit, offset = clampPage(limit, offset)
	return r.list(ctx,
		`SELECT `+joinedMatchColumns+`
		 FROM match_records m
		 JOIN job_postings j ON j.id = m.job_id
		 WHERE j.recruiter_id = $1
		 ORDER BY m.match_score DESC NULLS LAST, m.matched_at DESC
		 LIMIT $2 OFFSET $3`,
		recruiterID, limit, offset,
	)
}

func (r *PostgresMatchRepository) list(ctx context.Context, query string, args ...any) ([]match.Record, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Record, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
