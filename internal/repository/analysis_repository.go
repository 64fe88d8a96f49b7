package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/analysis"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	// ErrDocumentNotProcessing means the document left the processing state before the run
	// could commit, e.g. it was already failed by a timeout.
	ErrDocumentNotProcessing = errors.New("document is not processing")
)

type AnalysisRepository interface {
	// CompleteRun stores the profile and advisories of one run and marks the document completed,
	// all or nothing. A previous profile for the document keeps its id; its advisories and match
	// records are replaced.
	CompleteRun(ctx context.Context, p analysis.Profile, advisories []analysis.Advisory) (analysis.Profile, error)

	GetProfileByDocument(ctx context.Context, documentID uuid.UUID) (analysis.Profile, error)
	GetProfileByID(ctx context.Context, id uuid.UUID) (analysis.Profile, error)
	ListAdvisories(ctx context.Context, documentID uuid.UUID) ([]analysis.Advisory, error)
}

type PostgresAnalysisRepository struct {
	db database.DB
}

func NewPostgresAnalysisRepository(db database.DB) *PostgresAnalysisRepository {
	return &PostgresAnalysisRepository{db: db}
}

func (r *PostgresAnalysisRepository) CompleteRun(ctx context.Context, p analysis.Profile, advisories []analysis.Advisory) (analysis.Profile, error) {
	if p.DocumentID == uuid.Nil {
		return analysis.Profile{}, ErrDocumentNotFound
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now().UTC()

	skills, err := toJSONB(p.Skills)
	if err != nil {
		return analysis.Profile{}, err
	}
	experience, err := toJSONB(p.Experience)
	if err != nil {
		return analysis.Profile{}, err
	}
	education, err := toJSONB(p.Education)
	if err != nil {
		return analysis.Profile{}, err
	}
	keywords, err := toJSONB(p.Keywords)
	if err != nil {
		return analysis.Profile{}, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return analysis.Profile{}, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO extracted_profiles (id, document_id, skills, experience, education, keywords, score, created_at)
		 VALUES ($1,$2,$3::jsonb,$4::jsonb,$5::jsonb,$6::jsonb,$7,$8)
		 ON CONFLICT (document_id) DO UPDATE SET
			skills = EXCLUDED.skills,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			keywords = EXCLUDED.keywords,
			score = EXCLUDED.score,
			created_at = EXCLUDED.created_at
		 RETURNING id`,
		p.ID,
		p.DocumentID,
		skills,
		experience,
		education,
		keywords,
		p.Score,
		p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return analysis.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM advisory_messages WHERE document_id = $1`, p.DocumentID); err != nil {
		return analysis.Profile{}, fmt.Errorf("clear advisories: %w", err)
	}
	for i, a := range advisories {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO advisory_messages (id, document_id, position, category, message, severity, created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			a.ID,
			p.DocumentID,
			i,
			string(a.Category),
			a.Message,
			string(a.Severity),
			p.CreatedAt,
		)
		if err != nil {
			return analysis.Profile{}, fmt.Errorf("insert advisory %d: %w", i, err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM match_records WHERE profile_id = $1`, p.ID); err != nil {
		return analysis.Profile{}, fmt.Errorf("clear match records: %w", err)
	}

	n, err := tx.Exec(ctx,
		`UPDATE documents SET status = 'completed', failure_reason = '', updated_at = now()
		 WHERE id = $1 AND status = 'processing'`,
		p.DocumentID,
	)
	if err != nil {
		return analysis.Profile{}, fmt.Errorf("complete document: %w", err)
	}
	if n != 1 {
		return analysis.Profile{}, ErrDocumentNotProcessing
	}

	if err := tx.Commit(ctx); err != nil {
		return analysis.Profile{}, err
	}
	return p, nil
}

const profileColumns = `id, document_id, skills, experience, education, keywords, score, created_at`

func scanProfile(row database.Row) (analysis.Profile, error) {
	var (
		p                                      analysis.Profile
		skills, experience, education, keyword []byte
	)
	if err := row.Scan(&p.ID, &p.DocumentID, &skills, &experience, &education, &keyword, &p.Score, &p.CreatedAt); err != nil {
		return analysis.Profile{}, err
	}

	var err error
	if p.Skills, err = fromJSONB(skills); err != nil {
		return analysis.Profile{}, err
	}
	if p.Experience, err = fromJSONB(experience); err != nil {
		return analysis.Profile{}, err
	}
	if p.Education, err = fromJSONB(education); err != nil {
		return analysis.Profile{}, err
	}
	if p.Keywords, err = fromJSONB(keyword); err != nil {
		return analysis.Profile{}, err
	}
	return p, nil
}

func (r *PostgresAnalysisRepository) GetProfileByDocument(ctx context.Context, documentID uuid.UUID) (analysis.Profile, error) {
	return r.getProfile(ctx, `SELECT `+profileColumns+` FROM extracted_profiles WHERE document_id = $1`, documentID)
}

func (r *PostgresAnalysisRepository) GetProfileByID(ctx context.Context, id uuid.UUID) (analysis.Profile, error) {
	return r.getProfile(ctx, `SELECT `+profileColumns+` FROM extracted_profiles WHERE id = $1`, id)
}

func (r *PostgresAnalysisRepository) getProfile(ctx context.Context, query string, arg uuid.UUID) (analysis.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if database.IsNoRows(err) {
			return analysis.Profile{}, ErrProfileNotFound
		}
		return analysis.Profile{}, err
	}
	return p, nil
}

func (r *PostgresAnalysisRepository) ListAdvisories(ctx context.Context, documentID uuid.UUID) ([]analysis.Advisory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, document_id, position, category, message, severity, created_at
		 FROM advisory_messages
		 WHERE document_id = $1
		 ORDER BY position ASC`,
		documentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]analysis.Advisory, 0)
	for rows.Next() {
		var (
			a                  analysis.Advisory
			category, severity string
		)
		if err := rows.Scan(&a.ID, &a.DocumentID, &a.Position, &category, &a.Message, &severity, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Category = analysis.Category(category)
		a.Severity = analysis.Severity(severity)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
