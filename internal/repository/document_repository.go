package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/document"

	"github.com/google/uuid"
)

var ErrDocumentNotFound = errors.New("document not found")

type DocumentRepository interface {
	Create(ctx context.Context, d document.Document) (document.Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (document.Document, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]document.Document, error)

	// TryStartProcessing moves a pending document to processing. It reports false when the
	// document exists but is not pending.
	TryStartProcessing(ctx context.Context, id uuid.UUID) (bool, error)
	// MarkFailed fails a document that is not completed. Results left by an earlier run are
	// removed in the same transaction.
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	// FailStaleRuns fails every document still processing since before cutoff and returns
	// their ids.
	FailStaleRuns(ctx context.Context, cutoff time.Time, reason string) ([]uuid.UUID, error)
	// ResetForReprocess moves a completed or failed document back to pending.
	ResetForReprocess(ctx context.Context, id uuid.UUID) (bool, error)
}

type PostgresDocumentRepository struct {
	db database.DB
}

func NewPostgresDocumentRepository(db database.DB) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{db: db}
}

const documentColumns = `id, owner_id, file_path, original_filename, format, status, failure_reason, created_at, updated_at`

func scanDocument(row database.Row) (document.Document, error) {
	var (
		d      document.Document
		format string
		status string
	)
	if err := row.Scan(&d.ID, &d.OwnerID, &d.FilePath, &d.OriginalFilename, &format, &status, &d.FailureReason, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return document.Document{}, err
	}
	d.Format = document.Format(format)
	d.Status = document.Status(status)
	return d, nil
}

func (r *PostgresDocumentRepository) Create(ctx context.Context, d document.Document) (document.Document, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	now := time.Now().UTC()
	d.Status = document.StatusPending
	d.FailureReason = ""
	d.CreatedAt = now
	d.UpdatedAt = now

	_, err := r.db.Exec(ctx,
		`INSERT INTO documents (`+documentColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		d.ID,
		d.OwnerID,
		d.FilePath,
		d.OriginalFilename,
		string(d.Format),
		string(d.Status),
		d.FailureReason,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		return document.Document{}, err
	}
	return d, nil
}

func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (document.Document, error) {
	d, err := scanDocument(r.db.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if err != nil {
		if database.IsNoRows(err) {
			return document.Document{}, ErrDocumentNotFound
		}
		return document.Document{}, err
	}
	return d, nil
}

func (r *PostgresDocumentRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]document.Document, error) {
	limit, offset = clampPage(limit, offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+documentColumns+`
		 FROM documents
		 WHERE owner_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]document.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDocumentRepository) TryStartProcessing(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE documents SET status = 'processing', failure_reason = '', updated_at = now()
		 WHERE id = $1 AND status = 'pending'`,
		id,
	)
	if err != nil {
		return false, err
	}
	if n == 1 {
		return true, nil
	}
	return false, r.ensureExists(ctx, id)
}

func (r *PostgresDocumentRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	n, err := tx.Exec(ctx,
		`UPDATE documents SET status = 'failed', failure_reason = $2, updated_at = now()
		 WHERE id = $1 AND status <> 'completed'`,
		id, reason,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		_ = tx.Rollback(ctx)
		return r.ensureExists(ctx, id)
	}
	if err := clearRunResults(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresDocumentRepository) FailStaleRuns(ctx context.Context, cutoff time.Time, reason string) ([]uuid.UUID, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	rows, err := tx.Query(ctx,
		`UPDATE documents SET status = 'failed', failure_reason = $2, updated_at = now()
		 WHERE status = 'processing' AND updated_at < $1
		 RETURNING id`,
		cutoff, reason,
	)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range ids {
		if err := clearRunResults(ctx, tx, id); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

// clearRunResults deletes the profile of a document together with its advisories and match
// records.
func clearRunResults(ctx context.Context, tx database.Tx, documentID uuid.UUID) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM match_records WHERE profile_id IN (SELECT id FROM extracted_profiles WHERE document_id = $1)`,
		documentID,
	); err != nil {
		return fmt.Errorf("clear match records: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM advisory_messages WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("clear advisories: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM extracted_profiles WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}

func (r *PostgresDocumentRepository) ResetForReprocess(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE documents SET status = 'pending', failure_reason = '', updated_at = now()
		 WHERE id = $1 AND status IN ('completed', 'failed')`,
		id,
	)
	if err != nil {
		return false, err
	}
	if n == 1 {
		return true, nil
	}
	return false, r.ensureExists(ctx, id)
}

func (r *PostgresDocumentRepository) ensureExists(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM documents WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrDocumentNotFound
	}
	return nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
