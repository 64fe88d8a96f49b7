package usecase

import (
	"context"
	"errors"
	"io"
	"strings"

	"resume-match/internal/domain/document"
	"resume-match/internal/pipeline"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FileStore interface {
	Save(ctx context.Context, ownerID, documentID uuid.UUID, filename string, r io.Reader) (string, error)
	Remove(path string) error
}

type SubmitParams struct {
	Filename string
	Content  io.Reader
}

type DocumentUsecase interface {
	Submit(ctx context.Context, actor Actor, params SubmitParams) (document.Document, error)
	List(ctx context.Context, actor Actor, limit, offset int) ([]document.Document, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (document.Document, error)
	Reprocess(ctx context.Context, actor Actor, id uuid.UUID) (document.Document, error)
}

type Documents struct {
	docs       repository.DocumentRepository
	files      FileStore
	dispatcher pipeline.Dispatcher
	logger     *zap.Logger
}

func NewDocumentUsecase(docs repository.DocumentRepository, files FileStore, dispatcher pipeline.Dispatcher, logger *zap.Logger) *Documents {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Documents{docs: docs, files: files, dispatcher: dispatcher, logger: logger}
}

// Submit stores the upload, records a pending document and schedules its run. The run is not
// awaited; a dispatch failure leaves the document pending for a later reprocess.
func (u *Documents) Submit(ctx context.Context, actor Actor, params SubmitParams) (document.Document, error) {
	if !actor.valid() {
		return document.Document{}, ErrUnauthorized
	}
	filename := strings.TrimSpace(params.Filename)
	if filename == "" || params.Content == nil {
		return document.Document{}, ErrInvalidInput
	}
	format, err := document.ParseFormat(filename)
	if err != nil {
		return document.Document{}, ErrUnsupportedFormat
	}

	id := uuid.New()
	path, err := u.files.Save(ctx, actor.UserID, id, filename, params.Content)
	if err != nil {
		if errors.Is(err, document.ErrEmptyFile) {
			return document.Document{}, ErrInvalidInput
		}
		u.logger.Error("store upload failed", zap.String("document_id", id.String()), zap.Error(err))
		return document.Document{}, ErrInternal
	}

	doc, err := u.docs.Create(ctx, document.Document{
		ID:               id,
		OwnerID:          actor.UserID,
		FilePath:         path,
		OriginalFilename: filename,
		Format:           format,
	})
	if err != nil {
		_ = u.files.Remove(path)
		u.logger.Error("create document failed", zap.Error(err))
		return document.Document{}, ErrInternal
	}

	u.dispatch(ctx, doc.ID)
	return doc, nil
}

func (u *Documents) dispatch(ctx context.Context, id uuid.UUID) {
	if err := u.dispatcher.Dispatch(ctx, id); err != nil {
		u.logger.Warn("dispatch failed, document stays pending",
			zap.String("document_id", id.String()),
			zap.Error(err),
		)
	}
}

func (u *Documents) List(ctx context.Context, actor Actor, limit, offset int) ([]document.Document, error) {
	if !actor.valid() {
		return nil, ErrUnauthorized
	}
	if limit < 0 || offset < 0 {
		return nil, ErrInvalidInput
	}
	out, err := u.docs.ListByOwner(ctx, actor.UserID, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Documents) Get(ctx context.Context, actor Actor, id uuid.UUID) (document.Document, error) {
	if !actor.valid() {
		return document.Document{}, ErrUnauthorized
	}
	doc, err := u.docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return document.Document{}, ErrNotFound
		}
		return document.Document{}, ErrInternal
	}
	if doc.OwnerID != actor.UserID && !actor.IsRecruiter() {
		return document.Document{}, ErrForbidden
	}
	return doc, nil
}

// Reprocess re-runs a completed or failed document. The new run replaces the stored profile.
func (u *Documents) Reprocess(ctx context.Context, actor Actor, id uuid.UUID) (document.Document, error) {
	doc, err := u.Get(ctx, actor, id)
	if err != nil {
		return document.Document{}, err
	}
	if doc.OwnerID != actor.UserID {
		return document.Document{}, ErrForbidden
	}

	reset, err := u.docs.ResetForReprocess(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return document.Document{}, ErrNotFound
		}
		return document.Document{}, ErrInternal
	}
	if !reset {
		if doc.Status != document.StatusPending {
			return document.Document{}, ErrRunInFlight
		}
		// never picked up; the run gate dedupes a second dispatch
	}

	if err := u.dispatcher.Dispatch(ctx, id); err != nil {
		u.logger.Warn("reprocess dispatch failed", zap.String("document_id", id.String()), zap.Error(err))
		if errors.Is(err, ErrQueueFull) {
			return document.Document{}, ErrQueueFull
		}
		return document.Document{}, ErrInternal
	}

	doc.Status = document.StatusPending
	doc.FailureReason = ""
	return doc, nil
}
