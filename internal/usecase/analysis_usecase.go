package usecase

import (
	"context"
	"errors"
	"fmt"

	"resume-match/internal/domain/analysis"
	"resume-match/internal/domain/document"
	"resume-match/internal/infrastructure/cache"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AnalysisUsecase interface {
	// GetAnalysis returns the stored profile, or ErrNotFound, ErrNotYetProcessed or
	// ErrRunFailed depending on where the document is in its lifecycle.
	GetAnalysis(ctx context.Context, actor Actor, documentID uuid.UUID) (analysis.Profile, error)
	// GetFeedback returns advisories in generation order; empty until the document completes.
	GetFeedback(ctx context.Context, actor Actor, documentID uuid.UUID) ([]analysis.Advisory, error)
}

type Analysis struct {
	documents DocumentUsecase
	analyses  repository.AnalysisRepository
	cache     Cache
	logger    *zap.Logger
}

func NewAnalysisUsecase(documents DocumentUsecase, analyses repository.AnalysisRepository, c Cache, logger *zap.Logger) *Analysis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analysis{documents: documents, analyses: analyses, cache: c, logger: logger}
}

func (u *Analysis) GetAnalysis(ctx context.Context, actor Actor, documentID uuid.UUID) (analysis.Profile, error) {
	doc, err := u.documents.Get(ctx, actor, documentID)
	if err != nil {
		return analysis.Profile{}, err
	}

	switch doc.Status {
	case document.StatusPending, document.StatusProcessing:
		return analysis.Profile{}, ErrNotYetProcessed
	case document.StatusFailed:
		return analysis.Profile{}, fmt.Errorf("%w: %s", ErrRunFailed, doc.FailureReason)
	}

	key := cache.AnalysisKey(documentID)
	var cached analysis.Profile
	if u.cache != nil {
		if found, err := u.cache.GetJSON(ctx, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	p, err := u.analyses.GetProfileByDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			// completed without a profile cannot happen after a committed run
			u.logger.Error("completed document has no profile", zap.String("document_id", documentID.String()))
			return analysis.Profile{}, ErrNotFound
		}
		return analysis.Profile{}, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, p, 0); err != nil {
			u.logger.Debug("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return p, nil
}

func (u *Analysis) GetFeedback(ctx context.Context, actor Actor, documentID uuid.UUID) ([]analysis.Advisory, error) {
	doc, err := u.documents.Get(ctx, actor, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != document.StatusCompleted {
		return []analysis.Advisory{}, nil
	}

	key := cache.FeedbackKey(documentID)
	var cached []analysis.Advisory
	if u.cache != nil {
		if found, err := u.cache.GetJSON(ctx, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	out, err := u.analyses.ListAdvisories(ctx, documentID)
	if err != nil {
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, 0); err != nil {
			u.logger.Debug("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}
