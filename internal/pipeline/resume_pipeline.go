package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-match/internal/domain/analysis"
	"resume-match/internal/domain/document"
	"resume-match/internal/logger"
	"resume-match/internal/repository"
	"resume-match/internal/tagger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrRunInFlight = errors.New("document is not pending")
	ErrRunFailed   = errors.New("pipeline run failed")
	ErrRunTimeout  = errors.New("pipeline run timed out")
	// ErrRunAbandoned is the failure reason of a document whose run stopped without an outcome,
	// typically because the worker process died.
	ErrRunAbandoned = errors.New("pipeline run abandoned")
)

const (
	DefaultRunTimeout = 2 * time.Minute
	maxReasonLen      = 500
	afterCommitBudget = 30 * time.Second
)

type TextExtractor interface {
	Extract(ctx context.Context, path string, format document.Format) (string, error)
}

type EntityTagger interface {
	Tag(ctx context.Context, text string) (tagger.Tags, error)
}

type CacheInvalidator interface {
	InvalidateDocument(ctx context.Context, documentID uuid.UUID) error
}

type StatusNotifier interface {
	NotifyDocumentStatus(documentID uuid.UUID, status document.Status, reason string)
}

// ApplicationMatcher scores a freshly committed profile against the jobs its document was
// submitted to.
type ApplicationMatcher interface {
	MatchApplications(ctx context.Context, profile analysis.Profile) error
}

type Runner interface {
	Run(ctx context.Context, documentID uuid.UUID) (RunResult, error)
}

type RunResult struct {
	DocumentID uuid.UUID
	Status     document.Status
	Profile    analysis.Profile
	Advisories []analysis.Advisory
	Duration   time.Duration
}

// ResumePipelineDeps wires a ResumePipeline. Cache, Notifier and Matcher are optional.
type ResumePipelineDeps struct {
	Documents repository.DocumentRepository
	Analyses  repository.AnalysisRepository
	Extractor TextExtractor
	Tagger    EntityTagger

	Cache    CacheInvalidator
	Notifier StatusNotifier
	Matcher  ApplicationMatcher
}

type ResumePipeline struct {
	deps    ResumePipelineDeps
	timeout time.Duration
	log     *zap.Logger
}

func NewResumePipeline(deps ResumePipelineDeps, timeout time.Duration, log *zap.Logger) *ResumePipeline {
	if timeout <= 0 {
		timeout = DefaultRunTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ResumePipeline{deps: deps, timeout: timeout, log: log}
}

// Run processes one pending document end to end. Only one run per document can pass the
// status gate; the others get ErrRunInFlight. A failing run leaves the document failed with
// nothing else written and returns ErrRunFailed.
func (p *ResumePipeline) Run(ctx context.Context, documentID uuid.UUID) (RunResult, error) {
	start := time.Now()
	log := p.log.With(zap.String("document_id", documentID.String()))

	started, err := p.deps.Documents.TryStartProcessing(ctx, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return RunResult{}, ErrNotFound
		}
		return RunResult{}, fmt.Errorf("start run: %w", err)
	}
	if !started {
		return RunResult{}, ErrRunInFlight
	}
	log.Info("pipeline run started")

	doc, err := p.deps.Documents.GetByID(ctx, documentID)
	if err != nil {
		return p.fail(ctx, log, documentID, start, fmt.Errorf("load document: %w", err))
	}

	runCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type outcome struct {
		profile    analysis.Profile
		advisories []analysis.Advisory
		err        error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		profile, advisories, err := p.analyze(runCtx, doc)
		done <- outcome{profile: profile, advisories: advisories, err: err}
	}()

	var out outcome
	select {
	case out = <-done:
	case <-runCtx.Done():
		out.err = runCtx.Err()
	}
	if out.err != nil {
		return p.fail(ctx, log, documentID, start, p.timedOut(runCtx, out.err))
	}

	profile, err := p.deps.Analyses.CompleteRun(runCtx, out.profile, out.advisories)
	if err != nil {
		return p.fail(ctx, log, documentID, start, p.timedOut(runCtx, fmt.Errorf("commit: %w", err)))
	}

	res := RunResult{
		DocumentID: documentID,
		Status:     document.StatusCompleted,
		Profile:    profile,
		Advisories: out.advisories,
		Duration:   time.Since(start),
	}
	log.Info("pipeline run completed",
		zap.Float64("score", profile.Score),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("advisories", len(out.advisories)),
		zap.Duration("duration", res.Duration),
	)

	p.afterCommit(ctx, log, profile)
	return res, nil
}

// StaleAfter is how long a document may stay processing before FailStaleRuns gives up on it.
func (p *ResumePipeline) StaleAfter() time.Duration {
	return p.timeout + afterCommitBudget
}

// FailStaleRuns fails every document stuck in processing for longer than StaleAfter.
func (p *ResumePipeline) FailStaleRuns(ctx context.Context) ([]uuid.UUID, error) {
	after := p.StaleAfter()
	reason := fmt.Sprintf("%s: no outcome after %s", ErrRunAbandoned, after)

	ids, err := p.deps.Documents.FailStaleRuns(ctx, time.Now().Add(-after), reason)
	if err != nil {
		return nil, fmt.Errorf("fail stale runs: %w", err)
	}
	for _, id := range ids {
		p.log.Warn("stale run failed", zap.String("document_id", id.String()), zap.Duration("stale_after", after))
		if p.deps.Cache != nil {
			if err := p.deps.Cache.InvalidateDocument(ctx, id); err != nil {
				p.log.Warn("cache invalidation failed", zap.Error(err))
			}
		}
		if p.deps.Notifier != nil {
			p.deps.Notifier.NotifyDocumentStatus(id, document.StatusFailed, reason)
		}
	}
	return ids, nil
}

// SweepStaleRuns runs FailStaleRuns now and then every interval until ctx is done.
func (p *ResumePipeline) SweepStaleRuns(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = p.StaleAfter() / 2
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		if _, err := p.FailStaleRuns(ctx); err != nil && ctx.Err() == nil {
			p.log.Error("stale run sweep failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (p *ResumePipeline) timedOut(runCtx context.Context, err error) error {
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %w", ErrRunTimeout, p.timeout, err)
	}
	return err
}

func (p *ResumePipeline) analyze(ctx context.Context, doc document.Document) (analysis.Profile, []analysis.Advisory, error) {
	text, err := p.deps.Extractor.Extract(ctx, doc.FilePath, doc.Format)
	if err != nil {
		return analysis.Profile{}, nil, err
	}

	tags, err := p.deps.Tagger.Tag(ctx, text)
	if err != nil {
		return analysis.Profile{}, nil, err
	}

	skills, experience, education := len(tags.Skills), len(tags.Experience), len(tags.Education)
	profile := analysis.Profile{
		DocumentID: doc.ID,
		Skills:     tags.Skills,
		Experience: tags.Experience,
		Education:  tags.Education,
		Keywords:   tags.Keywords,
		Score:      analysis.Score(skills, experience, education),
	}

	advisories := analysis.Feedback(skills, experience, education)
	for i := range advisories {
		advisories[i].DocumentID = doc.ID
	}
	return profile, advisories, nil
}

func (p *ResumePipeline) fail(ctx context.Context, log *zap.Logger, documentID uuid.UUID, start time.Time, cause error) (RunResult, error) {
	reason := logger.TruncateForLog(cause.Error(), maxReasonLen)
	log.Warn("pipeline run failed", zap.Error(cause), zap.Duration("duration", time.Since(start)))

	// The caller's context may be the one that expired.
	markCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), afterCommitBudget)
	defer cancel()

	if err := p.deps.Documents.MarkFailed(markCtx, documentID, reason); err != nil {
		log.Error("mark document failed", zap.Error(err))
		return RunResult{}, fmt.Errorf("%w: %v (mark failed: %v)", ErrRunFailed, cause, err)
	}
	if p.deps.Cache != nil {
		if err := p.deps.Cache.InvalidateDocument(markCtx, documentID); err != nil {
			log.Warn("cache invalidation failed", zap.Error(err))
		}
	}
	if p.deps.Notifier != nil {
		p.deps.Notifier.NotifyDocumentStatus(documentID, document.StatusFailed, reason)
	}

	return RunResult{DocumentID: documentID, Status: document.StatusFailed, Duration: time.Since(start)},
		fmt.Errorf("%w: %w", ErrRunFailed, cause)
}

// afterCommit runs the side effects of a committed run. None of them can undo it, so
// errors are only logged.
func (p *ResumePipeline) afterCommit(ctx context.Context, log *zap.Logger, profile analysis.Profile) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), afterCommitBudget)
	defer cancel()

	if p.deps.Cache != nil {
		if err := p.deps.Cache.InvalidateDocument(ctx, profile.DocumentID); err != nil {
			log.Warn("cache invalidation failed", zap.Error(err))
		}
	}
	if p.deps.Notifier != nil {
		p.deps.Notifier.NotifyDocumentStatus(profile.DocumentID, document.StatusCompleted, "")
	}
	if p.deps.Matcher != nil {
		if err := p.deps.Matcher.MatchApplications(ctx, profile); err != nil {
			log.Warn("application matching failed", zap.Error(err))
		}
	}
}
