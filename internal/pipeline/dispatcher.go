package pipeline

import (
	"context"
	"errors"

	"resume-match/internal/infrastructure/queue"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher schedules a pipeline run without waiting for it.
type Dispatcher interface {
	Dispatch(ctx context.Context, documentID uuid.UUID) error
}

// InProcessDispatcher runs pipelines on a local WorkerPool. Start must be called once before
// tasks are processed.
type InProcessDispatcher struct {
	pool   *WorkerPool
	runner Runner
	log    *zap.Logger
}

func NewInProcessDispatcher(pool *WorkerPool, runner Runner, log *zap.Logger) *InProcessDispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &InProcessDispatcher{pool: pool, runner: runner, log: log}
}

// Start launches the workers and drains their results until ctx is done or the pool closes.
func (d *InProcessDispatcher) Start(ctx context.Context) {
	results := d.pool.Run(ctx)
	go func() {
		for r := range results {
			logRunError(d.log, r.Err)
		}
	}()
}

// Dispatch never blocks; a full pool returns ErrQueueFull and the document stays pending.
func (d *InProcessDispatcher) Dispatch(ctx context.Context, documentID uuid.UUID) error {
	return d.pool.TrySubmit(func(ctx context.Context) error {
		_, err := d.runner.Run(ctx, documentID)
		return err
	})
}

func (d *InProcessDispatcher) Close() {
	d.pool.Close()
}

type Publisher interface {
	Publish(ctx context.Context, msg queue.ProcessMessage) error
}

// AMQPDispatcher hands runs to cmd/worker through the processing queue.
type AMQPDispatcher struct {
	publisher Publisher
}

func NewAMQPDispatcher(publisher Publisher) *AMQPDispatcher {
	return &AMQPDispatcher{publisher: publisher}
}

func (d *AMQPDispatcher) Dispatch(ctx context.Context, documentID uuid.UUID) error {
	return d.publisher.Publish(ctx, queue.ProcessMessage{DocumentID: documentID})
}

// QueueHandler adapts a Runner to queue deliveries. Outcomes that a redelivery cannot change
// are acknowledged; anything else is handed back for a retry.
func QueueHandler(runner Runner, log *zap.Logger) queue.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(ctx context.Context, msg queue.ProcessMessage) error {
		_, err := runner.Run(ctx, msg.DocumentID)
		if err == nil || isTerminal(err) {
			logRunError(log, err)
			return nil
		}
		return err
	}
}

func isTerminal(err error) bool {
	return errors.Is(err, ErrRunFailed) || errors.Is(err, ErrRunInFlight) || errors.Is(err, ErrNotFound)
}

func logRunError(log *zap.Logger, err error) {
	switch {
	case err == nil:
	case errors.Is(err, ErrRunInFlight):
		log.Debug("pipeline run skipped", zap.Error(err))
	case errors.Is(err, ErrRunFailed):
		// already logged by the pipeline with the document id
	default:
		log.Error("pipeline run error", zap.Error(err))
	}
}
