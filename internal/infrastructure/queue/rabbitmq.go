package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-match/internal/config"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var ErrInvalidMessage = errors.New("invalid queue message")

// ProcessMessage asks a worker to run the pipeline for one document.
type ProcessMessage struct {
	DocumentID uuid.UUID `json:"document_id"`
}

type Handler func(ctx context.Context, msg ProcessMessage) error

type RabbitMQ struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	queue    amqp.Queue
	prefetch int
	logger   *zap.Logger
}

// NewRabbitMQ connects and declares the durable processing queue.
func NewRabbitMQ(cfg config.AMQPConfig, logger *zap.Logger) (*RabbitMQ, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", cfg.Queue, err)
	}

	logger.Info("rabbitmq connected", zap.String("queue", q.Name))
	return &RabbitMQ{conn: conn, channel: ch, queue: q, prefetch: cfg.Prefetch, logger: logger}, nil
}

func (r *RabbitMQ) Publish(ctx context.Context, msg ProcessMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	return r.channel.PublishWithContext(
		ctx,
		"",           // exchange
		r.queue.Name, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.DocumentID.String(),
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// Consume blocks, handing each delivery to h, until ctx is done or the channel closes.
// Deliveries are acknowledged manually: malformed bodies are dropped and a failed handler
// gets one redelivery.
func (r *RabbitMQ) Consume(ctx context.Context, h Handler) error {
	if r.prefetch > 0 {
		if err := r.channel.Qos(r.prefetch, 0, false); err != nil {
			return fmt.Errorf("set qos: %w", err)
		}
	}

	msgs, err := r.channel.Consume(
		r.queue.Name,
		"",
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			r.handle(ctx, d, h)
		}
	}
}

func (r *RabbitMQ) handle(ctx context.Context, d amqp.Delivery, h Handler) {
	msg, err := decode(d.Body)
	if err != nil {
		r.logger.Warn("dropping malformed message", zap.Error(err))
		_ = d.Reject(false)
		return
	}

	if err := h(ctx, msg); err != nil {
		requeue := !d.Redelivered
		r.logger.Error("process message failed",
			zap.String("document_id", msg.DocumentID.String()),
			zap.Bool("requeue", requeue),
			zap.Error(err),
		)
		_ = d.Nack(false, requeue)
		return
	}
	_ = d.Ack(false)
}

func decode(body []byte) (ProcessMessage, error) {
	var msg ProcessMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return ProcessMessage{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if msg.DocumentID == uuid.Nil {
		return ProcessMessage{}, fmt.Errorf("%w: missing document_id", ErrInvalidMessage)
	}
	return msg, nil
}

func (r *RabbitMQ) Close() error {
	if r == nil {
		return nil
	}
	var firstErr error
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			firstErr = err
		}
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
