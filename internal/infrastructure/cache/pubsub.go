package cache

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// StatusChannel carries document status events from workers to the process holding the
// websocket clients.
const StatusChannel = "documents:status"

var ErrPubSubUnavailable = errors.New("redis pub/sub unavailable")

func (r *Redis) Publish(ctx context.Context, channel string, payload []byte) error {
	if r.isUnavailable() {
		return ErrPubSubUnavailable
	}
	return r.client.Publish(ctx, channel, payload).Err()
}

// Subscribe delivers every message on channel to fn until ctx is done. It returns
// ErrPubSubUnavailable at once when running without Redis.
func (r *Redis) Subscribe(ctx context.Context, channel string, fn func([]byte)) error {
	if r.isUnavailable() {
		return ErrPubSubUnavailable
	}

	sub := r.client.Subscribe(ctx, channel)
	defer func() {
		_ = sub.Close()
	}()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	r.logger.Info("subscribed", zap.String("channel", channel))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			fn([]byte(msg.Payload))
		}
	}
}
