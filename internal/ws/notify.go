package ws

import (
	"context"
	"encoding/json"
	"time"

	"resume-match/internal/domain/document"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DocumentStatusEvent struct {
	Type       string `json:"type"`
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
	Timestamp  string `json:"timestamp"`
}

func encodeStatus(documentID uuid.UUID, status document.Status, reason string) ([]byte, error) {
	return json.Marshal(DocumentStatusEvent{
		Type:       "document_status",
		DocumentID: documentID.String(),
		Status:     string(status),
		Reason:     reason,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// NotifyDocumentStatus broadcasts a status change to every connected client.
func (h *Hub) NotifyDocumentStatus(documentID uuid.UUID, status document.Status, reason string) {
	if h == nil {
		return
	}

	b, err := encodeStatus(documentID, status, reason)
	if err != nil {
		h.logger.Warn("encode ws event", zap.Error(err))
		return
	}

	h.Broadcast(b)
}

type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// RelayNotifier forwards status events over pub/sub for processes without websocket clients.
type RelayNotifier struct {
	pub     Publisher
	channel string
	logger  *zap.Logger
}

func NewRelayNotifier(pub Publisher, channel string, logger *zap.Logger) *RelayNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RelayNotifier{pub: pub, channel: channel, logger: logger}
}

func (r *RelayNotifier) NotifyDocumentStatus(documentID uuid.UUID, status document.Status, reason string) {
	b, err := encodeStatus(documentID, status, reason)
	if err != nil {
		r.logger.Warn("encode ws event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.pub.Publish(ctx, r.channel, b); err != nil {
		r.logger.Debug("relay status event failed",
			zap.String("document_id", documentID.String()),
			zap.Error(err),
		)
	}
}
