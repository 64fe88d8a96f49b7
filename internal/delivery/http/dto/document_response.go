package dto

import (
	"time"

	"resume-match/internal/domain/document"

	"github.com/google/uuid"
)

type DocumentResponse struct {
	ID               uuid.UUID `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	Format           string    `json:"format"`
	Status           string    `json:"status"`
	FailureReason    string    `json:"failure_reason,omitempty"`
	CreatedAt        string    `json:"created_at"`
	UpdatedAt        string    `json:"updated_at"`
}

func NewDocumentResponse(d document.Document) DocumentResponse {
	return DocumentResponse{
		ID:               d.ID,
		OriginalFilename: d.OriginalFilename,
		Format:           string(d.Format),
		Status:           string(d.Status),
		FailureReason:    d.FailureReason,
		CreatedAt:        formatTime(d.CreatedAt),
		UpdatedAt:        formatTime(d.UpdatedAt),
	}
}

// DocumentAcceptedResponse is returned for an upload or reprocess; the run happens afterwards.
type DocumentAcceptedResponse struct {
	DocumentID uuid.UUID `json:"document_id"`
	Status     string    `json:"status"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
