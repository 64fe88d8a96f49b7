package dto

import (
	"resume-match/internal/domain/analysis"

	"github.com/google/uuid"
)

type AnalysisResponse struct {
	ProfileID  uuid.UUID `json:"profile_id"`
	DocumentID uuid.UUID `json:"document_id"`
	Skills     []string  `json:"skills"`
	Experience []string  `json:"experience"`
	Education  []string  `json:"education"`
	Keywords   []string  `json:"keywords"`
	Score      float64   `json:"score"`
	CreatedAt  string    `json:"created_at"`
}

func NewAnalysisResponse(p analysis.Profile) AnalysisResponse {
	return AnalysisResponse{
		ProfileID:  p.ID,
		DocumentID: p.DocumentID,
		Skills:     nonNil(p.Skills),
		Experience: nonNil(p.Experience),
		Education:  nonNil(p.Education),
		Keywords:   nonNil(p.Keywords),
		Score:      p.Score,
		CreatedAt:  formatTime(p.CreatedAt),
	}
}

type AdvisoryResponse struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func NewFeedbackResponse(in []analysis.Advisory) []AdvisoryResponse {
	out := make([]AdvisoryResponse, 0, len(in))
	for _, a := range in {
		out = append(out, AdvisoryResponse{
			Category: string(a.Category),
			Message:  a.Message,
			Severity: string(a.Severity),
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
