package dto

import (
	"resume-match/internal/domain/match"

	"github.com/google/uuid"
)

// MatchResponse reports a null match_score for a pair that has never been scored.
type MatchResponse struct {
	ProfileID     uuid.UUID `json:"profile_id"`
	JobID         uuid.UUID `json:"job_id"`
	MatchScore    *float64  `json:"match_score"`
	MatchedSkills []string  `json:"matched_skills"`
	MissingSkills []string  `json:"missing_skills"`
	MatchedAt     string    `json:"matched_at,omitempty"`
}

func NewMatchResponse(r match.Record) MatchResponse {
	out := MatchResponse{
		ProfileID:     r.ProfileID,
		JobID:         r.JobID,
		MatchScore:    r.MatchScore,
		MatchedSkills: nonNil(r.MatchedSkills),
		MissingSkills: nonNil(r.MissingSkills),
	}
	if r.MatchedAt != nil {
		out.MatchedAt = formatTime(*r.MatchedAt)
	}
	return out
}

func UnscoredMatchResponse(profileID, jobID uuid.UUID) MatchResponse {
	return MatchResponse{
		ProfileID:     profileID,
		JobID:         jobID,
		MatchedSkills: []string{},
		MissingSkills: []string{},
	}
}
