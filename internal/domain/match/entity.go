package match

import (
	"time"

	"github.com/google/uuid"
)

// Record is the stored compatibility between one profile and one job posting. A nil
// MatchScore means the pair has not been scored yet; it is never reported as zero.
type Record struct {
	ID            uuid.UUID
	ProfileID     uuid.UUID
	JobID         uuid.UUID
	MatchScore    *float64
	MatchedSkills []string
	MissingSkills []string
	MatchedAt     *time.Time
}

func (r Record) Scored() bool {
	return r.MatchScore != nil
}
