package analysis

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the result of one successful pipeline run over a document.
type Profile struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	Skills     []string
	Experience []string
	Education  []string
	Keywords   []string
	Score      float64
	CreatedAt  time.Time
}

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Category string

const (
	CategorySkillGap   Category = "skill_gap"
	CategoryFormatting Category = "formatting"
	CategoryATS        Category = "ats"
)

type Advisory struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	Position   int
	Category   Category
	Message    string
	Severity   Severity
	CreatedAt  time.Time
}
