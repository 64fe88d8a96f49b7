package skill

import (
	"time"

	"github.com/google/uuid"
)

// Skill is one vocabulary entry the tagger recognises in resume text.
type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  string
	CreatedAt time.Time
}
