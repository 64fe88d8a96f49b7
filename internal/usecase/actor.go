package usecase

import (
	"resume-match/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Actor is the authenticated caller as seen by the usecases.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Actor) IsRecruiter() bool {
	return a.Role == jwt.RoleRecruiter
}

func (a Actor) valid() bool {
	return a.UserID != uuid.Nil
}
