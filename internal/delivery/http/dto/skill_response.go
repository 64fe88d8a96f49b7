package dto

import (
	"resume-match/internal/domain/skill"

	"github.com/google/uuid"
)

type CreateSkillRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type SkillResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	return SkillResponse{ID: s.ID, Name: s.Name, Category: s.Category}
}
