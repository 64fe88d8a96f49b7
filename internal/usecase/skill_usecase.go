package usecase

import (
	"context"
	"strings"

	"resume-match/internal/domain/skill"
	"resume-match/internal/repository"

	"go.uber.org/zap"
)

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	// AddSkill extends the vocabulary. Taggers pick new entries up when their process restarts.
	AddSkill(ctx context.Context, actor Actor, name, category string) (skill.Skill, error)
}

type Skills struct {
	repo   repository.SkillRepository
	logger *zap.Logger
}

func NewSkillUsecase(repo repository.SkillRepository, logger *zap.Logger) *Skills {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Skills{repo: repo, logger: logger}
}

func (u *Skills) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	items, err := u.repo.GetAllSkills(ctx)
	if err != nil {
		u.logger.Error("list skills failed", zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Skills) AddSkill(ctx context.Context, actor Actor, name, category string) (skill.Skill, error) {
	if !actor.valid() {
		return skill.Skill{}, ErrUnauthorized
	}
	if !actor.IsRecruiter() {
		return skill.Skill{}, ErrForbidden
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return skill.Skill{}, ErrInvalidInput
	}

	created, err := u.repo.CreateSkill(ctx, name, category)
	if err != nil {
		u.logger.Error("create skill failed", zap.String("name", name), zap.Error(err))
		return skill.Skill{}, ErrInternal
	}
	return created, nil
}
