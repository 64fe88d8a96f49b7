package repository

import (
	"context"
	"strings"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]skill.Skill, error)
	CreateSkill(ctx context.Context, name, category string) (skill.Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, category, created_at FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSkill inserts a vocabulary entry; an existing name is returned unchanged.
func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, name, category string) (skill.Skill, error) {
	s := skill.Skill{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Category:  strings.TrimSpace(category),
		CreatedAt: time.Now().UTC(),
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, category, created_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name, category, created_at`,
		s.ID, s.Name, s.Category, s.CreatedAt,
	).Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt)
	if err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}
