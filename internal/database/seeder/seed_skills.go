package seeder

import (
	"context"
	"fmt"

	"resume-match/internal/database"
)

// DefaultSkills is the vocabulary a fresh install tags resumes against.
var DefaultSkills = []struct {
	Name     string
	Category string
}{
	{Name: "Go", Category: "Programming Language"},
	{Name: "Python", Category: "Programming Language"},
	{Name: "Java", Category: "Programming Language"},
	{Name: "JavaScript", Category: "Programming Language"},
	{Name: "TypeScript", Category: "Programming Language"},
	{Name: "C++", Category: "Programming Language"},
	{Name: "C#", Category: "Programming Language"},
	{Name: "Rust", Category: "Programming Language"},
	{Name: "SQL", Category: "Database"},
	{Name: "PostgreSQL", Category: "Database"},
	{Name: "MySQL", Category: "Database"},
	{Name: "MongoDB", Category: "Database"},
	{Name: "Redis", Category: "Database"},
	{Name: "RabbitMQ", Category: "Messaging"},
	{Name: "Kafka", Category: "Messaging"},
	{Name: "Docker", Category: "DevOps"},
	{Name: "Kubernetes", Category: "DevOps"},
	{Name: "Terraform", Category: "DevOps"},
	{Name: "AWS", Category: "Cloud"},
	{Name: "GCP", Category: "Cloud"},
	{Name: "Azure", Category: "Cloud"},
	{Name: "React", Category: "Frontend"},
	{Name: "Node.js", Category: "Backend"},
	{Name: "Django", Category: "Backend"},
	{Name: "Machine Learning", Category: "Data"},
	{Name: "Git", Category: "Tooling"},
}

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range DefaultSkills {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
			it.Name,
			it.Category,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
