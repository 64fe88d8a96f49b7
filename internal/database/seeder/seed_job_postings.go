package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"resume-match/internal/database"

	"github.com/google/uuid"
)

// DemoRecruiterID owns the seeded postings. Ids derive from it so reseeding is idempotent.
var DemoRecruiterID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("resume-match/demo-recruiter"))

type JobPostingsSeeder struct{}

func (JobPostingsSeeder) Name() string { return "job_postings" }

func (JobPostingsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "job_postings",
		"id",
		"recruiter_id",
		"title",
		"description",
		"location",
		"job_type",
		"experience_level",
		"required_skills",
		"is_active",
	); err != nil {
		return err
	}

	items := []struct {
		Title       string
		Location    string
		JobType     string
		Level       string
		Description string
		Skills      []string
	}{
		{
			Title:       "Backend Engineer (Go)",
			Location:    "Jakarta, ID",
			JobType:     "FT",
			Level:       "MD",
			Description: "Build and maintain Go services, REST APIs, and PostgreSQL-backed systems.",
			Skills:      []string{"Go", "PostgreSQL", "Docker", "Redis"},
		},
		{
			Title:       "Fullstack Engineer (React + Go)",
			Location:    "Bandung, ID",
			JobType:     "FT",
			Level:       "JR",
			Description: "Develop web apps with React/TypeScript and backend services in Go.",
			Skills:      []string{"React", "TypeScript", "Go"},
		},
		{
			Title:       "DevOps Engineer",
			Location:    "Remote",
			JobType:     "RM",
			Level:       "SR",
			Description: "Operate CI/CD, Docker, Kubernetes, and cloud infrastructure for production workloads.",
			Skills:      []string{"Docker", "Kubernetes", "Terraform", "AWS"},
		},
		{
			Title:       "Data Engineer",
			Location:    "Surabaya, ID",
			JobType:     "CT",
			Level:       "MD",
			Description: "Build data pipelines, manage warehouses, and optimize PostgreSQL for analytics.",
			Skills:      []string{"Python", "SQL", "PostgreSQL", "Kafka"},
		},
		{
			Title:       "Machine Learning Intern",
			Location:    "Jakarta, ID",
			JobType:     "IN",
			Level:       "EN",
			Description: "Prototype models and evaluation tooling with the data science team.",
			Skills:      []string{"Python", "Machine Learning", "Git"},
		},
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range items {
		skills, err := json.Marshal(it.Skills)
		if err != nil {
			return err
		}
		id := uuid.NewSHA1(DemoRecruiterID, []byte(it.Title))
		_, err = tx.Exec(
			ctx,
			`INSERT INTO job_postings (id, recruiter_id, title, description, location, job_type, experience_level, required_skills)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb)
			 ON CONFLICT (id) DO NOTHING`,
			id,
			DemoRecruiterID,
			it.Title,
			it.Description,
			it.Location,
			it.JobType,
			it.Level,
			string(skills),
		)
		if err != nil {
			return fmt.Errorf("insert %q: %w", it.Title, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
