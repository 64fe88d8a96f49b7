package dto

import (
	"resume-match/internal/domain/job"

	"github.com/google/uuid"
)

type CreateJobRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Location        string   `json:"location"`
	JobType         string   `json:"job_type"`
	ExperienceLevel string   `json:"experience_level"`
	RequiredSkills  []string `json:"required_skills"`
	SalaryMin       *float64 `json:"salary_min"`
	SalaryMax       *float64 `json:"salary_max"`
}

type ApplyRequest struct {
	DocumentID uuid.UUID `json:"document_id"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

type SaveJobRequest struct {
	JobID uuid.UUID `json:"job_id"`
}

type JobResponse struct {
	ID              uuid.UUID `json:"id"`
	RecruiterID     uuid.UUID `json:"recruiter_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	JobType         string    `json:"job_type"`
	ExperienceLevel string    `json:"experience_level"`
	RequiredSkills  []string  `json:"required_skills"`
	SalaryMin       *float64  `json:"salary_min"`
	SalaryMax       *float64  `json:"salary_max"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       string    `json:"created_at"`
}

func NewJobResponse(p job.Posting) JobResponse {
	return JobResponse{
		ID:              p.ID,
		RecruiterID:     p.RecruiterID,
		Title:           p.Title,
		Description:     p.Description,
		Location:        p.Location,
		JobType:         string(p.Type),
		ExperienceLevel: string(p.ExperienceLevel),
		RequiredSkills:  nonNil(p.RequiredSkills),
		SalaryMin:       p.SalaryMin,
		SalaryMax:       p.SalaryMax,
		IsActive:        p.IsActive,
		CreatedAt:       formatTime(p.CreatedAt),
	}
}

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	ApplicantID uuid.UUID `json:"applicant_id"`
	DocumentID  uuid.UUID `json:"document_id"`
	Status      string    `json:"status"`
	CreatedAt   string    `json:"created_at"`
}

func NewApplicationResponse(a job.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		DocumentID:  a.DocumentID,
		Status:      string(a.Status),
		CreatedAt:   formatTime(a.CreatedAt),
	}
}

type SavedJobResponse struct {
	ID        uuid.UUID   `json:"id"`
	Job       JobResponse `json:"job"`
	CreatedAt string      `json:"created_at"`
}

func NewSavedJobResponse(s job.SavedJob) SavedJobResponse {
	return SavedJobResponse{
		ID:        s.ID,
		Job:       NewJobResponse(s.Job),
		CreatedAt: formatTime(s.CreatedAt),
	}
}
