package handler

import (
	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/jwt"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	jobs         usecase.JobUsecase
	applications usecase.ApplicationUsecase
}

func NewJobHandler(jobs usecase.JobUsecase, applications usecase.ApplicationUsecase) *JobHandler {
	return &JobHandler{jobs: jobs, applications: applications}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Get("/", h.List)
	grp.Get("/:job_id", h.Get)
	grp.Post("/", middleware.RequireRole(jwt.RoleRecruiter), h.Create)
	grp.Delete("/:job_id", middleware.RequireRole(jwt.RoleRecruiter), h.Deactivate)
	grp.Post("/:job_id/apply", h.Apply)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req dto.CreateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.jobs.Create(c.Context(), actor, usecase.CreateJobParams{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		RequiredSkills:  req.RequiredSkills,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job created", dto.NewJobResponse(p))
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}
	salaryMin, err := parseQueryFloat(c, "salary_min")
	if err != nil {
		return err
	}
	salaryMax, err := parseQueryFloat(c, "salary_max")
	if err != nil {
		return err
	}

	items, err := h.jobs.List(c.Context(), usecase.JobListParams{
		JobType:         c.Query("job_type"),
		ExperienceLevel: c.Query("experience_level"),
		Skill:           c.Query("skill"),
		Query:           c.Query("q"),
		SalaryMin:       salaryMin,
		SalaryMax:       salaryMax,
		Limit:           limit,
		Offset:          offset,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewJobResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}
	p, err := h.jobs.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(p))
}

func (h *JobHandler) Deactivate(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}
	if err := h.jobs.Deactivate(c.Context(), actor, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deactivated", nil)
}

func (h *JobHandler) Apply(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	app, err := h.applications.Apply(c.Context(), actor, jobID, req.DocumentID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application recorded", dto.NewApplicationResponse(app))
}
