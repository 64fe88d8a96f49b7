package handler

import (
	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/domain/job"
	"resume-match/internal/domain/match"
	"resume-match/internal/domain/matching"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/jobs/:job_id/matches", h.Compute)
	r.Get("/jobs/:job_id/matches/:profile_id", h.GetMatch)
	r.Get("/profiles/:profile_id/matches", h.ProfileMatches)
	r.Get("/matches", h.List)
}

func (h *MatchHandler) Compute(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	var req struct {
		ProfileID uuid.UUID `json:"profile_id"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rec, err := h.uc.Compute(c.Context(), actor, req.ProfileID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(rec))
}

// GetMatch never computes; an unscored pair answers 200 with a null match_score.
func (h *MatchHandler) GetMatch(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}
	profileID, err := uuidParam(c, "profile_id")
	if err != nil {
		return err
	}

	rec, err := h.uc.Get(c.Context(), actor, profileID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	if rec == nil {
		return response.Success(c, fiber.StatusOK, response.MessageOK, dto.UnscoredMatchResponse(profileID, jobID))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(*rec))
}

func (h *MatchHandler) ProfileMatches(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	profileID, err := uuidParam(c, "profile_id")
	if err != nil {
		return err
	}

	var f matching.Filter
	if s := c.Query("job_type"); s != "" {
		jt, err := job.ParseType(s)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		f.JobType = jt
	}
	if s := c.Query("experience_level"); s != "" {
		lvl, err := job.ParseExperienceLevel(s)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		f.ExperienceLevel = lvl
	}

	recs, err := h.uc.ProfileMatches(c.Context(), actor, profileID, f)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, matchResponses(recs))
}

// List returns stored records without rescoring. profile_id narrows it to one profile.
func (h *MatchHandler) List(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var profileID uuid.UUID
	if s := c.Query("profile_id"); s != "" {
		if profileID, err = uuid.Parse(s); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}

	recs, err := h.uc.List(c.Context(), actor, profileID, limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, matchResponses(recs))
}

func matchResponses(recs []match.Record) []dto.MatchResponse {
	out := make([]dto.MatchResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.NewMatchResponse(r))
	}
	return out
}
