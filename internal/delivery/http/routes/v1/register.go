package v1

import (
	"resume-match/internal/delivery/http/handler"
	"resume-match/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Documents    *handler.DocumentHandler
	Jobs         *handler.JobHandler
	Matches      *handler.MatchHandler
	Applications *handler.ApplicationHandler
	SavedJobs    *handler.SavedJobHandler
	Skills       *handler.SkillHandler
}

// Register mounts every v1 route behind bearer authentication.
func Register(r fiber.Router, auth *middleware.AuthMiddleware, h Handlers) {
	if r == nil {
		return
	}

	protected := r
	if auth != nil {
		protected = r.Group("", auth.Middleware())
	}

	RegisterDocuments(protected, h.Documents)
	RegisterJobs(protected, h.Jobs, h.Matches, h.Applications, h.SavedJobs)
	if h.Skills != nil {
		h.Skills.RegisterRoutes(protected)
	}
}
