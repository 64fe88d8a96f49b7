package v1

import (
	"resume-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterJobs(
	r fiber.Router,
	jobHandler *handler.JobHandler,
	matchHandler *handler.MatchHandler,
	applicationHandler *handler.ApplicationHandler,
	savedJobHandler *handler.SavedJobHandler,
) {
	if r == nil {
		return
	}

	if jobHandler != nil {
		jobHandler.RegisterRoutes(r)
	}
	if matchHandler != nil {
		matchHandler.RegisterRoutes(r)
	}
	if applicationHandler != nil {
		applicationHandler.RegisterRoutes(r)
	}
	if savedJobHandler != nil {
		savedJobHandler.RegisterRoutes(r)
	}
}
