package handler

import (
	"errors"
	"strconv"
	"strings"

	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// mapUsecaseError turns usecase sentinels into AppErrors. Unknown errors become 500s.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnsupportedFormat):
		return middleware.NewAppError(fiber.StatusUnsupportedMediaType, "Unsupported document format", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrRunInFlight):
		return middleware.NewAppError(fiber.StatusConflict, "Document is already being processed", nil, err)
	case errors.Is(err, usecase.ErrNotYetProcessed):
		return middleware.NewAppError(fiber.StatusConflict, "Document is not processed yet", nil, err)
	case errors.Is(err, usecase.ErrJobInactive):
		return middleware.NewAppError(fiber.StatusConflict, "Job is no longer active", nil, err)
	case errors.Is(err, usecase.ErrQueueFull):
		return middleware.NewAppError(fiber.StatusTooManyRequests, "Processing queue is full, retry later", nil, err)
	case errors.Is(err, usecase.ErrRunFailed):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Document processing failed", fiber.Map{"reason": failureReason(err)}, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

// failureReason strips the sentinel prefix added by the analysis usecase.
func failureReason(err error) string {
	msg := err.Error()
	prefix := usecase.ErrRunFailed.Error() + ": "
	return strings.TrimPrefix(msg, prefix)
}

func actorFrom(c fiber.Ctx) (usecase.Actor, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return usecase.Actor{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	role, _ := c.Locals(middleware.CtxRoleKey).(string)
	return usecase.Actor{UserID: userID, Role: role}, nil
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return id, nil
}

// parseQueryFloat returns nil when the parameter is absent.
func parseQueryFloat(c fiber.Ctx, key string) (*float64, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return &v, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return v, nil
}
