package usecase

import (
	"errors"

	"resume-match/internal/domain/document"
	"resume-match/internal/pipeline"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrNotYetProcessed = errors.New("document not yet processed")
	ErrRunFailed       = errors.New("document processing failed")
	ErrJobInactive     = errors.New("job is no longer active")
	ErrInternal        = errors.New("internal error")

	ErrUnsupportedFormat = document.ErrUnsupportedFormat
	ErrRunInFlight       = pipeline.ErrRunInFlight
	ErrQueueFull         = pipeline.ErrQueueFull
)
