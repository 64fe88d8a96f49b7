package handler

import (
	"errors"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DocumentHandler struct {
	documents usecase.DocumentUsecase
	analysis  usecase.AnalysisUsecase
}

func NewDocumentHandler(documents usecase.DocumentUsecase, analysis usecase.AnalysisUsecase) *DocumentHandler {
	return &DocumentHandler{documents: documents, analysis: analysis}
}

func (h *DocumentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/documents")
	grp.Post("/", h.Upload)
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Post("/:id/reprocess", h.Reprocess)
	grp.Get("/:id/analysis", h.GetAnalysis)
	grp.Get("/:id/feedback", h.GetFeedback)
}

// Upload accepts a multipart "file" field and answers 202 before any processing happens.
func (h *DocumentHandler) Upload(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing file", nil, err)
	}
	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
	}
	defer f.Close()

	doc, err := h.documents.Submit(c.Context(), actor, usecase.SubmitParams{Filename: fh.Filename, Content: f})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusAccepted, response.MessageAccepted, dto.NewDocumentResponse(doc))
}

func (h *DocumentHandler) List(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}

	docs, err := h.documents.List(c.Context(), actor, limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, dto.NewDocumentResponse(d))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *DocumentHandler) Get(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	doc, err := h.documents.Get(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDocumentResponse(doc))
}

func (h *DocumentHandler) Reprocess(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	doc, err := h.documents.Reprocess(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusAccepted, response.MessageAccepted, dto.DocumentAcceptedResponse{
		DocumentID: doc.ID,
		Status:     string(doc.Status),
	})
}

func (h *DocumentHandler) GetAnalysis(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	p, err := h.analysis.GetAnalysis(c.Context(), actor, id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotYetProcessed) {
			return response.Success(c, fiber.StatusAccepted, "Document not yet processed", nil)
		}
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAnalysisResponse(p))
}

func (h *DocumentHandler) GetFeedback(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	adv, err := h.analysis.GetFeedback(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFeedbackResponse(adv))
}
