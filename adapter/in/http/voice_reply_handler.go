// Package http contains the fiber handlers exposing the service surface.
package http

import (
	"github.com/gofiber/fiber/v2"

	"voice_server/core/domain"
	"voice_server/core/port/in"
	"voice_server/core/service/reply"
	"voice_server/pkg/response"
)

// ReplyHandler exposes message analysis and reply drafting.
type ReplyHandler struct {
	svc     in.ReplyService
	drafter *reply.BatchDrafter
}

func NewReplyHandler(svc in.ReplyService, drafter *reply.BatchDrafter) *ReplyHandler {
	return &ReplyHandler{svc: svc, drafter: drafter}
}

func (h *ReplyHandler) Register(app fiber.Router) {
	app.Post("/analyze", h.Analyze)
	app.Post("/analyze/quick", h.QuickAnalyze)

	replies := app.Group("/replies")
	replies.Post("/", h.Generate)
	replies.Post("/feedback", h.Regenerate)
	replies.Post("/batch", h.DraftBatch)
}

type messageRequest struct {
	Message *domain.UnifiedMessage `json:"message"`
}

type feedbackRequest struct {
	Message  *domain.UnifiedMessage `json:"message"`
	Feedback string                 `json:"feedback"`
}

type batchRequest struct {
	Messages []*domain.UnifiedMessage `json:"messages"`
}

func (h *ReplyHandler) Analyze(c *fiber.Ctx) error {
	var req messageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Message == nil {
		return response.BadRequest(c, "message is required")
	}

	analysis, err := h.svc.AnalyzeMessage(c.Context(), req.Message)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.OK(c, analysis)
}

func (h *ReplyHandler) QuickAnalyze(c *fiber.Ctx) error {
	var req messageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Message == nil {
		return response.BadRequest(c, "message is required")
	}

	analysis, err := h.svc.QuickAnalyze(c.Context(), req.Message)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.OK(c, analysis)
}

func (h *ReplyHandler) Generate(c *fiber.Ctx) error {
	var req messageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Message == nil {
		return response.BadRequest(c, "message is required")
	}

	result, err := h.svc.GenerateResponse(c.Context(), req.Message)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.OK(c, result)
}

func (h *ReplyHandler) Regenerate(c *fiber.Ctx) error {
	var req feedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Message == nil {
		return response.BadRequest(c, "message is required")
	}

	result, err := h.svc.RegenerateWithFeedback(c.Context(), req.Message, req.Feedback)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.OK(c, result)
}

func (h *ReplyHandler) DraftBatch(c *fiber.Ctx) error {
	var req batchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if len(req.Messages) == 0 {
		return response.BadRequest(c, "messages are required")
	}

	result, err := h.drafter.DraftAll(c.Context(), req.Messages)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.OK(c, result)
}
