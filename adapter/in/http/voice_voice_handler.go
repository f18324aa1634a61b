package http

import (
	"github.com/gofiber/fiber/v2"

	"voice_server/config"
	"voice_server/core/domain"
	"voice_server/core/port/in"
	"voice_server/pkg/response"
)

// VoiceHandler exposes voice learning and profile reads.
type VoiceHandler struct {
	svc in.VoiceService
	cfg *config.Config
}

func NewVoiceHandler(svc in.VoiceService, cfg *config.Config) *VoiceHandler {
	return &VoiceHandler{svc: svc, cfg: cfg}
}

func (h *VoiceHandler) Register(app fiber.Router) {
	app.Post("/style/batch", h.AnalyzeStyleBatch)

	voice := app.Group("/voice")
	voice.Post("/learn", h.Learn)
	voice.Get("/profile", h.GetProfile)
	voice.Delete("/profile", h.ClearProfile)
	voice.Get("/prompt", h.GetPrompt)
	voice.Get("/summary", h.GetSummary)
}

type learnRequest struct {
	UserID                string `json:"user_id"`
	UserName              string `json:"user_name"`
	UserEmail             string `json:"user_email"`
	MaxMessagesPerChannel int    `json:"max_messages_per_channel"`
}

type styleBatchResponse struct {
	Records []*domain.StyleRecord     `json:"records"`
	Summary *domain.StyleBatchSummary `json:"summary"`
}

type stylePromptResponse struct {
	Channel string `json:"channel"`
	Prompt  string `json:"prompt"`
}

func (h *VoiceHandler) Learn(c *fiber.Ctx) error {
	var req learnRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.UserID == "" {
		return response.BadRequest(c, "user_id is required")
	}
	if req.MaxMessagesPerChannel <= 0 {
		req.MaxMessagesPerChannel = h.cfg.MaxMessagesPerChannel
	}

	profile, err := h.svc.LearnUserVoice(c.Context(), req.UserID, req.UserName, req.UserEmail, req.MaxMessagesPerChannel)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.OK(c, profile)
}

func (h *VoiceHandler) AnalyzeStyleBatch(c *fiber.Ctx) error {
	var req batchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	records, summary, err := h.svc.AnalyzeStyleBatch(c.Context(), req.Messages)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.OK(c, styleBatchResponse{Records: records, Summary: summary})
}

func (h *VoiceHandler) GetProfile(c *fiber.Ctx) error {
	profile := h.svc.GetProfile()
	if profile == nil {
		return response.NotFound(c, "no voice profile learned")
	}
	return response.OK(c, profile)
}

func (h *VoiceHandler) ClearProfile(c *fiber.Ctx) error {
	h.svc.ClearProfile(c.Context())
	return response.NoContent(c)
}

func (h *VoiceHandler) GetPrompt(c *fiber.Ctx) error {
	ch := domain.Channel(c.Query("channel", string(domain.ChannelEmail)))
	switch ch {
	case domain.ChannelEmail, domain.ChannelSlack, domain.ChannelTeams:
	default:
		return response.BadRequest(c, "unknown channel")
	}

	prompt, ok := h.svc.GetStylePrompt(ch)
	if !ok {
		return response.NotFound(c, "no voice profile learned")
	}
	return response.OK(c, stylePromptResponse{Channel: string(ch), Prompt: prompt})
}

func (h *VoiceHandler) GetSummary(c *fiber.Ctx) error {
	return response.OK(c, h.svc.GetVoiceSummary())
}
