package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"voice_server/adapter/out/provider"
	"voice_server/core/domain"
	"voice_server/pkg/response"
)

// IngestHandler feeds the in-memory channel adapters for deployments that
// push messages in rather than connecting a provider.
type IngestHandler struct {
	channels map[domain.Channel]*provider.MemoryChannelAdapter
}

func NewIngestHandler(channels map[domain.Channel]*provider.MemoryChannelAdapter) *IngestHandler {
	return &IngestHandler{channels: channels}
}

func (h *IngestHandler) Register(app fiber.Router) {
	app.Post("/messages/ingest", h.Ingest)
}

type ingestRequest struct {
	Channel   domain.Channel           `json:"channel"`
	Direction string                   `json:"direction"` // "sent" or "received"
	Messages  []*domain.UnifiedMessage `json:"messages"`
}

func (h *IngestHandler) Ingest(c *fiber.Ctx) error {
	var req ingestRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	adapter, ok := h.channels[req.Channel]
	if !ok {
		return response.BadRequest(c, "unknown channel")
	}
	if len(req.Messages) == 0 {
		return response.BadRequest(c, "messages are required")
	}

	now := time.Now().UTC()
	for _, m := range req.Messages {
		m.Channel = req.Channel
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if m.ReceivedAt.IsZero() {
			m.ReceivedAt = now
		}
	}

	switch req.Direction {
	case "sent":
		adapter.IngestSent(req.Messages...)
	case "received":
		adapter.IngestReceived(req.Messages...)
	default:
		return response.BadRequest(c, "direction must be sent or received")
	}

	return response.OK(c, fiber.Map{"ingested": len(req.Messages)})
}
