package handler

import (
	"context"

	"codal-docs-be/internal/feed"
	"codal-docs-be/internal/pkg/logger"
	"codal-docs-be/internal/pkg/serverutils"
	internalWS "codal-docs-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SessionFactory builds a fresh, not yet started session for one connection.
type SessionFactory func() internalWS.Session

type SyncStatsResponse struct {
	Sessions      int `json:"sessions"`
	Subscriptions int `json:"subscriptions"`
}

type SyncHandler struct {
	ctx        context.Context
	hub        *internalWS.Hub
	feed       *feed.Feed
	newSession SessionFactory
	logger     logger.ILogger
}

// NewSyncHandler serves sync sessions. Sessions live until their connection
// closes or ctx is cancelled.
func NewSyncHandler(ctx context.Context, hub *internalWS.Hub, f *feed.Feed, newSession SessionFactory, log logger.ILogger) *SyncHandler {
	return &SyncHandler{
		ctx:        ctx,
		hub:        hub,
		feed:       f,
		newSession: newSession,
		logger:     log,
	}
}

// ServeWs upgrades the request and runs one session over it.
func (h *SyncHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		session := h.newSession()
		h.logger.Info("SyncHandler", "Starting sync session", map[string]interface{}{"session_id": session.Id()})
		internalWS.ServeSession(h.ctx, h.hub, conn, session, h.logger)
		h.logger.Info("SyncHandler", "Sync session ended", map[string]interface{}{"session_id": session.Id()})
	})(c)
}

// Stats reports how many sessions and live lists this instance serves.
func (h *SyncHandler) Stats(c *fiber.Ctx) error {
	res := SyncStatsResponse{
		Sessions:      h.hub.Count(),
		Subscriptions: h.feed.ActiveSubscriptions(),
	}
	return c.JSON(serverutils.SuccessResponse("Success get sync stats", res))
}

func (h *SyncHandler) RegisterRoutes(router fiber.Router) {
	sync := router.Group("/sync/v1")
	sync.Get("/stats", h.Stats)
	sync.Get("/ws", h.ServeWs)
}
