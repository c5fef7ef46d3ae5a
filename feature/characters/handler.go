package characters

import (
	"content-forge/core/errs"
	"content-forge/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves read-only views of the character pool.
type Handler struct {
	planner *Planner
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(planner *Planner, logger *zap.Logger) *Handler {
	return &Handler{planner: planner, logger: logger}
}

// RegisterRoutes registers the character routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/characters")
	group.Get("/pool", h.HandlePool)
}

// HandlePool reports the available entries against the target pool size.
//
//	GET /characters/pool -> 200 {"snapshot": Snapshot, "target": int, "shortfall": int}
func (h *Handler) HandlePool(c *fiber.Ctx) error {
	snap, err := h.planner.Snapshot(c.Context())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Character pool snapshot failed", zap.Error(err))
		return c.Status(errs.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	target := h.planner.Target()
	return c.JSON(fiber.Map{
		"snapshot":  snap,
		"target":    target,
		"shortfall": max(0, target-snap.Count),
	})
}
