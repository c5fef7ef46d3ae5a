package items

import (
	"content-forge/core/errs"
	"content-forge/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves read-only views of the item template pool.
type Handler struct {
	planner *Planner
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(planner *Planner, logger *zap.Logger) *Handler {
	return &Handler{planner: planner, logger: logger}
}

// RegisterRoutes registers the item routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/items")
	group.Get("/pool", h.HandlePool)
}

// HandlePool reports the etalon pool and its diff against the persisted templates.
// Nothing is purged or dispatched.
//
//	GET /items/pool -> 200 Report
func (h *Handler) HandlePool(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	report, err := h.planner.Preview(c.Context())
	if err != nil {
		l.Error("Item pool preview failed", zap.Error(err))
		return c.Status(errs.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
