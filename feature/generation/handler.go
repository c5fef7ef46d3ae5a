package generation

import (
	"content-forge/core/errs"
	"content-forge/core/logger"
	"content-forge/feature/characters"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for generation planning.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the generation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/generation")
	group.Post("/items/plan", h.HandlePlanItems)
	group.Post("/characters/plan", h.HandlePlanCharacters)
	group.Post("/prestart", h.HandlePrestart)
	group.Get("/batches/:kind/:id", h.HandleBatchStatus)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := errs.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandlePlanItems runs one item planning cycle and returns its report.
//
//	POST /generation/items/plan -> 200 items.Report
func (h *Handler) HandlePlanItems(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.PlanItems(c.Context())
	if err != nil {
		return h.fail(c, l, "Item planning failed", err)
	}
	l.Info("Item planning triggered", zap.Int("planned", report.Planned), zap.Int("batches", len(report.BatchIDs)))
	return c.JSON(report)
}

type planCharactersRequest struct {
	GenderRatio string `json:"gender_ratio"`
}

// HandlePlanCharacters runs one character planning cycle over the playable races. The
// optional body {"gender_ratio": "MALE:x,FEMALE:y"} overrides the configured ratio.
//
//	POST /generation/characters/plan -> 200 characters.Report
func (h *Handler) HandlePlanCharacters(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req planCharactersRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}
	if req.GenderRatio == "" {
		req.GenderRatio = h.service.deps.GenderRatio
	}

	ratio, err := characters.ParseGenderRatio(req.GenderRatio)
	if err != nil {
		return h.fail(c, l, "Invalid gender ratio", err)
	}

	report, err := h.service.PlanCharacters(c.Context(), nil, ratio)
	if err != nil {
		return h.fail(c, l, "Character planning failed", err)
	}
	l.Info("Character planning triggered", zap.Int("planned", report.Planned), zap.Int("batches", len(report.BatchIDs)))
	return c.JSON(report)
}

// HandlePrestart runs the pre-start pipeline synchronously.
//
//	POST /generation/prestart -> 200 {"status": "completed", "steps": [...]}
func (h *Handler) HandlePrestart(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	p := h.service.Pipeline()
	if err := p.RunE(c.Context()); err != nil {
		l.Error("Pre-start pipeline failed", zap.Error(err))
		return c.Status(errs.HTTPStatus(err)).JSON(fiber.Map{
			"status": "aborted",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status": "completed",
		"steps":  p.Steps(),
	})
}

// HandleBatchStatus returns the progress of one batch.
//
//	GET /generation/batches/:kind/:id -> 200 BatchStatus, 404 when expired or unknown
func (h *Handler) HandleBatchStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	status, err := h.service.BatchStatus(c.Context(), c.Params("kind"), c.Params("id"))
	if err != nil {
		return h.fail(c, l, "Batch status lookup failed", err)
	}
	return c.JSON(status)
}
