package workflow

import (
	"errors"

	"lakecircle/core/logger"
	"lakecircle/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for lifecycle workflows.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the lifecycle routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/lifecycle")
	group.Get("/plan", h.HandlePlan)
	group.Post("/sync", h.HandleSync)
	group.Get("/summary", h.HandleSummary)
	group.Get("/runs", h.HandleRuns)
}

// HandlePlan computes the changes a sync would make.
// @Summary Plan Lifecycle Changes
// @Description Loads definitions and live configurations and reports the rules a sync would add and remove. The loaded state is cached briefly.
// @Tags lifecycle
// @Produce json
// @Success 200 {object} reconcile.Report "Dry Run Report"
// @Failure 502 {object} reconcile.Report "Aborted Run"
// @Router /lifecycle/plan [get]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Plan(c.Context())
	if err != nil {
		l.Error("Plan failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(report)
	}
	return c.JSON(report)
}

// HandleSync reconciles live buckets with the definitions.
// @Summary Sync Lifecycle Rules
// @Description Adds and removes lifecycle rules so every shared bucket matches its definitions. Concurrent requests share one run.
// @Tags lifecycle
// @Produce json
// @Success 200 {object} reconcile.Report "Sync Report"
// @Failure 502 {object} reconcile.Report "Aborted Run"
// @Router /lifecycle/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Sync requested")

	report, err := h.service.Run(c.Context(), reconcile.KindSync)
	if err != nil {
		l.Error("Sync aborted", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(report)
	}

	added, removed := report.Totals()
	l.Info("Sync completed", zap.String("run_id", report.RunID), zap.Int("added", added), zap.Int("removed", removed))
	return c.JSON(report)
}

// HandleSummary describes the live rules of every bucket.
// @Summary Summarise Lifecycle Rules
// @Description Asks the configured foundation model for a short description of each live bucket's lifecycle rules. Nothing is changed.
// @Tags lifecycle
// @Produce json
// @Success 200 {object} reconcile.Report "Summary Report"
// @Failure 502 {object} reconcile.Report "Aborted Run"
// @Router /lifecycle/summary [get]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Summarise(c.Context())
	if err != nil {
		l.Error("Summary aborted", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(report)
	}
	return c.JSON(report)
}

// HandleRuns lists recent runs.
// @Summary List Runs
// @Description Lists the most recent runs recorded in the history database.
// @Tags lifecycle
// @Produce json
// @Param limit query int false "Maximum number of runs" default(20)
// @Success 200 {array} history.RunRecord "Runs"
// @Failure 404 {object} map[string]string "History Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /lifecycle/runs [get]
func (h *Handler) HandleRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.Runs(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		if errors.Is(err, ErrHistoryDisabled) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Listing runs failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}
