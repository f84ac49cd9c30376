package integrity

import (
	"lakecircle/core/logger"
	"lakecircle/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.SchemaReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Post("/fix", h.HandleStructureFix)
	group.Get("/definitions", h.HandleDefinitionCheck)
	group.Get("/schema", h.HandleSchemaCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs every integrity check (Structure, Definitions and, when a history database is attached, Schema).
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["structure"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	if defReport, err := h.service.CheckDefinitions(ctx); err != nil {
		report["definitions"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["definitions"] = defReport
	}

	if h.service.HasDatabase() {
		if schemaReport, err := h.service.CheckSchema(); err != nil {
			report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
		} else {
			report["schema"] = schemaReport
		}
	}

	return c.JSON(report)
}

// HandleStructureCheck checks the endpoint layout.
// @Summary Check Structure
// @Description Checks if the layout folders exist under the configured endpoint.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	missing, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleStructureFix creates missing layout folders.
// @Summary Fix Structure
// @Description Creates an empty marker object for every missing layout folder.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Fixed Folders"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/fix [post]
func (h *Handler) HandleStructureFix(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	missing, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Info("Attempting to fix missing folders", zap.Strings("missing", missing))
		if err := h.service.FixStructure(c.Context(), missing); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to fix structure",
				"details": err.Error(),
				"missing": missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "fixed",
		"fixed":  missing,
	})
}

// HandleDefinitionCheck validates the definition files.
// @Summary Check Definitions
// @Description Parses every definition file and lists the files and rules a run would skip.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.DefinitionReport "Definition Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/definitions [get]
func (h *Handler) HandleDefinitionCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckDefinitions(c.Context())
	if err != nil {
		l.Error("Definition check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

// HandleSchemaCheck checks the history schema.
// @Summary Check History Schema
// @Description Checks that the history tables carry every column the run store writes.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 404 {object} map[string]string "History Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if !h.service.HasDatabase() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": checks.ErrNoDatabase.Error()})
	}

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}
