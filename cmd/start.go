package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lakecircle/core/loader"
	"lakecircle/core/logger"
	"lakecircle/core/middleware/auth"
	"lakecircle/core/middleware/rayid"
	"lakecircle/feature/integrity"
	"lakecircle/feature/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "lakecircle/docs/swagger"
)

// @title lakecircle API
// @version 1.0
// @description API for reconciling S3 bucket lifecycle rules with declared definitions.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the lakecircle server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Configuration, logger, storage and history database
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		defer rt.log.Sync()
		if err := rt.cfg.Server.Validate(); err != nil {
			return err
		}
		logg := rt.log

		// 2. Control plane and workflows
		svc, err := rt.workflows(cmd.Context())
		if err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 3. Feature Loader
		mgr := loader.NewManager()
		mgr.Register(workflow.NewFeatureFromService(svc))
		mgr.Register(integrity.NewFeature(rt.store, rt.endpoint, logg, rt.db))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public routes
		app.Get("/health", handleHealth)
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port), zap.String("endpoint", rt.endpoint.String()))
			errCh <- app.Listen(":" + rt.cfg.Server.Port)
		}()

		// Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("server failed to start: %w", err)
		case <-c:
		}
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

// handleHealth reports that the server is up.
// @Summary Health Check
// @Description Reports that the server is up.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "OK"
// @Router /health [get]
func handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func init() {
	RootCmd.AddCommand(startCmd)
}
