package workflow

import (
	"lakecircle/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new lifecycle workflow feature.
func NewFeature(r *reconcile.Reconciler, recorder reconcile.Recorder, runs RunLister, logger *zap.Logger) *Feature {
	return NewFeatureFromService(NewService(r, recorder, runs, logger))
}

// NewFeatureFromService creates the feature around an existing service.
func NewFeatureFromService(svc *Service) *Feature {
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "lifecycle"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}
