package integrity

import (
	"context"

	"lakecircle/core/storage"
	"lakecircle/feature/definition"
	"lakecircle/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	ep     storage.Endpoint
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service. db may be nil.
func NewService(client storage.Client, ep storage.Endpoint, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		ep:     ep,
		logger: logger.Named("integrity"),
		db:     db,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.ep)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.ep, s.logger, missing)
}

// CheckDefinitions reports the definition files and rules a run would skip.
func (s *Service) CheckDefinitions(ctx context.Context) (*checks.DefinitionReport, error) {
	return checks.CheckDefinitions(ctx, definition.NewLoader(s.client, s.logger), s.ep)
}

// HasDatabase reports whether a history database is attached.
func (s *Service) HasDatabase() bool {
	return s.db != nil
}

// CheckSchema validates the history tables.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}
