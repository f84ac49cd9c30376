package cmd

import (
	"context"
	"fmt"

	"lakecircle/core/config"
	"lakecircle/core/controlplane"
	"lakecircle/core/database"
	"lakecircle/core/logger"
	"lakecircle/core/reconcile"
	"lakecircle/core/storage"
	"lakecircle/feature/definition"
	"lakecircle/feature/history"
	"lakecircle/feature/resource"
	"lakecircle/feature/summary"
	"lakecircle/feature/workflow"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds everything a command needs once configuration is resolved.
type runtime struct {
	cfg      *config.Config
	log      *zap.Logger
	store    storage.Client
	endpoint storage.Endpoint
	db       *gorm.DB
}

// loadRuntime reads and validates configuration, then opens the endpoint
// storage and, when enabled, the history database.
func loadRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	ep, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	rt := &runtime{
		cfg:      cfg,
		log:      logg.With(zap.String("account", cfg.AWS.Account), zap.String("region", cfg.AWS.Region)),
		store:    store,
		endpoint: ep,
	}

	// The history store is optional; a failed connection only disables it.
	if cfg.Database.Enabled {
		if conn, err := database.Connect(cfg.Database); err != nil {
			rt.log.Warn("History database connection failed", zap.Error(err))
		} else {
			rt.db = conn
			rt.log.Info("Connected to history database", zap.String("name", cfg.Database.Name))
		}
	}

	return rt, nil
}

// workflows wires the loaders, the mutation port and the recorders into a
// workflow service for the configured account.
func (rt *runtime) workflows(ctx context.Context) (*workflow.Service, error) {
	clients, err := controlplane.NewClients(ctx, rt.cfg.AWS)
	if err != nil {
		return nil, fmt.Errorf("failed to create control plane clients: %w", err)
	}
	if err := controlplane.CheckAccount(ctx, clients.Identity, rt.cfg.AWS.Account); err != nil {
		return nil, err
	}

	account, region := rt.cfg.AWS.Account, clients.Region
	r := &reconcile.Reconciler{
		Account:    account,
		Region:     region,
		Desired:    definition.NewLoader(rt.store, rt.log).LoadFunc(rt.endpoint.Definition()),
		Actual:     resource.NewLoader(clients.S3, rt.log).LoadFunc(account, region),
		Mutators:   resource.MutatorFactory(clients.S3, account, rt.log),
		Summariser: summary.NewSummariser(clients.Models, rt.cfg.AWS.SummaryModel, rt.log),
		Cache:      reconcile.NewSnapshotCache(rt.cfg.Server.PlanCacheTTL()),
		CacheKey:   rt.cfg.CacheKey(),
		Logger:     rt.log,
	}

	recorders := history.Recorders{history.NewArchive(rt.store, rt.endpoint)}
	var runs workflow.RunLister
	if rt.db != nil {
		store := history.NewStore(rt.db)
		if err := store.Migrate(); err != nil {
			rt.log.Warn("History migration failed, runs will not be persisted", zap.Error(err))
		} else {
			recorders = append(recorders, store)
			runs = store
		}
	}

	return workflow.NewService(r, recorders, runs, rt.log), nil
}
