package initializer

import (
	"fmt"

	"github.com/amirasaad/bankoffice/infra"
	"github.com/amirasaad/bankoffice/infra/memory"
	infrarepo "github.com/amirasaad/bankoffice/infra/repository"
	"github.com/amirasaad/bankoffice/pkg/app"
	"github.com/amirasaad/bankoffice/pkg/config"
	"github.com/amirasaad/bankoffice/pkg/metrics"
	"github.com/amirasaad/bankoffice/pkg/notify"
)

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// InitializeDependencies builds the infrastructure described by cfg.
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	switch cfg.DB.Driver {
	case DriverMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		deps.Uow = memory.NewUoW(memory.NewStore())
	case DriverPostgres, "":
		db, dbErr := infra.NewDBConnection(cfg.DB, cfg.Env)
		if dbErr != nil {
			logger.Error("Failed to initialize database", "error", dbErr)
			return nil, dbErr
		}
		deps.Uow = infrarepo.NewUoW(db)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}

	deps.Notifier = notify.New(cfg.Mail, logger)
	deps.Metrics = metrics.NewCollector()
	return
}
