// Package app wires the services of the back office around shared
// infrastructure dependencies.
package app

import (
	"log/slog"

	"github.com/amirasaad/bankoffice/pkg/config"
	"github.com/amirasaad/bankoffice/pkg/metrics"
	"github.com/amirasaad/bankoffice/pkg/notify"
	"github.com/amirasaad/bankoffice/pkg/repository"
	clientsvc "github.com/amirasaad/bankoffice/pkg/service/client"
	"github.com/amirasaad/bankoffice/pkg/service/ledger"
	reportsvc "github.com/amirasaad/bankoffice/pkg/service/report"
	"github.com/shopspring/decimal"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow      repository.UnitOfWork
	Notifier notify.Notifier
	Metrics  *metrics.Collector
	Logger   *slog.Logger
}

type App struct {
	Deps          *Deps
	Config        *config.App
	LedgerService *ledger.Service
	ClientService *clientsvc.Service
	ReportService *reportsvc.Service
}

// New builds the service graph. Extra client options are appended after the
// ones derived from cfg.
func New(deps *Deps, cfg *config.App, clientOpts ...clientsvc.Option) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewCollector()
	}
	app := &App{
		Deps:   deps,
		Config: cfg,
	}

	app.LedgerService = ledger.New(deps.Uow, deps.Logger, ledger.WithMetrics(deps.Metrics))

	opts := make([]clientsvc.Option, 0, len(clientOpts)+1)
	if cfg != nil && cfg.Ledger != nil {
		limit, err := decimal.NewFromString(cfg.Ledger.DefaultWithdrawalLimit)
		if err != nil {
			deps.Logger.Warn("Invalid default withdrawal limit, using built-in default",
				"value", cfg.Ledger.DefaultWithdrawalLimit, "error", err)
		} else {
			opts = append(opts, clientsvc.WithDefaultWithdrawalLimit(limit))
		}
	}
	opts = append(opts, clientOpts...)
	app.ClientService = clientsvc.New(deps.Uow, deps.Notifier, deps.Logger, opts...)

	app.ReportService = reportsvc.New(app.ClientService, app.LedgerService, deps.Logger)
	return app
}
