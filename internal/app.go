package internal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dripfolio/dripfolio/config"
	"github.com/dripfolio/dripfolio/internal/domain"
	"github.com/dripfolio/dripfolio/internal/services/simulator"
	"github.com/dripfolio/dripfolio/internal/services/watchlist"
	"github.com/dripfolio/dripfolio/internal/storage/simulations"
	"github.com/dripfolio/dripfolio/internal/web"
)

// App is a single simulator instance: the pricer, the simulation services,
// the run journal and the web server on top of them.
type App struct {
	Config    config.Config
	Simulator *simulator.Simulator
	Watchlist *watchlist.Service
	Journal   *simulations.WALStore
	server    *web.Server
	logger    *zap.Logger
}

// NewApp wires a complete application from the resolved configuration.
func NewApp(conf config.Config, logger *zap.Logger) (*App, error) {
	p, err := NewPricer(conf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pricer")
	}

	journal, err := simulations.NewWALStore(conf.WALDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open run journal")
	}

	sim := simulator.NewSimulator(p, conf.ReferenceCoin, logger)
	watch := watchlist.NewService(p, conf.Coins, conf.Currency, logger)
	server := web.NewServer(conf.ListenAddr, sim, watch, journal, logger)

	return &App{
		Config:    conf,
		Simulator: sim,
		Watchlist: watch,
		Journal:   journal,
		server:    server,
		logger:    logger,
	}, nil
}

// Close releases the run journal.
func (a *App) Close() {
	if err := a.Journal.Close(); err != nil {
		a.logger.Warn("close run journal", zap.Error(err))
	}
}

// Run executes the configured initial simulation (when the config carries a
// full plan) and then serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if plan, ok := a.Config.Plan(); ok {
		if err := a.runInitialPlan(ctx, plan); err != nil {
			return errors.Wrap(err, "initial simulation failed")
		}
	}

	a.logger.Info("starting web server", zap.String("addr", a.Config.ListenAddr))
	return a.server.Start(ctx)
}

func (a *App) runInitialPlan(ctx context.Context, plan domain.InvestmentPlan) error {
	result, err := a.Simulator.Run(ctx, plan)
	if err != nil {
		return err
	}

	a.logger.Info("initial simulation complete",
		zap.Strings("coins", plan.Coins),
		zap.Int("periods", len(result.Records)),
		zap.String("invested", result.Portfolio.TotalInvested.String()),
		zap.String("value", result.Portfolio.TotalValue.String()),
		zap.String("roi_percent", result.Portfolio.ROIPercent.StringFixed(2)))

	run := domain.SimulationRun{
		ID:            uuid.NewString(),
		Time:          time.Now().UTC(),
		Coins:         plan.Coins,
		Currency:      plan.Currency,
		MonthlyAmount: plan.MonthlyAmount,
		Periods:       len(result.Records),
		TotalInvested: result.Portfolio.TotalInvested,
		TotalValue:    result.Portfolio.TotalValue,
		ROIPercent:    result.Portfolio.ROIPercent,
	}
	if err := a.Journal.Save(run); err != nil {
		a.logger.Warn("journal initial run", zap.Error(err))
	}
	return nil
}
