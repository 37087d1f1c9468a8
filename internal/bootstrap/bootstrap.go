package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	admininadapter "github.com/hara-desu/ForestOnchain/internal/modules/admin/adapter/in"
	adminoutadapter "github.com/hara-desu/ForestOnchain/internal/modules/admin/adapter/out"
	adminservice "github.com/hara-desu/ForestOnchain/internal/modules/admin/service"
	adminusecase "github.com/hara-desu/ForestOnchain/internal/modules/admin/usecase"
	goalinadapter "github.com/hara-desu/ForestOnchain/internal/modules/goal/adapter/in"
	goaloutadapter "github.com/hara-desu/ForestOnchain/internal/modules/goal/adapter/out"
	goalservice "github.com/hara-desu/ForestOnchain/internal/modules/goal/service"
	goalusecase "github.com/hara-desu/ForestOnchain/internal/modules/goal/usecase"
	journalinadapter "github.com/hara-desu/ForestOnchain/internal/modules/journal/adapter/in"
	journaloutadapter "github.com/hara-desu/ForestOnchain/internal/modules/journal/adapter/out"
	journalservice "github.com/hara-desu/ForestOnchain/internal/modules/journal/service"
	journalusecase "github.com/hara-desu/ForestOnchain/internal/modules/journal/usecase"
	sessioninadapter "github.com/hara-desu/ForestOnchain/internal/modules/session/adapter/in"
	sessionoutadapter "github.com/hara-desu/ForestOnchain/internal/modules/session/adapter/out"
	sessionservice "github.com/hara-desu/ForestOnchain/internal/modules/session/service"
	sessionusecase "github.com/hara-desu/ForestOnchain/internal/modules/session/usecase"
	"github.com/hara-desu/ForestOnchain/internal/platform/chain"
	"github.com/hara-desu/ForestOnchain/internal/platform/clock"
	"github.com/hara-desu/ForestOnchain/internal/platform/config"
	"github.com/hara-desu/ForestOnchain/internal/platform/id"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
	uiapp "github.com/hara-desu/ForestOnchain/internal/ui/app"
)

type App struct {
	Config  config.Config
	Logger  hclog.Logger
	Clock   clock.Clock
	Account string

	GoalCLI    goalinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler
	AdminCLI   admininadapter.CLIHandler
	JournalCLI journalinadapter.CLIHandler

	Transactions *tx.Factory

	closers []io.Closer
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func New(ctx context.Context, cfg config.Config, logger hclog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clk := clock.SystemClock{}
	app := &App{Config: cfg, Logger: logger, Clock: clk}

	client, err := chain.Dial(ctx, cfg.RPCURL, chain.Options{
		Contract:       cfg.ContractAddress,
		Account:        cfg.Account,
		PollInterval:   cfg.PollInterval,
		ConfirmTimeout: cfg.ConfirmTimeout,
		Clock:          clk,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to node: %w", err)
	}
	app.closers = append(app.closers, closerFunc(func() error { client.Close(); return nil }))
	app.Account = client.Account()

	projector, err := journaloutadapter.NewSQLiteAttemptProjector(cfg.DBPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new attempt projector: %w", err)
	}
	app.closers = append(app.closers, projector)
	journalUC := journalusecase.NewInteractor(journalservice.NewJournalService(projector))

	txs := tx.NewFactory(client, clk, id.UUID{},
		journalinadapter.Observer(journalUC, logger),
		tx.LogObserver(logger),
	)
	app.Transactions = txs

	goalUC := goalusecase.NewInteractor(
		goalservice.NewGoalService(clk, goaloutadapter.NewContractGateway(client), logger),
		txs,
		logger,
	)
	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(
			clk,
			sessionoutadapter.NewContractGateway(client),
			sessionoutadapter.NewFileBreakStore(cfg.BreakPath),
			logger,
		),
		goalUC,
		txs,
		logger,
	)
	adminUC := adminusecase.NewInteractor(
		adminservice.NewAdminService(adminoutadapter.NewContractGateway(client, client)),
		txs,
	)

	app.GoalCLI = goalinadapter.NewCLIHandler(goalUC)
	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.AdminCLI = admininadapter.NewCLIHandler(adminUC)
	app.JournalCLI = journalinadapter.NewCLIHandler(journalUC)
	return app, nil
}

// Close releases the node connection and the journal database.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// RunTUI runs the terminal UI. Lifecycle events are handed to the UI with
// back-pressure so a confirmed write always triggers its refetch; delivery
// stops once the program has exited.
func RunTUI(app *App) error {
	done := make(chan struct{})
	events := make(chan tx.Event, 32)
	succeeded := make(chan tx.Receipt, 8)
	app.Transactions.Observe(func(ev tx.Event) {
		select {
		case events <- ev:
		case <-done:
		}
	})
	app.Transactions.OnSucceeded(func(r tx.Receipt) {
		select {
		case succeeded <- r:
		case <-done:
		}
	})
	model := uiapp.NewModel(uiapp.Deps{
		Account:        app.Account,
		Goals:          app.GoalCLI,
		Session:        app.SessionCLI,
		Journal:        app.JournalCLI,
		Clock:          app.Clock,
		Transactions:   app.Transactions,
		Events:         events,
		Succeeded:      succeeded,
		RequestTimeout: app.Config.RequestTimeout,
		WriteTimeout:   app.Config.ConfirmTimeout + app.Config.RequestTimeout,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	close(done)
	return err
}
