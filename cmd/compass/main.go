package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/compass/internal/cli"
	"github.com/alexanderramin/compass/internal/cli/formatter"
	"github.com/alexanderramin/compass/internal/config"
	"github.com/alexanderramin/compass/internal/db"
	"github.com/alexanderramin/compass/internal/intelligence"
	"github.com/alexanderramin/compass/internal/llm"
	"github.com/alexanderramin/compass/internal/logging"
	"github.com/alexanderramin/compass/internal/repository"
	"github.com/alexanderramin/compass/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Call and advisory metrics are dumped to a textfile on exit.
	reg := prometheus.NewRegistry()
	if cfg.MetricsFile != "" {
		defer func() {
			if werr := prometheus.WriteToTextfile(cfg.MetricsFile, reg); werr != nil {
				log.Warn("writing metrics file", zap.String("path", cfg.MetricsFile), zap.Error(werr))
			}
		}()
	}

	observers := llm.MultiObserver{llm.NewMetricsObserver(reg)}
	if cfg.LLM.LogCalls {
		observers = append(observers, llm.NewZapObserver(log))
	}

	client, err := llm.NewClient(ctx, cfg.LLM, observers)
	if err != nil {
		return fmt.Errorf("creating llm client: %w", err)
	}
	log.Debug("advisor ready",
		zap.Bool("llm_enabled", cfg.LLM.Enabled),
		zap.String("provider", string(cfg.LLM.Provider)),
		zap.String("model", cfg.LLM.Model),
	)

	repos := service.Repositories{
		Customers:   repository.NewSQLiteCustomerRepo(database),
		Contracts:   repository.NewSQLiteContractRepo(database),
		Invoices:    repository.NewSQLiteInvoiceRepo(database),
		Scorecards:  repository.NewSQLiteScorecardRepo(database),
		Initiatives: repository.NewSQLiteInitiativeRepo(database),
		Allocations: repository.NewSQLiteAllocationRepo(database),
		Canvases:    repository.NewSQLiteCanvasRepo(database),
		Analyses:    repository.NewSQLiteCompetitiveAnalysisRepo(database),
	}
	useCases := service.NewZapUseCaseObserver(log)

	app := &cli.App{
		Advisory:   service.NewAdvisoryService(repos, intelligence.NewAdvisors(client, observers, log), useCases),
		Scorecards: service.NewScorecardService(repos.Scorecards),
		Seed:       service.NewSeedService(db.NewSQLiteUnitOfWork(database), useCases),
		LLM:        client,
		LLMConfig:  cfg.LLM,
	}

	out := os.Stdout.Fd()
	formatter.SetPlain(!isatty.IsTerminal(out) && !isatty.IsCygwinTerminal(out))

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
