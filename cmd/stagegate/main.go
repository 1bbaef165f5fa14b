package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rfontaine/stagegate/internal/cli"
	"github.com/rfontaine/stagegate/internal/config"
	"github.com/rfontaine/stagegate/internal/db"
	"github.com/rfontaine/stagegate/internal/gate"
	"github.com/rfontaine/stagegate/internal/repository"
	"github.com/rfontaine/stagegate/internal/routing"
	"github.com/rfontaine/stagegate/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Piped output gets plain text; lipgloss honors NO_COLOR.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		os.Setenv("NO_COLOR", "1")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		return err
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and the unit of work for transactional operations.
	workItemRepo := repository.NewSQLiteWorkItemRepo(database)
	auditRepo := repository.NewSQLiteAuditEventRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	opts := cfg.GateOptions()
	registry := gate.NewRegistry(opts)
	sequencer := gate.NewSequencer(opts)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("STAGEGATE_LOG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		WorkItems:   service.NewWorkItemService(workItemRepo, observer),
		Progression: service.NewProgressionService(workItemRepo, auditRepo, uow, registry, sequencer, observer),
		Audit:       service.NewAuditService(auditRepo),
		Router:      routing.NewRouter(workItemRepo),
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
