package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/nectime/internal/cli"
	"github.com/alexanderramin/nectime/internal/config"
	"github.com/alexanderramin/nectime/internal/db"
	"github.com/alexanderramin/nectime/internal/hook"
	"github.com/alexanderramin/nectime/internal/kimai"
	"github.com/alexanderramin/nectime/internal/repository"
	"github.com/alexanderramin/nectime/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dbPath, err := config.DBPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	logRepo := repository.NewSQLiteLogRepo(database)
	mappingRepo := repository.NewSQLiteMappingRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	maxAge := time.Duration(cfg.MaxSessionHours) * time.Hour
	sessionSvc := service.NewSessionService(sessionRepo, uow, maxAge, cfg.DefaultActivity)
	logSvc := service.NewLogService(logRepo, uow)

	// The client is always built; live network calls check the config
	// first, and dry-run pushes never leave the process.
	client := kimai.NewClient(cfg.Kimai.URL, cfg.Kimai.AuthUser, cfg.Kimai.AuthToken, cfg.DryRun)
	pushSvc := service.NewPushService(logRepo, uow, client, cfg)

	var finder hook.ProjectFinder
	if cfg.RequireKimai() == nil {
		finder = client
	}

	app := &cli.App{
		Sessions: sessionSvc,
		Logs:     logSvc,
		Push:     pushSvc,
		Mappings: mappingRepo,
		Kimai:    client,
		Hook:     hook.NewHandler(sessionSvc, logSvc, mappingRepo, finder, cfg),
		Config:   cfg,
	}

	return cli.NewRootCmd(app).Execute()
}
