package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/renoplan/renoplan/internal/cli"
	"github.com/renoplan/renoplan/internal/db"
	"github.com/renoplan/renoplan/internal/repository"
	"github.com/renoplan/renoplan/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local overrides; absence is not an error.
	_ = godotenv.Load()

	// Determine DB path: env var or default ~/.renoplan/renoplan.db
	dbPath := os.Getenv("RENOPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".renoplan", "renoplan.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	templateRepo := repository.NewSQLiteTemplateRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	packageRepo := repository.NewSQLitePackageRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	gateRepo := repository.NewSQLiteGateRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	planRepo := repository.NewSQLiteProjectPlanRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case telemetry goes to stderr when RENOPLAN_LOG is set.
	var logWriter io.Writer
	if os.Getenv("RENOPLAN_LOG") != "" {
		logWriter = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(logWriter)

	templateSvc := service.NewTemplateService(templateRepo, phaseRepo, packageRepo, taskRepo, depRepo, gateRepo, uow, observer)

	app := &cli.App{
		Templates: templateSvc,
		Apply:     service.NewApplyService(templateSvc, projectRepo, uow, observer),
		Projects:  service.NewProjectService(projectRepo, planRepo),
	}

	// Detect interactive terminal for the apply wizard.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
