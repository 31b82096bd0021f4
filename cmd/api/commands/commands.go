package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/internal/adapters/graphql"
	"github.com/taskmaster/planner/internal/adapters/repository"
	"github.com/taskmaster/planner/internal/application/services"
	"github.com/taskmaster/planner/internal/domain/calendar"
	"github.com/taskmaster/planner/internal/infrastructure/config"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/infrastructure/server"
)

// Build information, overridden with -ldflags at release time
var (
	Version   = "1.0.0"
	BuildDate = "unknown"
	GitCommit = "development"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Planner GraphQL server",
		Long:  "Start the Planner GraphQL server backed by an in-memory task store seeded with mock data",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewCalendarCommand creates the calendar command
func NewCalendarCommand() *cobra.Command {
	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a month of seeded tasks",
		Long:  "Seed a task store the same way the server does and print a month grid with the number of tasks per day",
		RunE: func(cmd *cobra.Command, args []string) error {
			month, _ := cmd.Flags().GetInt("month")
			year, _ := cmd.Flags().GetInt("year")
			return runCalendar(cmd, month, year)
		},
	}

	calendarCmd.Flags().Int("month", 0, "Month to print (1-12, defaults to the current month)")
	calendarCmd.Flags().Int("year", 0, "Year to print (defaults to the current year)")

	return calendarCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Planner version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Planner v%s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Build Date: %s\n", BuildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	ctx := context.Background()
	index := repository.NewTaskIndex()

	if err := seedIndex(ctx, cfg, index, calendar.SystemClock{}, appLogger); err != nil {
		appLogger.WithError(err).Fatal("Failed to seed tasks")
	}

	taskService := services.NewTaskService(index, calendar.SystemClock{}, appLogger)

	schema, err := graphql.NewSchema(taskService)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to build GraphQL schema")
	}

	srv, err := server.New(cfg, schema, index, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting Planner server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"tasks", index.Count(ctx),
	)

	go func() {
		if err := srv.Start(cfg.Server.GetAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalw("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("Server forced to shutdown", "error", err)
	}
}

func runCalendar(cmd *cobra.Command, month, year int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	clock := calendar.SystemClock{}
	index := repository.NewTaskIndex()
	if err := seedIndex(ctx, cfg, index, clock, logger.NewNop()); err != nil {
		return err
	}

	current := calendar.ThisMonth(clock)
	if month == 0 {
		month = current.Month
	}
	if year == 0 {
		year = current.Year
	}

	view, err := index.MonthView(ctx, month, year)
	if err != nil {
		return err
	}

	return RenderMonth(cmd.OutOrStdout(), calendar.NewMonth(month, year), view, calendar.Today(clock))
}

func seedIndex(ctx context.Context, cfg *config.Config, index *repository.TaskIndex, clock calendar.Clock, appLogger *logger.Logger) error {
	seeder := services.NewSeeder(index, clock, cfg.Seed.RandomSeed, cfg.Seed.MaxTasksPerDay, appLogger)

	if cfg.Seed.Enabled {
		if _, err := seeder.Seed(ctx); err != nil {
			return fmt.Errorf("failed to seed tasks: %w", err)
		}
	}

	if cfg.Seed.FixturesFile != "" {
		if _, err := seeder.LoadFixtures(ctx, cfg.Seed.FixturesFile); err != nil {
			return fmt.Errorf("failed to load fixtures: %w", err)
		}
	}

	return nil
}
