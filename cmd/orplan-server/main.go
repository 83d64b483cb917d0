package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/orplan/orplan/internal/config"
	"github.com/orplan/orplan/internal/domain/assignment"
	"github.com/orplan/orplan/internal/domain/bulkimport"
	"github.com/orplan/orplan/internal/domain/daysheet"
	"github.com/orplan/orplan/internal/domain/patient"
	"github.com/orplan/orplan/internal/domain/room"
	"github.com/orplan/orplan/internal/domain/schedule"
	"github.com/orplan/orplan/internal/domain/staffpool"
	"github.com/orplan/orplan/internal/domain/surgery"
	"github.com/orplan/orplan/internal/platform/db"
	"github.com/orplan/orplan/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orplan-server",
		Short: "OR scheduling and resource planning server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduling API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout()))
	e.Use(middleware.BodyLimit("1M", "8M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Domain wiring
	roomSvc := room.NewService(room.NewRepoPG(pool))
	room.NewHandler(roomSvc).RegisterRoutes(apiV1)

	patientSvc := patient.NewService(patient.NewRepoPG(pool))

	surgerySvc := surgery.NewService(surgery.NewRepoPG(pool))
	surgery.NewHandler(surgerySvc).RegisterRoutes(apiV1)

	scheduleSvc := schedule.NewService(surgerySvc, cfg.DefaultDuration())
	schedule.NewHandler(scheduleSvc).RegisterRoutes(apiV1)

	staffSvc := staffpool.NewService(staffpool.NewUserRepoPG(pool), staffpool.NewPoolRepoPG(pool))
	staffpool.NewHandler(staffSvc).RegisterRoutes(apiV1)

	assignSvc := assignment.NewService(assignment.NewRoomRepoPG(pool), assignment.NewSurgeryRepoPG(pool))
	assignment.NewHandler(assignSvc).RegisterRoutes(apiV1)

	renderer, err := daysheet.NewHTMLRenderer()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build day sheet renderer")
	}
	sheetSvc := daysheet.NewService(surgerySvc, roomSvc, patientSvc, assignSvc, staffSvc, renderer, cfg.DaySheetRowsPage)
	daysheet.NewHandler(sheetSvc).RegisterRoutes(apiV1)

	importSvc := bulkimport.NewService(patientSvc, surgerySvc, staffSvc, cfg.ImportDefaultDuration(), logger)
	bulkimport.NewHandler(importSvc).RegisterRoutes(apiV1)

	// Background window refresh keeps the reconciler in step with other
	// users' edits. The poller follows whichever window was fetched last.
	pollCtx, pollCancel := context.WithCancel(ctx)
	defer pollCancel()
	poller := schedule.NewPoller(surgerySvc, scheduleSvc.Reconciler(), scheduleSvc.ActiveWindow, cfg.PollInterval(), logger)
	go poller.Run(pollCtx)

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info().Msg("shutting down")
		pollCancel()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("forced shutdown")
		}
	}()

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server error")
	}
	return nil
}
