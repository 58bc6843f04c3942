package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/c14220110/poliklinik-triage/config"
	"github.com/c14220110/poliklinik-triage/internal/common/middlewares"
	"github.com/c14220110/poliklinik-triage/internal/console"
	"github.com/c14220110/poliklinik-triage/internal/routes"
	"github.com/c14220110/poliklinik-triage/internal/triage/controllers"
	"github.com/c14220110/poliklinik-triage/pkg/logger"
	"github.com/c14220110/poliklinik-triage/ws"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "poliklinik-triage",
		Short:        "Clinic triage engine: waiting room, departments and doctor queues",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(consoleCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the triage HTTP API, live feed and metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func consoleCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Run the interactive front desk menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd.InOrStdin(), cmd.OutOrStdout(), verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every operation to stderr")
	return cmd
}

func runServer() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel, os.Stdout)
	if w := config.Warning(); w != "" {
		log.Warn().Msg(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	svc, cleanup, err := wire(ctx, cfg, log, hub)
	if err != nil {
		log.Error().Err(err).Msg("failed to wire triage service")
		return err
	}
	defer cleanup()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewares.Recovery(log))
	e.Use(middlewares.RequestID())
	e.Use(middlewares.Logger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.WSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, middlewares.RequestIDHeader},
	}))

	routes.Init(e, cfg, controllers.NewTriageController(svc), hub, svc.Metrics())

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func runConsole(in io.Reader, out io.Writer, verbose bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel, os.Stderr)
	if !verbose {
		log = log.Level(zerolog.WarnLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := wire(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	return console.New(svc, in, out).Run(ctx)
}
