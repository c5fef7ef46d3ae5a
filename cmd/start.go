package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"content-forge/core/loader"
	"content-forge/core/logger"
	"content-forge/core/middleware/auth"
	"content-forge/core/middleware/rayid"
	"content-forge/feature/characters"
	"content-forge/feature/generation"
	"content-forge/feature/items"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the content forge service",
	Long: `Runs the pre-start pipeline (when pipeline.run_on_start is set), then serves the HTTP API
and consumes generation jobs according to server.role (all, api, worker).`,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	logg := a.logger.With(zap.String("role", a.cfg.Server.Role))

	if a.cfg.Pipeline.RunOnStart {
		if err := a.service.RunPrestart(ctx); err != nil {
			return fmt.Errorf("pre-start pipeline: %w", err)
		}
	}

	var wg sync.WaitGroup
	if a.cfg.Server.RunsWorker() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.consumer().Run(ctx)
		}()
	}

	var app *fiber.App
	if a.cfg.Server.ServesAPI() {
		app = fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every later log line carries it
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})
		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		mgr := loader.NewManager(logg)
		mgr.Register(items.NewFeature(a.itemPlanner, logg))
		mgr.Register(characters.NewFeature(a.characterPlanner, logg))
		mgr.Register(generation.NewFeature(a.service))
		if err := mgr.LoadAll(app); err != nil {
			stop()
			wg.Wait()
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := app.Listen(":" + a.cfg.Server.Port); err != nil {
				logg.Error("Server stopped", zap.Error(err))
				stop()
			}
		}()
	}

	<-ctx.Done()
	logg.Info("Shutting down...")

	if app != nil {
		if err := app.ShutdownWithTimeout(a.cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}
	}
	wg.Wait()
	return nil
}
