package cli

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/terraincognita07/paycharts/internal/api"
	"github.com/terraincognita07/paycharts/internal/config"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart rendering API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := resolveSettings()
			if err != nil {
				return err
			}
			return serve(settings)
		},
	}
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "paycharts",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)
	return app
}

func serve(settings *config.Settings) error {
	handler := api.NewHandler(settings)
	defer handler.Close()
	app := newApp(handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	handler.Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("paycharts listening on http://0.0.0.0:%s (config: %s, default chart: %s)", settings.Port, settings.Path, settings.DefaultKind)
	return app.Listen(":" + settings.Port)
}
