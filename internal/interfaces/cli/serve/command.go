package serve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"transferdesk/internal/interfaces/cli/bootstrap"
	httpRouter "transferdesk/internal/interfaces/http"
	"transferdesk/internal/shared/goroutine"
)

var configDir string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local portal",
		Long:  `Serve the TransferDesk portal on the configured local address. Session rehydration starts in the background; guarded routes answer with a loading page until it settles.`,
		RunE:  run,
	}

	cmd.Flags().StringVar(&configDir, "config", "", "Config directory")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.Setup(configDir)
	if err != nil {
		return err
	}
	defer app.Close()

	gin.SetMode(app.Config.Portal.Mode)
	gin.DefaultWriter = io.Discard

	router := httpRouter.NewRouter(app.Store, app.Logger.Named("portal"))
	router.SetupRoutes()

	// Rehydration runs alongside the server; the guard keeps protected
	// routes behind the loading state until it settles.
	goroutine.SafeGo(app.Logger, "session-rehydration", func() {
		if err := app.Store.Initialize(context.Background()); err != nil {
			app.Logger.Errorw("session rehydration failed", "error", err)
		}
	})

	srv := &http.Server{
		Addr:         app.Config.Portal.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		app.Logger.Infow("portal starting", "address", app.Config.Portal.GetAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Errorw("portal failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info("shutting down portal")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("portal forced to shutdown: %w", err)
	}

	app.Logger.Info("portal exited gracefully")
	return nil
}
