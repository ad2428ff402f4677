// Package bootstrap assembles the console's collaborators: config,
// logger, credential vault and session store, in that order.
package bootstrap

import (
	"fmt"
	"io"

	"transferdesk/internal/application/session"
	"transferdesk/internal/infrastructure/config"
	"transferdesk/internal/infrastructure/credentials"
	"transferdesk/internal/shared/logger"
)

// App holds the wired application pieces shared by every command.
type App struct {
	Config *config.Config
	Store  *session.Store
	Logger logger.Interface

	closers []io.Closer
}

// Setup loads configuration, initializes logging, and wires the session
// store with its credential vault. configDir may be empty.
func Setup(configDir string) (*App, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	durable, err := credentials.NewDurableStore(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open durable credential store: %w", err)
	}

	app := &App{
		Config: cfg,
		Logger: logger.NewLogger(),
	}
	if closer, ok := durable.(io.Closer); ok {
		app.closers = append(app.closers, closer)
	}

	vault := credentials.NewVault(durable, credentials.NewEphemeralFileStore(), app.Logger.Named("credentials"))
	app.Store = session.NewStore(&cfg.API, vault, session.WithLogger(app.Logger.Named("session")))

	return app, nil
}

// Close releases everything Setup opened.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
