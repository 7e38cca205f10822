package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.alis.build/alog"
)

const ExitCodeMainError = 1

const shutdownTimeout = 5 * time.Second

// RunApp serves the API until ctx is cancelled, then shuts the server down gracefully
func RunApp(ctx context.Context, config Config) error {
	gin.SetMode(gin.ReleaseMode)

	serviceContainer, err := BuildServiceContainer(config, WallClock{})
	if err != nil {
		return fmt.Errorf("open database %s: %w", config.DatabaseFilepath, err)
	}
	defer serviceContainer.Database.Close()

	if err = serviceContainer.SheetRepository.Load(ctx); err != nil {
		return err
	}

	serviceContainer.WebhookDispatcher.Start()
	defer serviceContainer.WebhookDispatcher.Close()

	if config.RecalculateInterval > 0 {
		go runRecalculation(ctx, serviceContainer.SheetRepository, config.RecalculateInterval)
	}

	server := &http.Server{
		Addr:    config.ListenAddr,
		Handler: serviceContainer.Router,
	}

	serveErr := make(chan error, 1)
	go func() {
		alog.Noticef(ctx, "listening on %s", config.ListenAddr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	alog.Notice(shutdownCtx, "shutting down")
	if err = server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err = <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runRecalculation(ctx context.Context, sheetRepository *SheetRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sheetRepository.Recalculate(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func HandleExitError(errStream io.Writer, err error) int {
	if err != nil {
		_, _ = fmt.Fprintln(errStream, err)
		return ExitCodeMainError
	}

	return 0
}
