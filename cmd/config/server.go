package config

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Recipe-Share-Backend/pkg/log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Run serves app on addr until ctx is cancelled or the process receives SIGINT/SIGTERM,
// then shuts the server down gracefully.
func Run(ctx context.Context, app *fiber.App, addr string) error {
	eg, groupCtx := errgroup.WithContext(ctx)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)
	defer signal.Stop(sig)

	log.L.Info("server starting", zap.String("addr", addr))

	eg.Go(func() error {
		return app.Listen(addr)
	})

	eg.Go(func() error {
		defer func() {
			log.L.Info("server stopping")
			timeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := app.ShutdownWithContext(timeCtx); err != nil {
				log.L.Warn("server shutdown", zap.Error(err))
			}
		}()

		select {
		case <-groupCtx.Done():
			return groupCtx.Err()
		case s := <-sig:
			log.L.Info("signal received", zap.String("signal", s.String()))
			return nil
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.L.Info("server stopped")
	return nil
}
