package svc

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	loggerpkg "github.com/hitesh22rana/esmigrate/internal/pkg/logger"
	otelpkg "github.com/hitesh22rana/esmigrate/internal/pkg/otel"
)

const shutdownTimeout = 5 * time.Second

// Init initializes telemetry and the logger for the service.
// The returned context carries the logger; cancel flushes and shuts everything down.
func Init() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	providers := &otelpkg.Providers{}
	if os.Getenv("OTEL_SDK_DISABLED") != "true" {
		var err error
		if providers, err = otelpkg.Init(ctx, svc.Name, svc.Version); err != nil {
			fmt.Fprintln(os.Stderr, "telemetry partially initialized:", err)
		}
	}

	ctx, logger := loggerpkg.Init(ctx, svc.Name, providers.Logger)

	return ctx, func() {
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to shutdown telemetry providers", zap.Error(err))
		}

		//nolint:errcheck // stdout sync errors are not actionable
		logger.Sync()
	}
}
