package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	loggerpkg "github.com/hitesh22rana/esmigrate/internal/pkg/logger"
)

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	ctx := loggerpkg.WithLogger(t.Context(), logger)
	loggerpkg.FromContext(ctx).Info("applied", zap.String("target", "users"))

	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "users", logs.All()[0].ContextMap()["target"])
}

func TestFromContext_Missing(t *testing.T) {
	logger := loggerpkg.FromContext(context.Background())
	assert.NotNil(t, logger)

	ctx, initialized := loggerpkg.Init(t.Context(), "test", nil)
	assert.Same(t, initialized, loggerpkg.FromContext(ctx))
}
