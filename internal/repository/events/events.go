//go:generate mockgen -source=$GOFILE -package=$GOPACKAGE -destination=./mock/$GOFILE

package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	migrationsmodel "github.com/hitesh22rana/esmigrate/internal/model/migrations"
	loggerpkg "github.com/hitesh22rana/esmigrate/internal/pkg/logger"
	svcpkg "github.com/hitesh22rana/esmigrate/internal/pkg/svc"
)

// Producer produces records synchronously; *kgo.Client satisfies it.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Config represents the events repository configuration.
type Config struct {
	ProducerTopic string
}

// Repository publishes migration events to Kafka.
type Repository struct {
	tp  trace.Tracer
	cfg *Config
	kfk Producer
}

// New creates a new events repository.
func New(cfg *Config, kfk Producer) *Repository {
	return &Repository{
		tp:  otel.Tracer(svcpkg.Info().GetName()),
		cfg: cfg,
		kfk: kfk,
	}
}

// PublishMigrationApplied publishes that record was applied to target, keyed by target.
func (r *Repository) PublishMigrationApplied(ctx context.Context, target string, record migrationsmodel.Record) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.PublishMigrationApplied")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	//nolint:errcheck // We don't expect an error here
	eventBytes, _ := json.Marshal(&migrationsmodel.MigrationAppliedEvent{
		Target:     target,
		Kind:       record.Kind,
		Version:    record.Version,
		ExecutedAt: record.ExecutedAt,
	})

	kr := &kgo.Record{
		Topic: r.cfg.ProducerTopic,
		Key:   []byte(target),
		Value: eventBytes,
	}
	if err = r.kfk.ProduceSync(ctx, kr).FirstErr(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			err = status.Error(codes.DeadlineExceeded, err.Error())
			return err
		}

		err = status.Errorf(codes.Internal, "failed to publish migration event to kafka: %v", err)
		return err
	}

	loggerpkg.FromContext(ctx).Debug("migration event published",
		zap.String("target", target),
		zap.String("kind", record.Kind.ToString()),
	)
	return nil
}

// Noop discards events.
type Noop struct{}

// PublishMigrationApplied does nothing.
func (Noop) PublishMigrationApplied(context.Context, string, migrationsmodel.Record) error {
	return nil
}
