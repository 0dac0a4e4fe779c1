//go:generate mockgen -source=$GOFILE -package=$GOPACKAGE -destination=./mock/$GOFILE

package indexmigration

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hitesh22rana/esmigrate/internal/migration"
	migrationsmodel "github.com/hitesh22rana/esmigrate/internal/model/migrations"
	loggerpkg "github.com/hitesh22rana/esmigrate/internal/pkg/logger"
	svcpkg "github.com/hitesh22rana/esmigrate/internal/pkg/svc"
)

const statusConcurrency = 4

// Ledger provides access to the applied migrations of a target.
type Ledger interface {
	Read(ctx context.Context, target string) (*migrationsmodel.Ledger, error)
	Write(ctx context.Context, target string, ledger *migrationsmodel.Ledger) error
}

// Locker serializes runs against the same target.
type Locker interface {
	Acquire(ctx context.Context, target string) (string, error)
	Extend(ctx context.Context, target, token string) error
	Release(ctx context.Context, target, token string) error
}

// Publisher announces applied migrations.
type Publisher interface {
	PublishMigrationApplied(ctx context.Context, target string, record migrationsmodel.Record) error
}

// Result lists the migrations a run applied to a target.
type Result struct {
	Target  string
	Applied []migrationsmodel.Kind
}

// Status describes the migration state of a target.
type Status struct {
	Target  string
	Applied []migrationsmodel.Record
	Pending []migrationsmodel.Kind
}

// Option configures the service.
type Option func(*Service)

// WithClock overrides the clock used to timestamp applied migrations.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service applies pending index migrations, target by target.
type Service struct {
	tp        trace.Tracer
	applied   metric.Int64Counter
	validator *validator.Validate
	set       *migration.Set
	ops       migration.Operations
	ledger    Ledger
	locker    Locker
	publisher Publisher
	now       func() time.Time
}

// New creates a new index migration service.
func New(
	validator *validator.Validate,
	set *migration.Set,
	ops migration.Operations,
	ledger Ledger,
	locker Locker,
	publisher Publisher,
	opts ...Option,
) (*Service, error) {
	applied, err := otel.Meter(svcpkg.Info().GetName()).Int64Counter(
		"index_migrations_applied",
		metric.WithDescription("Number of index migrations applied and recorded in a ledger."),
	)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to create counter: %v", err)
	}

	s := &Service{
		tp:        otel.Tracer(svcpkg.Info().GetName()),
		applied:   applied,
		validator: validator,
		set:       set,
		ops:       ops,
		ledger:    ledger,
		locker:    locker,
		publisher: publisher,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// TargetRequest names a single logical target.
type TargetRequest struct {
	Target string `validate:"required"`
}

// Run applies the pending migrations of every target, in target order.
// The first failure stops the run; results of the targets already processed are returned with it.
func (s *Service) Run(ctx context.Context) (results []*Result, err error) {
	ctx, span := s.tp.Start(ctx, "Service.Run")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	for _, target := range s.set.Targets() {
		res, runErr := s.runTarget(ctx, target)
		results = append(results, res)
		if runErr != nil {
			err = runErr
			return results, err
		}
	}

	return results, nil
}

// RunTarget applies the pending migrations of a single target.
func (s *Service) RunTarget(ctx context.Context, req *TargetRequest) (res *Result, err error) {
	ctx, span := s.tp.Start(ctx, "Service.RunTarget")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	if err = s.validator.Struct(req); err != nil {
		err = status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
		return nil, err
	}

	return s.runTarget(ctx, req.Target)
}

func (s *Service) runTarget(ctx context.Context, target string) (*Result, error) {
	logger := loggerpkg.FromContext(ctx).With(zap.String("target", target))
	res := &Result{Target: target, Applied: []migrationsmodel.Kind{}}

	token, err := s.locker.Acquire(ctx, target)
	if err != nil {
		return res, err
	}
	defer func() {
		if releaseErr := s.locker.Release(context.WithoutCancel(ctx), target, token); releaseErr != nil {
			logger.Warn("failed to release lease", zap.Error(releaseErr))
		}
	}()

	ledger, err := s.ledger.Read(ctx, target)
	if err != nil {
		return res, err
	}

	pending := s.set.Pending(ledger)
	if len(pending) == 0 {
		logger.Info("no pending migrations")
		return res, nil
	}

	for i, m := range pending {
		if i > 0 {
			if err := s.locker.Extend(ctx, target, token); err != nil {
				logger.Error("failed to extend lease", zap.Error(err))
				return res, err
			}
		}

		logger.Info("applying migration", zap.String("kind", m.Kind.ToString()), zap.Int("steps", len(m.Steps)))

		if err := m.Apply(ctx, s.ops); err != nil {
			logger.Error("migration failed", zap.String("kind", m.Kind.ToString()), zap.Error(err))
			return res, err
		}

		record, err := s.set.Catalog().NewRecord(m.Kind, s.now().UTC())
		if err != nil {
			return res, err
		}

		ledger.Append(record)
		if err := s.ledger.Write(ctx, target, ledger); err != nil {
			logger.Error("failed to record migration", zap.String("kind", m.Kind.ToString()), zap.Error(err))
			return res, err
		}
		res.Applied = append(res.Applied, m.Kind)

		if err := s.publisher.PublishMigrationApplied(ctx, target, record); err != nil {
			logger.Warn("failed to publish migration event", zap.String("kind", m.Kind.ToString()), zap.Error(err))
		}

		s.applied.Add(ctx, 1, metric.WithAttributes(attribute.String("target", target)))
		logger.Info("migration applied", zap.String("kind", m.Kind.ToString()))
	}

	return res, nil
}

// Status returns the applied and pending migrations of a target.
func (s *Service) Status(ctx context.Context, req *TargetRequest) (res *Status, err error) {
	ctx, span := s.tp.Start(ctx, "Service.Status")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	if err = s.validator.Struct(req); err != nil {
		err = status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
		return nil, err
	}

	return s.status(ctx, req.Target)
}

// StatusAll returns the status of every target, in target order.
func (s *Service) StatusAll(ctx context.Context) (res []*Status, err error) {
	ctx, span := s.tp.Start(ctx, "Service.StatusAll")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	targets := s.set.Targets()
	res = make([]*Status, len(targets))

	eg, groupCtx := errgroup.WithContext(ctx)
	eg.SetLimit(statusConcurrency)
	for i, target := range targets {
		eg.Go(func() error {
			st, statusErr := s.status(groupCtx, target)
			if statusErr != nil {
				return statusErr
			}
			res[i] = st
			return nil
		})
	}

	if err = eg.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Service) status(ctx context.Context, target string) (*Status, error) {
	ledger, err := s.ledger.Read(ctx, target)
	if err != nil {
		return nil, err
	}

	pending := []migrationsmodel.Kind{}
	for _, m := range s.set.Pending(ledger) {
		pending = append(pending, m.Kind)
	}

	return &Status{
		Target:  target,
		Applied: ledger.Migrations,
		Pending: pending,
	}, nil
}
