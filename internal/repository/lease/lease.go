package lease

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	errorspkg "github.com/hitesh22rana/esmigrate/internal/pkg/errors"
	loggerpkg "github.com/hitesh22rana/esmigrate/internal/pkg/logger"
	svcpkg "github.com/hitesh22rana/esmigrate/internal/pkg/svc"
)

const (
	keyPrefix   = "index_migration:lease:"
	tokenLength = 24

	// DefaultTTL bounds how long a crashed runner can block a target.
	// The lease is renewed between migrations only, so it must outlast the longest single migration.
	DefaultTTL = 30 * time.Minute
)

// releaseScript deletes the lease only while it is still owned by the caller's token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// extendScript resets the expiry of the lease only while it is still owned by the caller's token.
const extendScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`

// Key returns the Redis key of the lease of target.
func Key(target string) string {
	return keyPrefix + target
}

// Option configures the repository.
type Option func(*Repository)

// WithTTL sets the lease expiry.
func WithTTL(ttl time.Duration) Option {
	return func(r *Repository) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithTokenGenerator overrides how lease tokens are generated.
func WithTokenGenerator(fn func() (string, error)) Option {
	return func(r *Repository) {
		r.token = fn
	}
}

// Repository serializes migration runs per target through a Redis lease.
type Repository struct {
	tp     trace.Tracer
	client redis.Cmdable
	ttl    time.Duration
	token  func() (string, error)
}

// New creates a new lease repository.
func New(client redis.Cmdable, opts ...Option) *Repository {
	r := &Repository{
		tp:     otel.Tracer(svcpkg.Info().GetName()),
		client: client,
		ttl:    DefaultTTL,
		token:  newToken,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func newToken() (string, error) {
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", status.Errorf(codes.Internal, "failed to generate random bytes: %v", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Acquire takes the lease of target and returns the token that owns it.
// It fails with ErrLeaseHeld when another runner owns the lease.
func (r *Repository) Acquire(ctx context.Context, target string) (token string, err error) {
	ctx, span := r.tp.Start(ctx, "Repository.Acquire")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	token, err = r.token()
	if err != nil {
		return "", err
	}

	ok, err := r.client.SetNX(ctx, Key(target), token, r.ttl).Result()
	if err != nil {
		err = status.Errorf(codes.Unavailable, "failed to acquire lease of %s: %v", target, err)
		return "", err
	}
	if !ok {
		err = errorspkg.New(errorspkg.ErrLeaseHeld, codes.Aborted, "target %s", target)
		return "", err
	}

	loggerpkg.FromContext(ctx).Info("lease acquired", zap.String("target", target), zap.Duration("ttl", r.ttl))
	return token, nil
}

// Extend renews the lease of target for another TTL if token still owns it.
// It fails with ErrLeaseLost when the lease expired or was taken by another runner.
func (r *Repository) Extend(ctx context.Context, target, token string) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.Extend")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	extended, err := r.client.Eval(ctx, extendScript, []string{Key(target)}, token, r.ttl.Milliseconds()).Int64()
	if err != nil {
		err = status.Errorf(codes.Unavailable, "failed to extend lease of %s: %v", target, err)
		return err
	}

	if extended == 0 {
		err = errorspkg.New(errorspkg.ErrLeaseLost, codes.Aborted, "target %s", target)
		return err
	}

	loggerpkg.FromContext(ctx).Debug("lease extended", zap.String("target", target), zap.Duration("ttl", r.ttl))
	return nil
}

// Release gives the lease of target back if token still owns it.
func (r *Repository) Release(ctx context.Context, target, token string) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.Release")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	deleted, err := r.client.Eval(ctx, releaseScript, []string{Key(target)}, token).Int64()
	if err != nil {
		err = status.Errorf(codes.Unavailable, "failed to release lease of %s: %v", target, err)
		return err
	}

	if deleted == 0 {
		loggerpkg.FromContext(ctx).Warn("lease expired before release", zap.String("target", target))
		return nil
	}

	loggerpkg.FromContext(ctx).Info("lease released", zap.String("target", target))
	return nil
}

// Noop is used when runs are serialized by other means.
type Noop struct{}

// Acquire always succeeds.
func (Noop) Acquire(context.Context, string) (string, error) {
	return "", nil
}

// Extend always succeeds.
func (Noop) Extend(context.Context, string, string) error {
	return nil
}

// Release always succeeds.
func (Noop) Release(context.Context, string, string) error {
	return nil
}
