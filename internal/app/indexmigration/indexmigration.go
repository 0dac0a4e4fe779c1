//go:generate mockgen -source=$GOFILE -package=$GOPACKAGE -destination=./mock/$GOFILE

package indexmigration

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	loggerpkg "github.com/hitesh22rana/esmigrate/internal/pkg/logger"
	indexmigrationsvc "github.com/hitesh22rana/esmigrate/internal/service/indexmigration"
)

// Modes supported by the job.
const (
	ModeRun    = "run"
	ModeStatus = "status"
)

// Service provides index migration related operations.
type Service interface {
	Run(ctx context.Context) ([]*indexmigrationsvc.Result, error)
	RunTarget(ctx context.Context, req *indexmigrationsvc.TargetRequest) (*indexmigrationsvc.Result, error)
	Status(ctx context.Context, req *indexmigrationsvc.TargetRequest) (*indexmigrationsvc.Status, error)
	StatusAll(ctx context.Context) ([]*indexmigrationsvc.Status, error)
}

// Config represents the index migration job configuration.
type Config struct {
	Mode   string
	Target string
}

// IndexMigration represents the index migration job.
type IndexMigration struct {
	logger *zap.Logger
	cfg    *Config
	svc    Service
}

// New creates a new index migration job.
func New(ctx context.Context, cfg *Config, svc Service) *IndexMigration {
	return &IndexMigration{
		logger: loggerpkg.FromContext(ctx),
		cfg:    cfg,
		svc:    svc,
	}
}

// Run starts the index migration job.
func (im *IndexMigration) Run(ctx context.Context) error {
	var err error
	switch im.cfg.Mode {
	case ModeRun:
		err = im.migrate(ctx)
	case ModeStatus:
		err = im.status(ctx)
	default:
		err = status.Errorf(codes.InvalidArgument, "unknown mode %q", im.cfg.Mode)
	}

	if err != nil {
		im.logger.Error("error occurred while running the index migration job", zap.Error(err))
	} else {
		im.logger.Info("successfully exited the index migration job")
	}

	return err
}

func (im *IndexMigration) migrate(ctx context.Context) error {
	if im.cfg.Target != "" {
		res, err := im.svc.RunTarget(ctx, &indexmigrationsvc.TargetRequest{Target: im.cfg.Target})
		if res != nil {
			im.logResult(res)
		}
		return err
	}

	results, err := im.svc.Run(ctx)
	for _, res := range results {
		im.logResult(res)
	}
	return err
}

func (im *IndexMigration) logResult(res *indexmigrationsvc.Result) {
	kinds := make([]string, 0, len(res.Applied))
	for _, kind := range res.Applied {
		kinds = append(kinds, kind.ToString())
	}

	im.logger.Info("target migrated",
		zap.String("target", res.Target),
		zap.Strings("applied", kinds),
	)
}

func (im *IndexMigration) status(ctx context.Context) error {
	var statuses []*indexmigrationsvc.Status
	if im.cfg.Target != "" {
		st, err := im.svc.Status(ctx, &indexmigrationsvc.TargetRequest{Target: im.cfg.Target})
		if err != nil {
			return err
		}
		statuses = append(statuses, st)
	} else {
		var err error
		if statuses, err = im.svc.StatusAll(ctx); err != nil {
			return err
		}
	}

	for _, st := range statuses {
		applied := make([]string, 0, len(st.Applied))
		for _, rec := range st.Applied {
			applied = append(applied, rec.Kind.ToString())
		}
		pending := make([]string, 0, len(st.Pending))
		for _, kind := range st.Pending {
			pending = append(pending, kind.ToString())
		}

		im.logger.Info("target status",
			zap.String("target", st.Target),
			zap.Strings("applied", applied),
			zap.Strings("pending", pending),
		)
	}

	return nil
}
