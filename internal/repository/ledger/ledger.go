//go:generate mockgen -source=$GOFILE -package=$GOPACKAGE -destination=./mock/$GOFILE

package ledger

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"

	"github.com/hitesh22rana/esmigrate/internal/config"
	migrationsmodel "github.com/hitesh22rana/esmigrate/internal/model/migrations"
	errorspkg "github.com/hitesh22rana/esmigrate/internal/pkg/errors"
	svcpkg "github.com/hitesh22rana/esmigrate/internal/pkg/svc"
)

// Engine is the document capability the ledger is stored through.
type Engine interface {
	GetDocument(ctx context.Context, index, docType, id string) (json.RawMessage, error)
	PutDocument(ctx context.Context, index, docType, id string, body any) error
}

// Config holds the ledger repository configuration.
type Config struct {
	// Settings are the ledger's own overrides (index, type).
	Settings config.Settings
	// Connector are the connection-wide defaults.
	Connector config.Settings
	// Catalog is the closed set of migration kinds records are rebuilt from.
	Catalog *migrationsmodel.Catalog
}

// Repository reads and writes migration ledgers, one document per logical target.
type Repository struct {
	tp      trace.Tracer
	index   string
	docType string
	catalog *migrationsmodel.Catalog
	engine  Engine
}

// document is the persisted shape of a ledger.
type document struct {
	Target     string   `json:"target"`
	Migrations []record `json:"migrations"`
}

type record struct {
	Kind       string    `json:"kind"`
	ExecutedAt time.Time `json:"executedAt"`
}

// New creates a new ledger repository.
func New(cfg *Config, engine Engine) (*Repository, error) {
	index, err := config.Resolve(config.KeyIndex, cfg.Settings, cfg.Connector)
	if err != nil {
		return nil, err
	}

	docType, err := config.Resolve(config.KeyDocumentType, cfg.Settings, cfg.Connector)
	if err != nil {
		return nil, err
	}

	if cfg.Catalog == nil {
		return nil, errorspkg.New(errorspkg.ErrMissingConfiguration, codes.InvalidArgument, "ledger requires a migration catalog")
	}

	return &Repository{
		tp:      otel.Tracer(svcpkg.Info().GetName()),
		index:   index,
		docType: docType,
		catalog: cfg.Catalog,
		engine:  engine,
	}, nil
}

// Index returns the index ledgers are stored in.
func (r *Repository) Index() string {
	return r.index
}

// Read returns the ledger of target with its migrations sorted by version.
// A target that was never written yields an empty ledger.
func (r *Repository) Read(ctx context.Context, target string) (ledger *migrationsmodel.Ledger, err error) {
	ctx, span := r.tp.Start(ctx, "Repository.Read")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	source, err := r.engine.GetDocument(ctx, r.index, r.docType, target)
	if err != nil {
		if errorspkg.IsNotFound(err) {
			return migrationsmodel.NewLedger(target), nil
		}

		err = errorspkg.Wrap(errorspkg.ErrLedgerRead, codes.Internal, err, "target %s", target)
		return nil, err
	}

	var doc document
	if err = json.Unmarshal(source, &doc); err != nil {
		err = errorspkg.Wrap(errorspkg.ErrLedgerRead, codes.Internal, err, "decode target %s", target)
		return nil, err
	}

	ledger = migrationsmodel.NewLedger(target)
	for _, m := range doc.Migrations {
		rec, recErr := r.catalog.NewRecord(migrationsmodel.Kind(m.Kind), m.ExecutedAt)
		if recErr != nil {
			err = errorspkg.Wrap(errorspkg.ErrLedgerRead, codes.Internal, recErr, "target %s", target)
			return nil, err
		}
		ledger.Append(rec)
	}

	if sortErr := migrationsmodel.SortByVersion(ledger.Migrations); sortErr != nil {
		err = errorspkg.Wrap(errorspkg.ErrLedgerRead, codes.Internal, sortErr, "target %s", target)
		return nil, err
	}

	return ledger, nil
}

// Write replaces the stored ledger of target with ledger (last write wins).
func (r *Repository) Write(ctx context.Context, target string, ledger *migrationsmodel.Ledger) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.Write")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	doc := document{
		Target:     target,
		Migrations: make([]record, 0, len(ledger.Migrations)),
	}
	for _, m := range ledger.Migrations {
		doc.Migrations = append(doc.Migrations, record{
			Kind:       m.Kind.ToString(),
			ExecutedAt: m.ExecutedAt,
		})
	}

	if putErr := r.engine.PutDocument(ctx, r.index, r.docType, target, doc); putErr != nil {
		err = errorspkg.Wrap(errorspkg.ErrLedgerWrite, codes.Internal, putErr, "target %s", target)
		return err
	}

	return nil
}
