//go:generate mockgen -source=$GOFILE -package=$GOPACKAGE -destination=./mock/$GOFILE

package indexlifecycle

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"

	indicesmodel "github.com/hitesh22rana/esmigrate/internal/model/indices"
	elasticsearchpkg "github.com/hitesh22rana/esmigrate/internal/pkg/elasticsearch"
	errorspkg "github.com/hitesh22rana/esmigrate/internal/pkg/errors"
	loggerpkg "github.com/hitesh22rana/esmigrate/internal/pkg/logger"
	svcpkg "github.com/hitesh22rana/esmigrate/internal/pkg/svc"
)

// Engine is the index administration capability the lifecycle operations are built on.
type Engine interface {
	IndexExists(ctx context.Context, index string) (bool, error)
	CreateIndex(ctx context.Context, index string, body map[string]any) error
	DeleteIndex(ctx context.Context, index string) error
	GetIndexSettings(ctx context.Context, index string) (indicesmodel.Settings, error)
	GetIndexMapping(ctx context.Context, index string) (indicesmodel.Mappings, error)
	PutMapping(ctx context.Context, index, docType string, body map[string]any) error
	GetAlias(ctx context.Context, alias string) ([]string, error)
	UpdateAliases(ctx context.Context, actions []elasticsearchpkg.AliasAction) error
	Reindex(ctx context.Context, source, dest string, versionType elasticsearchpkg.VersionType) error
}

// Repository provides index and alias lifecycle operations.
// Existence checks are not atomic with the mutation that follows them;
// concurrent runs against the same names must be serialized by the caller.
type Repository struct {
	tp     trace.Tracer
	engine Engine
}

// New creates a new index lifecycle repository.
func New(engine Engine) *Repository {
	return &Repository{
		tp:     otel.Tracer(svcpkg.Info().GetName()),
		engine: engine,
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		span.RecordError(err)
	}
	span.End()
}

// CreateIndex creates index with the given settings and mappings body.
func (r *Repository) CreateIndex(ctx context.Context, index string, body map[string]any) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.CreateIndex")
	defer func() { endSpan(span, err) }()

	return r.createIndex(ctx, index, body)
}

func (r *Repository) createIndex(ctx context.Context, index string, body map[string]any) error {
	exists, err := r.engine.IndexExists(ctx, index)
	if err != nil {
		return err
	}
	if exists {
		return errorspkg.New(errorspkg.ErrAlreadyExists, codes.AlreadyExists, "index %s", index)
	}

	if err := r.engine.CreateIndex(ctx, index, body); err != nil {
		return err
	}

	loggerpkg.FromContext(ctx).Info("index created", zap.String("index", index))
	return nil
}

// CreateAlias binds alias to index without looking at existing bindings.
// Use ReassignAlias when the alias may already be bound.
func (r *Repository) CreateAlias(ctx context.Context, index, alias string) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.CreateAlias")
	defer func() { endSpan(span, err) }()

	if err = r.engine.UpdateAliases(ctx, []elasticsearchpkg.AliasAction{
		elasticsearchpkg.AddAlias(index, alias),
	}); err != nil {
		return err
	}

	loggerpkg.FromContext(ctx).Info("alias created", zap.String("index", index), zap.String("alias", alias))
	return nil
}

// ReassignAlias moves alias from the single index it is bound to onto index.
// Both actions are sent in one request, so readers never see the alias unbound or doubly bound.
func (r *Repository) ReassignAlias(ctx context.Context, index, alias string) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.ReassignAlias")
	defer func() { endSpan(span, err) }()

	bound, err := r.getIndicesWithAlias(ctx, alias)
	if err != nil {
		return err
	}
	if len(bound) != 1 {
		err = errorspkg.New(errorspkg.ErrAmbiguousAlias, codes.FailedPrecondition,
			"alias %s is bound to %d indices %v", alias, len(bound), bound)
		return err
	}

	if err = r.engine.UpdateAliases(ctx, []elasticsearchpkg.AliasAction{
		elasticsearchpkg.RemoveAlias(bound[0], alias),
		elasticsearchpkg.AddAlias(index, alias),
	}); err != nil {
		return err
	}

	loggerpkg.FromContext(ctx).Info("alias reassigned",
		zap.String("alias", alias),
		zap.String("from", bound[0]),
		zap.String("to", index),
	)
	return nil
}

// DeleteIndex deletes index, failing with ErrNotFound if it does not exist.
func (r *Repository) DeleteIndex(ctx context.Context, index string) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.DeleteIndex")
	defer func() { endSpan(span, err) }()

	exists, err := r.engine.IndexExists(ctx, index)
	if err != nil {
		return err
	}
	if !exists {
		err = errorspkg.New(errorspkg.ErrNotFound, codes.NotFound, "index %s", index)
		return err
	}

	if err = r.engine.DeleteIndex(ctx, index); err != nil {
		return err
	}

	loggerpkg.FromContext(ctx).Info("index deleted", zap.String("index", index))
	return nil
}

// PutMappings applies one put-mapping call per document type, in type order.
// It stops at the first failure; types already applied stay applied.
func (r *Repository) PutMappings(ctx context.Context, index string, mappings indicesmodel.Mappings) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.PutMappings")
	defer func() { endSpan(span, err) }()

	types := mappings.Types()
	slices.Sort(types)

	for _, docType := range types {
		if err = r.engine.PutMapping(ctx, index, docType, mappings[docType]); err != nil {
			return err
		}
	}

	loggerpkg.FromContext(ctx).Info("mappings applied", zap.String("index", index), zap.Strings("types", types))
	return nil
}

// ReindexWithMappings creates dest from source's sanitized settings and its mappings merged
// with overrides, then copies every document keeping source versions.
// A dest created before a later failure is left in place.
func (r *Repository) ReindexWithMappings(ctx context.Context, source, dest string, overrides indicesmodel.Mappings) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.ReindexWithMappings")
	defer func() { endSpan(span, err) }()

	settings, err := r.engine.GetIndexSettings(ctx, source)
	if err != nil {
		return err
	}

	mappings, err := r.engine.GetIndexMapping(ctx, source)
	if err != nil {
		return err
	}

	body := indicesmodel.CreateBody(settings.Sanitize(), mappings.Merge(overrides))
	if err = r.createIndex(ctx, dest, body); err != nil {
		return err
	}

	logger := loggerpkg.FromContext(ctx)
	logger.Info("reindex started", zap.String("source", source), zap.String("dest", dest))

	if err = r.engine.Reindex(ctx, source, dest, elasticsearchpkg.VersionTypeExternal); err != nil {
		return err
	}

	logger.Info("reindex completed", zap.String("source", source), zap.String("dest", dest))
	return nil
}

// GetIndicesWithAlias returns the indices bound to alias; an unknown alias yields none.
func (r *Repository) GetIndicesWithAlias(ctx context.Context, alias string) (indices []string, err error) {
	ctx, span := r.tp.Start(ctx, "Repository.GetIndicesWithAlias")
	defer func() { endSpan(span, err) }()

	return r.getIndicesWithAlias(ctx, alias)
}

func (r *Repository) getIndicesWithAlias(ctx context.Context, alias string) ([]string, error) {
	indices, err := r.engine.GetAlias(ctx, alias)
	if err != nil {
		if errorspkg.IsNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}

	return indices, nil
}
