//go:generate mockgen -source=$GOFILE -package=$GOPACKAGE -destination=./mock/$GOFILE

package migration

import (
	"context"

	indicesmodel "github.com/hitesh22rana/esmigrate/internal/model/indices"
)

// Operations are the index lifecycle procedures a migration step can invoke.
type Operations interface {
	CreateIndex(ctx context.Context, index string, body map[string]any) error
	CreateAlias(ctx context.Context, index, alias string) error
	ReassignAlias(ctx context.Context, index, alias string) error
	DeleteIndex(ctx context.Context, index string) error
	PutMappings(ctx context.Context, index string, mappings indicesmodel.Mappings) error
	ReindexWithMappings(ctx context.Context, source, dest string, overrides indicesmodel.Mappings) error
}
