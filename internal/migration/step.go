package migration

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"

	indicesmodel "github.com/hitesh22rana/esmigrate/internal/model/indices"
	errorspkg "github.com/hitesh22rana/esmigrate/internal/pkg/errors"
)

// prefixPlaceholder is replaced by the configured index prefix in every name a step references.
const prefixPlaceholder = "{prefix}"

// Op is the operation a step performs.
type Op string

// Supported operations.
const (
	OpCreateIndex         Op = "create_index"
	OpCreateAlias         Op = "create_alias"
	OpReassignAlias       Op = "reassign_alias"
	OpDeleteIndex         Op = "delete_index"
	OpPutMappings         Op = "put_mappings"
	OpReindexWithMappings Op = "reindex_with_mappings"
)

// Step is a single index lifecycle operation of a migration.
type Step struct {
	Op       Op                    `yaml:"op" validate:"required,oneof=create_index create_alias reassign_alias delete_index put_mappings reindex_with_mappings"`
	Index    string                `yaml:"index,omitempty"`
	Alias    string                `yaml:"alias,omitempty"`
	Source   string                `yaml:"source,omitempty"`
	Dest     string                `yaml:"dest,omitempty"`
	Body     map[string]any        `yaml:"body,omitempty"`
	Mappings indicesmodel.Mappings `yaml:"mappings,omitempty"`
}

// String returns a short description of the step.
func (s Step) String() string {
	switch s.Op {
	case OpCreateAlias, OpReassignAlias:
		return fmt.Sprintf("%s %s -> %s", s.Op, s.Alias, s.Index)
	case OpReindexWithMappings:
		return fmt.Sprintf("%s %s -> %s", s.Op, s.Source, s.Dest)
	default:
		return fmt.Sprintf("%s %s", s.Op, s.Index)
	}
}

// check verifies the fields each operation requires.
func (s Step) check() error {
	var missing []string
	require := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	switch s.Op {
	case OpCreateIndex, OpDeleteIndex:
		require("index", s.Index)
	case OpCreateAlias, OpReassignAlias:
		require("index", s.Index)
		require("alias", s.Alias)
	case OpPutMappings:
		require("index", s.Index)
		if len(s.Mappings) == 0 {
			missing = append(missing, "mappings")
		}
	case OpReindexWithMappings:
		require("source", s.Source)
		require("dest", s.Dest)
	default:
		return errorspkg.New(errorspkg.ErrInvalidMigration, codes.InvalidArgument, "unknown op %q", s.Op)
	}

	if len(missing) != 0 {
		return errorspkg.New(errorspkg.ErrInvalidMigration, codes.InvalidArgument,
			"%s requires %s", s.Op, strings.Join(missing, ", "))
	}
	return nil
}

// withPrefix returns the step with the prefix placeholder substituted in every name.
func (s Step) withPrefix(prefix string) Step {
	replace := func(name string) string {
		return strings.ReplaceAll(name, prefixPlaceholder, prefix)
	}

	s.Index = replace(s.Index)
	s.Alias = replace(s.Alias)
	s.Source = replace(s.Source)
	s.Dest = replace(s.Dest)
	return s
}

// Apply performs the step through ops.
func (s Step) Apply(ctx context.Context, ops Operations) error {
	switch s.Op {
	case OpCreateIndex:
		return ops.CreateIndex(ctx, s.Index, s.Body)
	case OpCreateAlias:
		return ops.CreateAlias(ctx, s.Index, s.Alias)
	case OpReassignAlias:
		return ops.ReassignAlias(ctx, s.Index, s.Alias)
	case OpDeleteIndex:
		return ops.DeleteIndex(ctx, s.Index)
	case OpPutMappings:
		return ops.PutMappings(ctx, s.Index, s.Mappings)
	case OpReindexWithMappings:
		return ops.ReindexWithMappings(ctx, s.Source, s.Dest, s.Mappings)
	default:
		return errorspkg.New(errorspkg.ErrInvalidMigration, codes.InvalidArgument, "unknown op %q", s.Op)
	}
}
