package migration

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"gopkg.in/yaml.v3"

	migrationsmodel "github.com/hitesh22rana/esmigrate/internal/model/migrations"
	errorspkg "github.com/hitesh22rana/esmigrate/internal/pkg/errors"
)

// Migration is an ordered list of steps applied once to a logical target.
type Migration struct {
	Kind    migrationsmodel.Kind
	Version uint64
	Target  string
	Steps   []Step
}

// Apply runs the steps in order and stops at the first failure.
func (m *Migration) Apply(ctx context.Context, ops Operations) error {
	for i, step := range m.Steps {
		if err := step.Apply(ctx, ops); err != nil {
			return fmt.Errorf("migration %s step %d (%s): %w", m.Kind, i+1, step, err)
		}
	}
	return nil
}

// definition is the file format of a migration.
type definition struct {
	Target string `yaml:"target" validate:"required"`
	Steps  []Step `yaml:"steps" validate:"required,min=1,dive"`
}

// Loader reads migration definitions from a file system.
type Loader struct {
	validator *validator.Validate
	prefix    string
}

// NewLoader creates a loader substituting prefix for the {prefix} placeholder.
func NewLoader(validator *validator.Validate, prefix string) *Loader {
	return &Loader{
		validator: validator,
		prefix:    prefix,
	}
}

// Load reads every *.yaml and *.yml file at the root of fsys.
// The file name without extension is the migration kind; its digits are the version.
func (l *Loader) Load(fsys fs.FS) (*Set, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errorspkg.Wrap(errorspkg.ErrInvalidMigration, codes.InvalidArgument, err, "read migrations")
	}

	var migrations []*Migration
	for _, entry := range entries {
		ext := path.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		m, err := l.load(fsys, entry.Name(), strings.TrimSuffix(entry.Name(), ext))
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, m)
	}

	return NewSet(migrations...)
}

func (l *Loader) load(fsys fs.FS, name, kind string) (*Migration, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errorspkg.Wrap(errorspkg.ErrInvalidMigration, codes.InvalidArgument, err, "read %s", name)
	}

	version, err := migrationsmodel.Kind(kind).Version()
	if err != nil {
		return nil, errorspkg.Wrap(errorspkg.ErrInvalidMigration, codes.InvalidArgument, err, "file %s", name)
	}

	var def definition
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&def); err != nil {
		return nil, errorspkg.Wrap(errorspkg.ErrInvalidMigration, codes.InvalidArgument, err, "decode %s", name)
	}

	if err := l.validator.Struct(&def); err != nil {
		return nil, errorspkg.Wrap(errorspkg.ErrInvalidMigration, codes.InvalidArgument, err, "validate %s", name)
	}

	steps := make([]Step, 0, len(def.Steps))
	for i, step := range def.Steps {
		if err := step.check(); err != nil {
			return nil, fmt.Errorf("%s step %d: %w", name, i+1, err)
		}
		steps = append(steps, step.withPrefix(l.prefix))
	}

	return &Migration{
		Kind:    migrationsmodel.Kind(kind),
		Version: version,
		Target:  def.Target,
		Steps:   steps,
	}, nil
}

// Set is the closed set of migrations known to the process.
type Set struct {
	catalog  *migrationsmodel.Catalog
	byTarget map[string][]*Migration
}

// NewSet groups migrations per target in version order.
// Two migrations sharing a version are rejected, even across targets.
func NewSet(migrations ...*Migration) (*Set, error) {
	kinds := make([]migrationsmodel.Kind, 0, len(migrations))
	byTarget := make(map[string][]*Migration)
	for _, m := range migrations {
		kinds = append(kinds, m.Kind)
		byTarget[m.Target] = append(byTarget[m.Target], m)
	}

	catalog, err := migrationsmodel.NewCatalog(kinds...)
	if err != nil {
		return nil, err
	}

	for _, ms := range byTarget {
		slices.SortFunc(ms, func(a, b *Migration) int {
			switch {
			case a.Version < b.Version:
				return -1
			case a.Version > b.Version:
				return 1
			default:
				return 0
			}
		})
	}

	return &Set{
		catalog:  catalog,
		byTarget: byTarget,
	}, nil
}

// Catalog returns the kinds of every migration in the set.
func (s *Set) Catalog() *migrationsmodel.Catalog {
	return s.catalog
}

// Targets returns the targets with at least one migration, sorted.
func (s *Set) Targets() []string {
	targets := make([]string, 0, len(s.byTarget))
	for target := range s.byTarget {
		targets = append(targets, target)
	}
	slices.Sort(targets)
	return targets
}

// Migrations returns the migrations of target in version order.
func (s *Set) Migrations(target string) []*Migration {
	return s.byTarget[target]
}

// Pending returns the migrations of the ledger's target not yet recorded in it.
func (s *Set) Pending(ledger *migrationsmodel.Ledger) []*Migration {
	var pending []*Migration
	for _, m := range s.byTarget[ledger.Target] {
		if !ledger.Has(m.Kind) {
			pending = append(pending, m)
		}
	}
	return pending
}
