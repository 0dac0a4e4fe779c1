package migrations

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"google.golang.org/grpc/codes"

	errorspkg "github.com/hitesh22rana/esmigrate/internal/pkg/errors"
)

var versionPattern = regexp.MustCompile(`\d+`)

// Kind identifies a migration, e.g. "000002_users_v2" or "V2".
type Kind string

// ToString converts the Kind to its string representation.
func (k Kind) ToString() string {
	return string(k)
}

// Version returns the version encoded in the kind: its first run of decimal digits.
func (k Kind) Version() (uint64, error) {
	match := versionPattern.FindString(string(k))
	if match == "" {
		return 0, fmt.Errorf("kind %q does not encode a version", k)
	}

	version, err := strconv.ParseUint(match, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("kind %q has an invalid version: %w", k, err)
	}

	return version, nil
}

// Record is an applied migration.
type Record struct {
	Kind       Kind
	Version    uint64
	ExecutedAt time.Time
}

// Ledger is the ordered list of migrations applied to a logical target.
type Ledger struct {
	Target     string
	Migrations []Record
}

// NewLedger returns an empty ledger for target.
func NewLedger(target string) *Ledger {
	return &Ledger{
		Target:     target,
		Migrations: []Record{},
	}
}

// Has reports whether kind has been applied.
func (l *Ledger) Has(kind Kind) bool {
	for _, m := range l.Migrations {
		if m.Kind == kind {
			return true
		}
	}
	return false
}

// Append records an applied migration.
func (l *Ledger) Append(record Record) {
	l.Migrations = append(l.Migrations, record)
}

// Kinds returns the applied kinds in ledger order.
func (l *Ledger) Kinds() []Kind {
	kinds := make([]Kind, 0, len(l.Migrations))
	for _, m := range l.Migrations {
		kinds = append(kinds, m.Kind)
	}
	return kinds
}

// SortByVersion orders records ascending by version.
// Two records sharing a version are reported as an error.
func SortByVersion(records []Record) error {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Version < records[j].Version
	})

	for i := 1; i < len(records); i++ {
		if records[i].Version == records[i-1].Version {
			return fmt.Errorf("migrations %q and %q share version %d", records[i-1].Kind, records[i].Kind, records[i].Version)
		}
	}

	return nil
}

// Catalog is the closed set of migration kinds known to this process.
type Catalog struct {
	versions map[Kind]uint64
}

// NewCatalog builds a catalog from kinds.
// Every kind must encode a version and no two kinds may share one.
func NewCatalog(kinds ...Kind) (*Catalog, error) {
	versions := make(map[Kind]uint64, len(kinds))
	owners := make(map[uint64]Kind, len(kinds))

	for _, kind := range kinds {
		version, err := kind.Version()
		if err != nil {
			return nil, errorspkg.Wrap(errorspkg.ErrInvalidMigration, codes.InvalidArgument, err, "invalid kind")
		}

		if owner, ok := owners[version]; ok && owner != kind {
			return nil, errorspkg.New(errorspkg.ErrInvalidMigration, codes.InvalidArgument,
				"kinds %q and %q share version %d", owner, kind, version)
		}

		versions[kind] = version
		owners[version] = kind
	}

	return &Catalog{versions: versions}, nil
}

// NewRecord reconstructs a record for a persisted kind.
func (c *Catalog) NewRecord(kind Kind, executedAt time.Time) (Record, error) {
	version, ok := c.versions[kind]
	if !ok {
		return Record{}, errorspkg.New(errorspkg.ErrUnknownMigrationKind, codes.FailedPrecondition, "kind %q", kind)
	}

	return Record{
		Kind:       kind,
		Version:    version,
		ExecutedAt: executedAt,
	}, nil
}

// Contains reports whether kind is part of the catalog.
func (c *Catalog) Contains(kind Kind) bool {
	_, ok := c.versions[kind]
	return ok
}

// Kinds returns every known kind ordered by version.
func (c *Catalog) Kinds() []Kind {
	kinds := make([]Kind, 0, len(c.versions))
	for kind := range c.versions {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool {
		return c.versions[kinds[i]] < c.versions[kinds[j]]
	})

	return kinds
}
