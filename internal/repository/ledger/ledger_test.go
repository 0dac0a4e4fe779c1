package ledger_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hitesh22rana/esmigrate/internal/config"
	migrationsmodel "github.com/hitesh22rana/esmigrate/internal/model/migrations"
	errorspkg "github.com/hitesh22rana/esmigrate/internal/pkg/errors"
	"github.com/hitesh22rana/esmigrate/internal/repository/ledger"
	ledgermock "github.com/hitesh22rana/esmigrate/internal/repository/ledger/mock"
)

func newCatalog(t *testing.T) *migrationsmodel.Catalog {
	t.Helper()

	catalog, err := migrationsmodel.NewCatalog("V1", "V2", "V3")
	require.NoError(t, err)
	return catalog
}

func newRepository(t *testing.T, engine ledger.Engine) *ledger.Repository {
	t.Helper()

	repo, err := ledger.New(&ledger.Config{
		Settings:  config.Settings{config.KeyIndex: "migrations"},
		Connector: config.Settings{config.KeyDocumentType: "_doc"},
		Catalog:   newCatalog(t),
	}, engine)
	require.NoError(t, err)
	return repo
}

func TestNew(t *testing.T) {
	catalog := newCatalog(t)

	tests := []struct {
		name      string
		cfg       *ledger.Config
		wantIndex string
		isErr     bool
	}{
		{
			name: "success: local settings win",
			cfg: &ledger.Config{
				Settings:  config.Settings{config.KeyIndex: "ledger"},
				Connector: config.Settings{config.KeyIndex: "shared", config.KeyDocumentType: "_doc"},
				Catalog:   catalog,
			},
			wantIndex: "ledger",
		},
		{
			name: "success: connector fallback",
			cfg: &ledger.Config{
				Connector: config.Settings{config.KeyIndex: "shared", config.KeyDocumentType: "_doc"},
				Catalog:   catalog,
			},
			wantIndex: "shared",
		},
		{
			name: "error: missing index",
			cfg: &ledger.Config{
				Connector: config.Settings{config.KeyDocumentType: "_doc"},
				Catalog:   catalog,
			},
			isErr: true,
		},
		{
			name: "error: missing document type",
			cfg: &ledger.Config{
				Settings: config.Settings{config.KeyIndex: "ledger"},
				Catalog:  catalog,
			},
			isErr: true,
		},
		{
			name: "error: missing catalog",
			cfg: &ledger.Config{
				Settings: config.Settings{config.KeyIndex: "ledger", config.KeyDocumentType: "_doc"},
			},
			isErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := ledger.New(tt.cfg, nil)
			if tt.isErr {
				assert.ErrorIs(t, err, errorspkg.ErrMissingConfiguration)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantIndex, repo.Index())
		})
	}
}

func TestRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := ledgermock.NewMockEngine(ctrl)
	repo := newRepository(t, engine)

	executedAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name   string
		target string
		mock   func(target string)
		want   []migrationsmodel.Kind
		errIs  error
		isErr  bool
	}{
		{
			name:   "success: never written",
			target: "users",
			mock: func(target string) {
				engine.EXPECT().GetDocument(gomock.Any(), "migrations", "_doc", target).
					Return(nil, errorspkg.New(errorspkg.ErrNotFound, codes.NotFound, "document"))
			},
			want: []migrationsmodel.Kind{},
		},
		{
			name:   "success: records sorted by version",
			target: "users",
			mock: func(target string) {
				engine.EXPECT().GetDocument(gomock.Any(), "migrations", "_doc", target).
					Return(json.RawMessage(`{"target":"users","migrations":[
						{"kind":"V3","executedAt":"2024-01-02T03:04:05Z"},
						{"kind":"V1","executedAt":"2024-01-02T03:04:05Z"}
					]}`), nil)
			},
			want: []migrationsmodel.Kind{"V1", "V3"},
		},
		{
			name:   "error: engine failure",
			target: "users",
			mock: func(target string) {
				engine.EXPECT().GetDocument(gomock.Any(), "migrations", "_doc", target).
					Return(nil, errors.New("connection refused"))
			},
			errIs: errorspkg.ErrLedgerRead,
			isErr: true,
		},
		{
			name:   "error: malformed document",
			target: "users",
			mock: func(target string) {
				engine.EXPECT().GetDocument(gomock.Any(), "migrations", "_doc", target).
					Return(json.RawMessage(`{"migrations":"nope"}`), nil)
			},
			errIs: errorspkg.ErrLedgerRead,
			isErr: true,
		},
		{
			name:   "error: unknown kind",
			target: "users",
			mock: func(target string) {
				engine.EXPECT().GetDocument(gomock.Any(), "migrations", "_doc", target).
					Return(json.RawMessage(`{"migrations":[{"kind":"V9","executedAt":"2024-01-02T03:04:05Z"}]}`), nil)
			},
			errIs: errorspkg.ErrUnknownMigrationKind,
			isErr: true,
		},
		{
			name:   "error: duplicate version",
			target: "users",
			mock: func(target string) {
				engine.EXPECT().GetDocument(gomock.Any(), "migrations", "_doc", target).
					Return(json.RawMessage(`{"migrations":[
						{"kind":"V2","executedAt":"2024-01-02T03:04:05Z"},
						{"kind":"V2","executedAt":"2024-01-02T03:04:05Z"}
					]}`), nil)
			},
			errIs: errorspkg.ErrLedgerRead,
			isErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock(tt.target)

			got, err := repo.Read(t.Context(), tt.target)
			if tt.isErr {
				assert.ErrorIs(t, err, tt.errIs)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.target, got.Target)
			assert.Equal(t, tt.want, got.Kinds())
			for _, m := range got.Migrations {
				assert.True(t, executedAt.Equal(m.ExecutedAt))
			}
		})
	}
}

func TestWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := ledgermock.NewMockEngine(ctrl)
	repo := newRepository(t, engine)

	executedAt := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	t.Run("success: round trip", func(t *testing.T) {
		var stored json.RawMessage
		engine.EXPECT().PutDocument(gomock.Any(), "migrations", "_doc", "users", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, _ string, body any) error {
				data, err := json.Marshal(body)
				stored = data
				return err
			})
		engine.EXPECT().GetDocument(gomock.Any(), "migrations", "_doc", "users").
			DoAndReturn(func(_ context.Context, _, _, _ string) (json.RawMessage, error) {
				return stored, nil
			})

		l := migrationsmodel.NewLedger("users")
		l.Append(migrationsmodel.Record{Kind: "V2", Version: 2, ExecutedAt: executedAt})
		l.Append(migrationsmodel.Record{Kind: "V1", Version: 1, ExecutedAt: executedAt})

		require.NoError(t, repo.Write(t.Context(), "users", l))

		got, err := repo.Read(t.Context(), "users")
		require.NoError(t, err)
		assert.Equal(t, []migrationsmodel.Kind{"V1", "V2"}, got.Kinds())
		assert.JSONEq(t, `{"target":"users","migrations":[
			{"kind":"V2","executedAt":"2024-05-06T07:08:09Z"},
			{"kind":"V1","executedAt":"2024-05-06T07:08:09Z"}
		]}`, string(stored))
	})

	t.Run("error: engine failure", func(t *testing.T) {
		engine.EXPECT().PutDocument(gomock.Any(), "migrations", "_doc", "users", gomock.Any()).
			Return(errors.New("cluster unavailable"))

		err := repo.Write(t.Context(), "users", migrationsmodel.NewLedger("users"))
		assert.ErrorIs(t, err, errorspkg.ErrLedgerWrite)
		assert.Equal(t, codes.Internal, status.Code(err))
	})
}

// memEngine keeps documents in memory the way the engine would store them.
type memEngine struct {
	mu   sync.Mutex
	docs map[string]json.RawMessage
}

func newMemEngine() *memEngine {
	return &memEngine{docs: make(map[string]json.RawMessage)}
}

func (e *memEngine) GetDocument(_ context.Context, index, docType, id string) (json.RawMessage, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, ok := e.docs[index+"/"+docType+"/"+id]
	if !ok {
		return nil, errorspkg.New(errorspkg.ErrNotFound, codes.NotFound, "document %s", id)
	}
	return doc, nil
}

func (e *memEngine) PutDocument(_ context.Context, index, docType, id string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.docs[index+"/"+docType+"/"+id] = data
	return nil
}

func TestWriteThenRead(t *testing.T) {
	engine := newMemEngine()
	repo := newRepository(t, engine)
	catalog := newCatalog(t)

	executedAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	empty, err := repo.Read(t.Context(), "users")
	require.NoError(t, err)
	assert.Empty(t, empty.Migrations)

	written := migrationsmodel.NewLedger("users")
	for i, kind := range []migrationsmodel.Kind{"V3", "V1", "V2"} {
		rec, recErr := catalog.NewRecord(kind, executedAt.Add(time.Duration(i)*time.Minute))
		require.NoError(t, recErr)
		written.Append(rec)
	}
	require.NoError(t, repo.Write(t.Context(), "users", written))

	got, err := repo.Read(t.Context(), "users")
	require.NoError(t, err)
	assert.Equal(t, "users", got.Target)
	assert.Equal(t, []migrationsmodel.Kind{"V1", "V2", "V3"}, got.Kinds())
	for i, rec := range got.Migrations {
		assert.Equal(t, uint64(i+1), rec.Version)
	}
	assert.True(t, got.Migrations[0].ExecutedAt.Equal(executedAt.Add(time.Minute)))
	assert.True(t, got.Migrations[2].ExecutedAt.Equal(executedAt))

	// Last write wins.
	first := migrationsmodel.NewLedger("users")
	first.Append(got.Migrations[0])
	require.NoError(t, repo.Write(t.Context(), "users", first))

	got, err = repo.Read(t.Context(), "users")
	require.NoError(t, err)
	assert.Equal(t, []migrationsmodel.Kind{"V1"}, got.Kinds())

	other, err := repo.Read(t.Context(), "orders")
	require.NoError(t, err)
	assert.Empty(t, other.Migrations)
}
