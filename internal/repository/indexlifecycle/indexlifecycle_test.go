package indexlifecycle_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	indicesmodel "github.com/hitesh22rana/esmigrate/internal/model/indices"
	elasticsearchpkg "github.com/hitesh22rana/esmigrate/internal/pkg/elasticsearch"
	errorspkg "github.com/hitesh22rana/esmigrate/internal/pkg/errors"
	"github.com/hitesh22rana/esmigrate/internal/repository/indexlifecycle"
	indexlifecyclemock "github.com/hitesh22rana/esmigrate/internal/repository/indexlifecycle/mock"
)

func notFound(what string) error {
	return errorspkg.New(errorspkg.ErrNotFound, codes.NotFound, "%s", what)
}

func TestCreateIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := indexlifecyclemock.NewMockEngine(ctrl)
	repo := indexlifecycle.New(engine)

	body := map[string]any{"settings": map[string]any{"number_of_shards": 1}}

	tests := []struct {
		name  string
		index string
		mock  func(index string)
		errIs error
		isErr bool
	}{
		{
			name:  "success",
			index: "users_v1",
			mock: func(index string) {
				gomock.InOrder(
					engine.EXPECT().IndexExists(gomock.Any(), index).Return(false, nil),
					engine.EXPECT().CreateIndex(gomock.Any(), index, body).Return(nil),
				)
			},
		},
		{
			name:  "error: index already exists",
			index: "users_v1",
			mock: func(index string) {
				engine.EXPECT().IndexExists(gomock.Any(), index).Return(true, nil)
			},
			errIs: errorspkg.ErrAlreadyExists,
			isErr: true,
		},
		{
			name:  "error: existence check fails",
			index: "users_v1",
			mock: func(index string) {
				engine.EXPECT().IndexExists(gomock.Any(), index).
					Return(false, status.Error(codes.Unavailable, "connection refused"))
			},
			isErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock(tt.index)

			err := repo.CreateIndex(t.Context(), tt.index, body)
			if tt.isErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
					assert.Equal(t, codes.AlreadyExists, status.Code(err))
				}
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCreateAlias(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := indexlifecyclemock.NewMockEngine(ctrl)
	repo := indexlifecycle.New(engine)

	engine.EXPECT().UpdateAliases(gomock.Any(), []elasticsearchpkg.AliasAction{
		elasticsearchpkg.AddAlias("users_v1", "users"),
	}).Return(nil)

	assert.NoError(t, repo.CreateAlias(t.Context(), "users_v1", "users"))
}

func TestReassignAlias(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := indexlifecyclemock.NewMockEngine(ctrl)
	repo := indexlifecycle.New(engine)

	tests := []struct {
		name  string
		mock  func()
		errIs error
		isErr bool
	}{
		{
			name: "success: single atomic batch",
			mock: func() {
				gomock.InOrder(
					engine.EXPECT().GetAlias(gomock.Any(), "users").Return([]string{"users_v1"}, nil),
					engine.EXPECT().UpdateAliases(gomock.Any(), []elasticsearchpkg.AliasAction{
						elasticsearchpkg.RemoveAlias("users_v1", "users"),
						elasticsearchpkg.AddAlias("users_v2", "users"),
					}).Return(nil).Times(1),
				)
			},
		},
		{
			name: "error: alias unbound",
			mock: func() {
				engine.EXPECT().GetAlias(gomock.Any(), "users").Return(nil, notFound("alias users"))
			},
			errIs: errorspkg.ErrAmbiguousAlias,
			isErr: true,
		},
		{
			name: "error: alias bound to two indices",
			mock: func() {
				engine.EXPECT().GetAlias(gomock.Any(), "users").Return([]string{"users_v0", "users_v1"}, nil)
			},
			errIs: errorspkg.ErrAmbiguousAlias,
			isErr: true,
		},
		{
			name: "error: alias lookup fails",
			mock: func() {
				engine.EXPECT().GetAlias(gomock.Any(), "users").Return(nil, errors.New("boom"))
			},
			isErr: true,
		},
		{
			name: "error: batch rejected",
			mock: func() {
				engine.EXPECT().GetAlias(gomock.Any(), "users").Return([]string{"users_v1"}, nil)
				engine.EXPECT().UpdateAliases(gomock.Any(), gomock.Any()).Return(errors.New("rejected"))
			},
			isErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock()

			err := repo.ReassignAlias(t.Context(), "users_v2", "users")
			if tt.isErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
					assert.Equal(t, codes.FailedPrecondition, status.Code(err))
				}
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestDeleteIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := indexlifecyclemock.NewMockEngine(ctrl)
	repo := indexlifecycle.New(engine)

	tests := []struct {
		name  string
		mock  func()
		errIs error
		isErr bool
	}{
		{
			name: "success",
			mock: func() {
				gomock.InOrder(
					engine.EXPECT().IndexExists(gomock.Any(), "users_v1").Return(true, nil),
					engine.EXPECT().DeleteIndex(gomock.Any(), "users_v1").Return(nil),
				)
			},
		},
		{
			name: "error: index does not exist",
			mock: func() {
				engine.EXPECT().IndexExists(gomock.Any(), "users_v1").Return(false, nil)
			},
			errIs: errorspkg.ErrNotFound,
			isErr: true,
		},
		{
			name: "error: delete fails",
			mock: func() {
				engine.EXPECT().IndexExists(gomock.Any(), "users_v1").Return(true, nil)
				engine.EXPECT().DeleteIndex(gomock.Any(), "users_v1").Return(errors.New("boom"))
			},
			isErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock()

			err := repo.DeleteIndex(t.Context(), "users_v1")
			if tt.isErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
					assert.Equal(t, codes.NotFound, status.Code(err))
				}
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPutMappings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := indexlifecyclemock.NewMockEngine(ctrl)
	repo := indexlifecycle.New(engine)

	user := map[string]any{"properties": map[string]any{"name": map[string]any{"type": "keyword"}}}
	session := map[string]any{"properties": map[string]any{"token": map[string]any{"type": "keyword"}}}
	mappings := indicesmodel.Mappings{"user": user, "session": session}

	t.Run("success: applied in type order", func(t *testing.T) {
		gomock.InOrder(
			engine.EXPECT().PutMapping(gomock.Any(), "users_v2", "session", session).Return(nil),
			engine.EXPECT().PutMapping(gomock.Any(), "users_v2", "user", user).Return(nil),
		)

		assert.NoError(t, repo.PutMappings(t.Context(), "users_v2", mappings))
	})

	t.Run("error: stops at first failure", func(t *testing.T) {
		engine.EXPECT().PutMapping(gomock.Any(), "users_v2", "session", session).Return(errors.New("conflict"))

		assert.Error(t, repo.PutMappings(t.Context(), "users_v2", mappings))
	})
}

func TestReindexWithMappings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := indexlifecyclemock.NewMockEngine(ctrl)
	repo := indexlifecycle.New(engine)

	user := map[string]any{"properties": map[string]any{"name": map[string]any{"type": "keyword"}}}
	session := map[string]any{"properties": map[string]any{"token": map[string]any{"type": "keyword"}}}

	sourceSettings := indicesmodel.Settings{
		"index": map[string]any{
			"number_of_shards":   "1",
			"number_of_replicas": "0",
			"uuid":               "bWl4ZWQ",
			"version":            map[string]any{"created": "6080099"},
			"creation_date":      "1700000000000",
			"provided_name":      "users_v1",
		},
	}
	sourceMappings := indicesmodel.Mappings{"user": user, "session": session}

	wantBody := map[string]any{
		"settings": map[string]any{
			"index": map[string]any{
				"number_of_shards":   "1",
				"number_of_replicas": "0",
			},
		},
		"mappings": map[string]any{
			"user": user,
		},
	}

	tests := []struct {
		name  string
		mock  func()
		errIs error
		isErr bool
	}{
		{
			name: "success: session dropped and documents copied with external versions",
			mock: func() {
				gomock.InOrder(
					engine.EXPECT().GetIndexSettings(gomock.Any(), "users_v1").Return(sourceSettings, nil),
					engine.EXPECT().GetIndexMapping(gomock.Any(), "users_v1").Return(sourceMappings, nil),
					engine.EXPECT().IndexExists(gomock.Any(), "users_v2").Return(false, nil),
					engine.EXPECT().CreateIndex(gomock.Any(), "users_v2", wantBody).Return(nil),
					engine.EXPECT().Reindex(gomock.Any(), "users_v1", "users_v2", elasticsearchpkg.VersionTypeExternal).Return(nil),
				)
			},
		},
		{
			name: "error: destination exists",
			mock: func() {
				engine.EXPECT().GetIndexSettings(gomock.Any(), "users_v1").Return(sourceSettings, nil)
				engine.EXPECT().GetIndexMapping(gomock.Any(), "users_v1").Return(sourceMappings, nil)
				engine.EXPECT().IndexExists(gomock.Any(), "users_v2").Return(true, nil)
			},
			errIs: errorspkg.ErrAlreadyExists,
			isErr: true,
		},
		{
			name: "error: source missing",
			mock: func() {
				engine.EXPECT().GetIndexSettings(gomock.Any(), "users_v1").Return(nil, notFound("index users_v1"))
			},
			errIs: errorspkg.ErrNotFound,
			isErr: true,
		},
		{
			name: "error: reindex fails after destination created",
			mock: func() {
				engine.EXPECT().GetIndexSettings(gomock.Any(), "users_v1").Return(sourceSettings, nil)
				engine.EXPECT().GetIndexMapping(gomock.Any(), "users_v1").Return(sourceMappings, nil)
				engine.EXPECT().IndexExists(gomock.Any(), "users_v2").Return(false, nil)
				engine.EXPECT().CreateIndex(gomock.Any(), "users_v2", gomock.Any()).Return(nil)
				engine.EXPECT().Reindex(gomock.Any(), "users_v1", "users_v2", elasticsearchpkg.VersionTypeExternal).
					Return(status.Error(codes.DeadlineExceeded, "reindex timed out"))
				// no DeleteIndex expected: the destination is left in place
			},
			isErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock()

			err := repo.ReindexWithMappings(t.Context(), "users_v1", "users_v2", indicesmodel.Mappings{"session": {}})
			if tt.isErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestGetIndicesWithAlias(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := indexlifecyclemock.NewMockEngine(ctrl)
	repo := indexlifecycle.New(engine)

	tests := []struct {
		name  string
		mock  func()
		want  []string
		isErr bool
	}{
		{
			name: "success: bound",
			mock: func() {
				engine.EXPECT().GetAlias(gomock.Any(), "users").Return([]string{"users_v1"}, nil)
			},
			want: []string{"users_v1"},
		},
		{
			name: "success: unknown alias",
			mock: func() {
				engine.EXPECT().GetAlias(gomock.Any(), "users").Return(nil, notFound("alias users"))
			},
			want: []string{},
		},
		{
			name: "error: transport failure",
			mock: func() {
				engine.EXPECT().GetAlias(gomock.Any(), "users").Return(nil, errors.New("boom"))
			},
			isErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock()

			got, err := repo.GetIndicesWithAlias(t.Context(), "users")
			if tt.isErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
