package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/lint"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestSQLiteStore_NotOpen(t *testing.T) {
	store := NewSQLiteStore()
	ctx := context.Background()

	_, _, err := store.Lookup(ctx, "a.tsx", "k")
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, store.Store(ctx, "a.tsx", "k", nil, ""), ErrNotOpen)
	assert.ErrorIs(t, store.Migrate(ctx), ErrNotOpen)
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_Migrate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	v, err := store.GetMigrationVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	// Running again is a no-op.
	require.NoError(t, store.Migrate(ctx))
}

func TestSQLiteStore_ResultCache(t *testing.T) {
	diags := []lint.Diagnostic{{
		RuleID:    "no-system-props",
		Severity:  lint.SeverityWarning,
		MessageID: "noSystemProps",
		Message:   "Styled-system props are deprecated (Button called with props: width)",
		Data:      map[string]string{"componentName": "Button"},
		Pos:       jsx.Position{Line: 2, Column: 11, Offset: 60},
		EndPos:    jsx.Position{Line: 2, Column: 30, Offset: 79},
	}}

	tests := []struct {
		name      string
		store     func(t *testing.T, s *SQLiteStore)
		path, key string
		wantHit   bool
		wantDiags []lint.Diagnostic
	}{
		{
			name:  "miss on empty cache",
			store: func(*testing.T, *SQLiteStore) {},
			path:  "a.tsx", key: "k1",
		},
		{
			name: "hit with same key",
			store: func(t *testing.T, s *SQLiteStore) {
				require.NoError(t, s.Store(context.Background(), "a.tsx", "k1", diags, ""))
			},
			path: "a.tsx", key: "k1",
			wantHit:   true,
			wantDiags: diags,
		},
		{
			name: "miss when key changed",
			store: func(t *testing.T, s *SQLiteStore) {
				require.NoError(t, s.Store(context.Background(), "a.tsx", "k1", diags, ""))
			},
			path: "a.tsx", key: "k2",
		},
		{
			name: "clean file is cached as empty",
			store: func(t *testing.T, s *SQLiteStore) {
				require.NoError(t, s.Store(context.Background(), "b.tsx", "k", nil, ""))
			},
			path: "b.tsx", key: "k",
			wantHit:   true,
			wantDiags: []lint.Diagnostic{},
		},
		{
			name: "later store replaces",
			store: func(t *testing.T, s *SQLiteStore) {
				ctx := context.Background()
				require.NoError(t, s.Store(ctx, "a.tsx", "k1", diags, ""))
				require.NoError(t, s.Store(ctx, "a.tsx", "k2", nil, ""))
			},
			path: "a.tsx", key: "k2",
			wantHit:   true,
			wantDiags: []lint.Diagnostic{},
		},
		{
			name: "forgotten",
			store: func(t *testing.T, s *SQLiteStore) {
				ctx := context.Background()
				require.NoError(t, s.Store(ctx, "a.tsx", "k1", diags, ""))
				require.NoError(t, s.Forget(ctx, "a.tsx"))
			},
			path: "a.tsx", key: "k1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestStore(t)
			tt.store(t, s)

			got, hit, err := s.Lookup(context.Background(), tt.path, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHit, hit)
			assert.Equal(t, tt.wantDiags, got)
		})
	}
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	latest, err := s.GetLatestRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	run, err := s.CreateRun(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)

	require.NoError(t, s.Store(ctx, "a.tsx", "k", nil, run.ID))
	require.NoError(t, s.CompleteRun(ctx, run.ID, 3, 2, 1))

	latest, err = s.GetLatestRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, run.ID, latest.ID)
	assert.Equal(t, 3, latest.Files)
	assert.Equal(t, 2, latest.Issues)
	assert.Equal(t, 1, latest.Fixed)
	assert.NotNil(t, latest.CompletedAt)

	assert.Error(t, s.CompleteRun(ctx, "missing", 0, 0, 0))
}

func TestSQLiteStore_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.db")
	ctx := context.Background()

	s := NewSQLiteStore()
	require.NoError(t, s.Open(path))
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Store(ctx, "a.tsx", "k", nil, ""))
	require.NoError(t, s.Close())

	reopened := NewSQLiteStore()
	require.NoError(t, reopened.Open(path))
	defer reopened.Close()
	require.NoError(t, reopened.Migrate(ctx))

	n, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, path, reopened.Path())
}
