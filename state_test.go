package recipebox

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/storage"
)

func TestOpenState(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("file", func(t *testing.T) {
		state, cleanup, err := OpenState(ctx, StoreConfig{Backend: BackendFile, FilePath: filepath.Join(dir, "favorites.json")})
		require.NoError(t, err)
		defer cleanup() // nolint: errcheck
		assert.IsType(t, &storage.FileState{}, state)
	})

	t.Run("sqlite", func(t *testing.T) {
		state, cleanup, err := OpenState(ctx, StoreConfig{Backend: BackendSQLite, SQLitePath: filepath.Join(dir, "favorites.db")})
		require.NoError(t, err)
		defer cleanup() // nolint: errcheck

		require.NoError(t, state.Save(ctx, []byte(`[]`)))
		data, err := state.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), data)
	})

	tests := []struct {
		name    string
		cfg     StoreConfig
		wantErr string
	}{
		{name: "s3 without bucket", cfg: StoreConfig{Backend: BackendS3}, wantErr: "FAVORITES_S3_BUCKET"},
		{name: "postgres without dsn", cfg: StoreConfig{Backend: BackendPostgres}, wantErr: "FAVORITES_POSTGRES_DSN"},
		{name: "bad redis url", cfg: StoreConfig{Backend: BackendRedis, RedisURL: "::"}, wantErr: "Redis URL"},
		{name: "unknown backend", cfg: StoreConfig{Backend: "floppy"}, wantErr: `unknown favorites backend "floppy"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cleanup, err := OpenState(ctx, tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NoError(t, cleanup())
		})
	}
}
