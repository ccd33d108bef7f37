package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileState(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		data     []byte
	}{
		{
			name:     "favorites list",
			filename: "favorites.json",
			data:     []byte(`[{"id":1,"title":"Chicken Rice Bowl","image":"https://img/1.jpg"}]`),
		},
		{
			name:     "empty favorites file",
			filename: "empty.json",
			data:     []byte(`[]`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := filepath.Join(tmpDir, tt.filename)

			// Create the test file
			err := os.WriteFile(filePath, tt.data, 0644)
			require.NoError(t, err)

			state := NewFileState(filePath)
			loadedData, err := state.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.data, loadedData)
		})
	}

	t.Run("load nonexistent file", func(t *testing.T) {
		state := NewFileState(filepath.Join(tmpDir, "nonexistent.json"))
		_, err := state.Load(context.Background())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("save creates directories and overwrites", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "nested", "dir", "favorites.json")
		state := NewFileState(filePath)
		ctx := context.Background()

		require.NoError(t, state.Save(ctx, []byte(`[{"id":1}]`)))
		require.NoError(t, state.Save(ctx, []byte(`[]`)))

		data, err := state.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), data)

		entries, err := os.ReadDir(filepath.Dir(filePath))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp files should be cleaned up")
	})
}
