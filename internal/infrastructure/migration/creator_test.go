package migration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("creates up and down files", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "create entregas table")
		require.NoError(t, err)

		assert.FileExists(t, mf.UpPath)
		assert.FileExists(t, mf.DownPath)
		assert.Contains(t, mf.UpPath, "create_entregas_table.up.sql")
		assert.Contains(t, mf.DownPath, "create_entregas_table.down.sql")

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "create entregas table")
	})

	t.Run("creates the directory when missing", func(t *testing.T) {
		dir := t.TempDir() + "/nested/migrations"

		_, err := CreateMigration(dir, "init")
		require.NoError(t, err)
		assert.DirExists(t, dir)
	})
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"create entregas table", "create_entregas_table"},
		{"Add-Index On Fecha", "add_index_on_fecha"},
		{"weird!!chars##", "weirdchars"},
		{"trailing space ", "trailing_space"},
		{"many   spaces", "many_spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeName(tt.input))
		})
	}
}

func TestListMigrations(t *testing.T) {
	t.Run("returns empty for missing directory", func(t *testing.T) {
		migrations, err := ListMigrations("/nonexistent/path")
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("lists migration base names", func(t *testing.T) {
		dir := t.TempDir()
		_, err := CreateMigration(dir, "first")
		require.NoError(t, err)

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		require.Len(t, migrations, 1)
		assert.Contains(t, migrations[0], "first")
	})
}
