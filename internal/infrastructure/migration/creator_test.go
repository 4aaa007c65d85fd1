package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Create Orders Table")
	require.NoError(t, err)

	assert.FileExists(t, mf.UpPath)
	assert.FileExists(t, mf.DownPath)
	assert.Contains(t, filepath.Base(mf.UpPath), "create_orders_table.up.sql")
	assert.Contains(t, filepath.Base(mf.DownPath), "create_orders_table.down.sql")

	content, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Create Orders Table")
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Create Orders Table", "create_orders_table"},
		{"add-index--twice", "add_index_twice"},
		{"UPPER", "upper"},
		{"trailing ", "trailing"},
		{"v2 schema!", "v2_schema"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in))
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	_, err := CreateMigration(dir, "first")
	require.NoError(t, err)

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Len(t, migrations, 1)

	empty, err := ListMigrations(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
