package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_seed.sql", "0001_schema.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	// schema before seed, non-sql and subdirectories skipped
	assert.Equal(t, []string{"0001_schema.sql", "0002_seed.sql"}, files)
}

func TestMigrationFilesMissingDir(t *testing.T) {
	_, err := migrationFiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestShippedMigrationsRunSchemaBeforeSeed(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "0001_init.sql", files[0])
	assert.Equal(t, "0002_seed_defaults.sql", files[1])
}

func TestSchemaDeclaresOwnershipCascades(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "migrations", "0001_init.sql"))
	require.NoError(t, err)
	schema := string(raw)

	// comments follow their author, history follows its agent, fields
	// follow their category or topic, report children outlive their parent
	assert.Contains(t, schema, "user_id      BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE")
	assert.Contains(t, schema, "changed_by    BIGINT NOT NULL REFERENCES agents(id) ON DELETE CASCADE")
	assert.Contains(t, schema, "help_topic_id BIGINT REFERENCES help_topics(id) ON DELETE CASCADE")
	assert.Contains(t, schema, "field_label")
	assert.Contains(t, schema, "parent_id BIGINT REFERENCES report_categories(id) ON DELETE SET NULL")
	assert.Contains(t, schema, "required  BOOLEAN NOT NULL DEFAULT FALSE")
}
