package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSQL(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_second.sql": {Data: []byte("CREATE INDEX b ON t (b);")},
		"0001_first.sql":  {Data: []byte("CREATE INDEX a ON t (a);")},
		"0003_empty.sql":  {Data: []byte("  \n")},
		"README.md":       {Data: []byte("not a migration")},
	}

	m := NewMigrator()
	require.NoError(t, m.LoadSQL(fsys))

	assert.Equal(t, []string{"0001_first", "0002_second"}, m.IDs())
	assert.Nil(t, m.migrations["0001_first"].Down)
}

func TestEmbeddedSQLFiles(t *testing.T) {
	m := NewMigrator()
	require.NoError(t, m.LoadSQL(SQLFiles()))

	ids := m.IDs()
	require.NotEmpty(t, ids)
	assert.Equal(t, "0001_recipes_title_url_unique", ids[0])
}
