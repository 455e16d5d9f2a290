package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsSortedAndEmbedded(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Filename, migrations[i].Filename)
	}
	assert.Equal(t, "0001_create_projects.sql", migrations[0].Filename)
	assert.True(t, strings.Contains(migrations[0].SQL, "CREATE TABLE IF NOT EXISTS projects"))
	assert.Len(t, migrations[0].Checksum, 64)
}

func TestMigrationVerify(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	m := migrations[0]

	assert.NoError(t, m.verify(m.Checksum))

	err = m.verify(strings.Repeat("0", 64))
	require.ErrorIs(t, err, ErrChecksumMismatch)
	assert.Contains(t, err.Error(), m.Filename)
}
