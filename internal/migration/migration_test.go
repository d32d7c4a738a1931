package migration

import (
	"io/fs"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	require.NoError(t, err)

	ups, err := fs.Glob(sub, "*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(sub, "*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Equal(t, len(ups), len(downs))
}

func TestAutoMigrateCreatesEveryTable(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(conn))
	for _, table := range []string{"salaries", "emails", "specialities", "contacts", "feedbacks"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
}

func TestRunMigrationsRequiresHandle(t *testing.T) {
	assert.Error(t, RunMigrations(nil))
	assert.Error(t, AutoMigrate(nil))
}
