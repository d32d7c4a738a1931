package seed

import (
	"testing"

	"github.com/glebarez/sqlite"
	specialtydomain "github.com/smallbiznis/dentalpay/internal/specialty/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEnsureSpecialtiesIsIdempotent(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&specialtydomain.SpecialtyEntry{}))

	require.NoError(t, EnsureSpecialties(conn))
	require.NoError(t, EnsureSpecialties(conn))

	var count int64
	require.NoError(t, conn.Model(&specialtydomain.SpecialtyEntry{}).Count(&count).Error)
	assert.Equal(t, int64(len(defaultSpecialties)), count)
}

func TestEnsureSpecialtiesRequiresHandle(t *testing.T) {
	assert.Error(t, EnsureSpecialties(nil))
}
