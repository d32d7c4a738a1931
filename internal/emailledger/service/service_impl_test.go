package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/dentalpay/internal/clock"
	"github.com/smallbiznis/dentalpay/internal/emailledger/domain"
	"github.com/smallbiznis/dentalpay/internal/emailledger/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, domain.Repository) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.EmailEntry{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo := repository.Provide()
	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		Repo:  repo,
	})
	return svc, conn, repo
}

func TestRecordIsIdempotent(t *testing.T) {
	svc, conn, repo := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, "dentist@example.com", domain.SourceSalary))
	require.NoError(t, svc.Record(ctx, "dentist@example.com", domain.SourceContact))
	require.NoError(t, svc.Record(ctx, "  Dentist@Example.com ", domain.SourceFeedback))

	count, err := repo.Count(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRecordKeepsFirstEntry(t *testing.T) {
	svc, conn, repo := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, "first@example.com", domain.SourceSalary))
	before, err := repo.FindByEmail(ctx, conn, "first@example.com")
	require.NoError(t, err)
	require.NotNil(t, before)

	require.NoError(t, svc.Record(ctx, "first@example.com", domain.SourceSalary))
	after, err := repo.FindByEmail(ctx, conn, "first@example.com")
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
}

func TestRecordRejectsInvalidEmail(t *testing.T) {
	svc, conn, repo := newTestService(t)

	for _, email := range []string{"", "not-an-email", "a@b", "two words@example.com"} {
		err := svc.Record(context.Background(), email, domain.SourceSalary)
		assert.ErrorIs(t, err, domain.ErrInvalidEmail, email)
	}

	count, err := repo.Count(context.Background(), conn)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFindByEmailMissing(t *testing.T) {
	_, conn, repo := newTestService(t)

	entry, err := repo.FindByEmail(context.Background(), conn, "missing@example.com")
	require.NoError(t, err)
	assert.Nil(t, entry)
}
