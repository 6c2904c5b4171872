package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mavhungutrezzy/umami-tube/model"
	"github.com/mavhungutrezzy/umami-tube/services"
	"github.com/mavhungutrezzy/umami-tube/testutil"
	"github.com/mavhungutrezzy/umami-tube/utils/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *CronManager {
	t.Helper()
	db := testutil.NewSeededDB(t)
	return NewCronManager(db, services.NewTaxonomyRegistry(db), logger.Nop())
}

func TestRun_RecordsCompletedJob(t *testing.T) {
	m := newTestManager(t)

	m.run(jobReloadTaxonomy, m.ReloadTaxonomy)

	var logs []model.CronJobLog
	require.NoError(t, m.db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, jobReloadTaxonomy, logs[0].JobName)
	assert.Equal(t, "completed", logs[0].Status)
	assert.Contains(t, logs[0].Message, "Taxonomy reloaded")
	assert.NotNil(t, logs[0].CompletedAt)
	assert.False(t, m.registry.LoadedAt().IsZero())
}

func TestRun_RecordsFailedJob(t *testing.T) {
	m := newTestManager(t)

	m.run("broken", func(ctx context.Context) (string, error) {
		return "", errors.New("boom")
	})

	var entry model.CronJobLog
	require.NoError(t, m.db.Where("job_name = ?", "broken").First(&entry).Error)
	assert.Equal(t, "failed", entry.Status)
	assert.Equal(t, "boom", entry.ErrorMsg)
}

func TestCleanupExpiredTokens(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, m.db, "student@example.com", model.RoleStudent)

	require.NoError(t, m.blacklist.RevokeToken(ctx, "stale", user.ID, time.Now().Add(-time.Hour), "logout"))
	require.NoError(t, m.blacklist.RevokeToken(ctx, "live", user.ID, time.Now().Add(time.Hour), "logout"))

	msg, err := m.CleanupExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Removed 1 expired blacklist entries", msg)

	var remaining []model.JWTTokenBlacklist
	require.NoError(t, m.db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "live", remaining[0].Token)
}

func TestCleanupJobLogs(t *testing.T) {
	m := newTestManager(t)
	now := time.Now()

	require.NoError(t, m.db.Create(&[]model.CronJobLog{
		{JobName: jobReloadTaxonomy, Status: "completed", StartedAt: now.Add(-31 * 24 * time.Hour)},
		{JobName: jobReloadTaxonomy, Status: "completed", StartedAt: now.Add(-time.Hour)},
	}).Error)

	_, err := m.CleanupJobLogs(context.Background())
	require.NoError(t, err)

	var count int64
	require.NoError(t, m.db.Model(&model.CronJobLog{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStartRegistersJobs(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Start())
	defer m.Stop()

	assert.Len(t, m.cron.Entries(), 3)
}
