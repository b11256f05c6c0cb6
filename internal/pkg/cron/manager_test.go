package cron

import (
	"Inkpost/internal/api/config"
	"Inkpost/internal/job"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterJobs(t *testing.T) {
	specs := config.CronConfig{
		TokenPurge:    "0 0 * * * *",
		MediaClean:    "0 30 3 * * *",
		AnalyticsWarm: "0 */5 * * * *",
	}
	mgr := NewCronManager(specs, job.NewTokenPurgeJob(nil), job.NewMediaCleanupJob(nil), job.NewAnalyticsWarmJob(nil))
	require.NoError(t, mgr.RegisterJobs())
	assert.Equal(t, 3, mgr.Entries())
}

func TestRegisterJobsRejectsBadSpec(t *testing.T) {
	specs := config.CronConfig{
		TokenPurge:    "every hour",
		MediaClean:    "@daily",
		AnalyticsWarm: "@every 5m",
	}
	mgr := NewCronManager(specs, job.NewTokenPurgeJob(nil), job.NewMediaCleanupJob(nil), job.NewAnalyticsWarmJob(nil))
	assert.Error(t, mgr.RegisterJobs())
}
