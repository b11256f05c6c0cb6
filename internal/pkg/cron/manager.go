package cron

import (
	"Inkpost/internal/api/config"
	"Inkpost/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine           *cron.Cron
	specs            config.CronConfig
	tokenPurgeJob    *job.TokenPurgeJob
	mediaCleanupJob  *job.MediaCleanupJob
	analyticsWarmJob *job.AnalyticsWarmJob
}

func NewCronManager(
	specs config.CronConfig,
	tokenPurgeJob *job.TokenPurgeJob,
	mediaCleanupJob *job.MediaCleanupJob,
	analyticsWarmJob *job.AnalyticsWarmJob,
) *Manager {
	return &Manager{
		engine:           cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		specs:            specs,
		tokenPurgeJob:    tokenPurgeJob,
		mediaCleanupJob:  mediaCleanupJob,
		analyticsWarmJob: analyticsWarmJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	jobs := []struct {
		spec string
		job  cron.Job
	}{
		{s.specs.TokenPurge, s.tokenPurgeJob},
		{s.specs.MediaClean, s.mediaCleanupJob},
		{s.specs.AnalyticsWarm, s.analyticsWarmJob},
	}
	for _, j := range jobs {
		if _, err := s.engine.AddJob(j.spec, j.job); err != nil {
			return err
		}
	}
	return nil
}

// Entries 已注册任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

// Run 注册并启动全部任务
func (s *Manager) Run() error {
	if err := s.RegisterJobs(); err != nil {
		return err
	}
	s.Start()
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron engine started")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron engine stopping")
	<-s.engine.Stop().Done()
}
