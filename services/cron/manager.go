package cron

import (
	"context"
	"time"

	"github.com/mavhungutrezzy/umami-tube/model"
	"github.com/mavhungutrezzy/umami-tube/services"
	"github.com/mavhungutrezzy/umami-tube/utils/auth"
	"github.com/mavhungutrezzy/umami-tube/utils/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	jobReloadTaxonomy = "reload_taxonomy"
	jobCleanupTokens  = "cleanup_expired_tokens"
	jobCleanupJobLogs = "cleanup_job_logs"
	jobLogRetention   = 30 * 24 * time.Hour
	defaultJobTimeout = 5 * time.Minute
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron      *cron.Cron
	db        *gorm.DB
	registry  *services.TaxonomyRegistry
	blacklist *auth.BlacklistService
	log       *logger.Logger
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, registry *services.TaxonomyRegistry, log *logger.Logger) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DiscardLogger)))

	return &CronManager{
		cron:      c,
		db:        db,
		registry:  registry,
		blacklist: auth.NewBlacklistService(db),
		log:       log.With("component", "cron"),
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	m.log.Info("Starting cron jobs")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	m.log.Info("Cron jobs started", "entries", len(m.cron.Entries()))
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	m.log.Info("Stopping cron jobs")
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.log.Info("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// 1. Every hour: pick up taxonomy edits made outside the API
	if _, err := m.cron.AddFunc("0 0 * * * *", func() { m.run(jobReloadTaxonomy, m.ReloadTaxonomy) }); err != nil {
		return err
	}

	// 2. Every 30 minutes: drop blacklist entries whose tokens expired anyway
	if _, err := m.cron.AddFunc("0 */30 * * * *", func() { m.run(jobCleanupTokens, m.CleanupExpiredTokens) }); err != nil {
		return err
	}

	// 3. Daily at 2 AM: trim old job logs
	if _, err := m.cron.AddFunc("0 0 2 * * *", func() { m.run(jobCleanupJobLogs, m.CleanupJobLogs) }); err != nil {
		return err
	}

	return nil
}

// run wraps a job with a timeout and a cron_job_logs row
func (m *CronManager) run(jobName string, job func(ctx context.Context) (string, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultJobTimeout)
	defer cancel()

	entry := m.logJobStart(jobName)
	message, err := job(ctx)
	if err != nil {
		m.logJobError(entry, err)
		return
	}
	m.logJobComplete(entry, message)
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(jobName string) *model.CronJobLog {
	m.log.Info("Starting job", "job", jobName)

	entry := &model.CronJobLog{
		JobName:   jobName,
		Status:    "running",
		StartedAt: time.Now(),
	}
	if err := m.db.Create(entry).Error; err != nil {
		m.log.Warn("Failed to record job start", "job", jobName, "error", err)
	}
	return entry
}

// logJobComplete logs successful completion of a cron job
func (m *CronManager) logJobComplete(entry *model.CronJobLog, message string) {
	m.log.Info("Completed job", "job", entry.JobName, "message", message)
	m.finish(entry, map[string]interface{}{"status": "completed", "message": message})
}

// logJobError logs a cron job error
func (m *CronManager) logJobError(entry *model.CronJobLog, err error) {
	m.log.Error("Job failed", "job", entry.JobName, "error", err)
	m.finish(entry, map[string]interface{}{"status": "failed", "error_msg": err.Error()})
}

func (m *CronManager) finish(entry *model.CronJobLog, updates map[string]interface{}) {
	if entry.ID == 0 {
		return
	}
	now := time.Now()
	updates["completed_at"] = now
	updates["duration"] = now.Sub(entry.StartedAt).Milliseconds()
	if err := m.db.Model(&model.CronJobLog{}).Where("id = ?", entry.ID).Updates(updates).Error; err != nil {
		m.log.Warn("Failed to record job result", "job", entry.JobName, "error", err)
	}
}
