package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/mavhungutrezzy/umami-tube/model"
)

// ReloadTaxonomy refreshes the registry snapshot from the database
func (m *CronManager) ReloadTaxonomy(ctx context.Context) (string, error) {
	if err := m.registry.Reload(ctx); err != nil {
		return "", fmt.Errorf("failed to reload taxonomy: %w", err)
	}
	return fmt.Sprintf("Taxonomy reloaded at %s", m.registry.LoadedAt().Format(time.RFC3339)), nil
}

// CleanupExpiredTokens removes blacklist entries for tokens that can no longer be used
func (m *CronManager) CleanupExpiredTokens(ctx context.Context) (string, error) {
	removed, err := m.blacklist.CleanupExpiredTokens(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to clean up token blacklist: %w", err)
	}
	return fmt.Sprintf("Removed %d expired blacklist entries", removed), nil
}

// CleanupJobLogs deletes job logs older than the retention window
func (m *CronManager) CleanupJobLogs(ctx context.Context) (string, error) {
	cutoff := time.Now().Add(-jobLogRetention)
	result := m.db.WithContext(ctx).Where("started_at < ?", cutoff).Delete(&model.CronJobLog{})
	if result.Error != nil {
		return "", fmt.Errorf("failed to clean up job logs: %w", result.Error)
	}
	return fmt.Sprintf("Removed %d job logs older than %s", result.RowsAffected, cutoff.Format("2006-01-02")), nil
}
