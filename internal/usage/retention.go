package usage

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nansinho/innovtec-v2/internal/settings"
)

const (
	defaultRetentionInterval = 6 * time.Hour
	defaultDeleteBatchSize   = 5000
	maxDeleteBatchesPerRun   = 2000
)

// RetentionCleaner periodically deletes old rows from the ai_usages table.
// The retention window comes from the AI_USAGE_RETENTION_DAYS setting; a
// value of zero disables cleanup.
type RetentionCleaner struct {
	db        *gorm.DB
	interval  time.Duration
	batchSize int
}

// NewRetentionCleaner constructs a RetentionCleaner.
func NewRetentionCleaner(db *gorm.DB) *RetentionCleaner {
	if db == nil {
		return nil
	}
	return &RetentionCleaner{
		db:        db,
		interval:  defaultRetentionInterval,
		batchSize: defaultDeleteBatchSize,
	}
}

// Start launches the cleanup loop in a background goroutine.
func (c *RetentionCleaner) Start(ctx context.Context) {
	if c == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	go c.run(ctx)
	log.Infof("ai usage retention cleaner started (interval=%s)", c.interval)
}

func (c *RetentionCleaner) run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.cleanupOnce(ctx)
		timer := time.NewTimer(c.interval)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return
		case <-timer.C:
		}
	}
}

func (c *RetentionCleaner) cleanupOnce(ctx context.Context) {
	retentionDays := settings.IntValue(settings.AIUsageRetentionDaysKey, settings.DefaultAIUsageRetentionDays)
	if retentionDays <= 0 {
		return
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	deletedTotal := int64(0)
	for i := 0; i < maxDeleteBatchesPerRun; i++ {
		if ctx.Err() != nil {
			return
		}
		n, errDelete := c.deleteBatch(ctx, cutoff)
		if errDelete != nil {
			log.WithError(errDelete).Warn("ai usage retention cleaner: delete batch failed")
			break
		}
		if n <= 0 {
			break
		}
		deletedTotal += n
	}

	if deletedTotal > 0 {
		log.Infof("ai usage retention cleaner: deleted %d rows (cutoff=%s retention_days=%d)", deletedTotal, cutoff.Format(time.RFC3339), retentionDays)
	}
}

func (c *RetentionCleaner) deleteBatch(ctx context.Context, cutoff time.Time) (int64, error) {
	limit := c.batchSize
	if limit <= 0 {
		limit = defaultDeleteBatchSize
	}

	// Use a limited subquery to avoid long-running transactions and table locks.
	res := c.db.WithContext(ctx).Exec(`
		DELETE FROM ai_usages
		WHERE id IN (
			SELECT id FROM ai_usages
			WHERE requested_at < ?
			ORDER BY requested_at ASC
			LIMIT ?
		)
	`, cutoff, limit)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
