// Package quota tracks monthly AI generation credits per user.
//
// Each user gets one ai_credits row per calendar month, created lazily on
// first access with a limit frozen from the user's role at that moment.
// Consumption is a single conditional UPDATE so the used counter can never
// pass the limit, even under concurrent requests.
package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nansinho/innovtec-v2/internal/models"
)

// ErrExhausted is returned by Consume when no credit is left.
var ErrExhausted = errors.New("quota: credits exhausted")

// Ledger reads and mutates per-user monthly credit records.
type Ledger struct {
	db  *gorm.DB
	now func() time.Time
}

// NewLedger constructs a Ledger on the given database.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

// WithClock overrides the ledger clock, for tests.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// Period returns the current month bucket key.
func (l *Ledger) Period() string {
	return PeriodAt(l.now())
}

// GetOrCreate returns the credit record for (userID, current period),
// creating it with a zero counter and the role's limit when absent. The
// insert uses ON CONFLICT DO NOTHING so concurrent first accesses cannot
// produce duplicate rows.
func (l *Ledger) GetOrCreate(ctx context.Context, userID uint64, role string) (*models.AICredit, error) {
	period := l.Period()

	record := models.AICredit{
		UserID:       userID,
		Period:       period,
		CreditsUsed:  0,
		CreditsLimit: LimitForRole(role),
	}
	if errCreate := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "period"}},
			DoNothing: true,
		}).
		Create(&record).Error; errCreate != nil {
		return nil, fmt.Errorf("quota: create record: %w", errCreate)
	}

	// Re-read: the insert may have been a no-op on conflict.
	var existing models.AICredit
	if errFind := l.db.WithContext(ctx).
		Where("user_id = ? AND period = ?", userID, period).
		First(&existing).Error; errFind != nil {
		return nil, fmt.Errorf("quota: load record: %w", errFind)
	}
	return &existing, nil
}

// Consume debits exactly one credit. The increment is guarded by the limit
// in a single statement; a caller losing the race to the last credit gets
// ErrExhausted.
func (l *Ledger) Consume(ctx context.Context, recordID uint64) (*models.AICredit, error) {
	res := l.db.WithContext(ctx).Model(&models.AICredit{}).
		Where("id = ? AND credits_used < credits_limit", recordID).
		UpdateColumn("credits_used", gorm.Expr("credits_used + 1"))
	if res.Error != nil {
		return nil, fmt.Errorf("quota: consume: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrExhausted
	}

	var record models.AICredit
	if errFind := l.db.WithContext(ctx).First(&record, recordID).Error; errFind != nil {
		return nil, fmt.Errorf("quota: reload record: %w", errFind)
	}
	return &record, nil
}

// Remaining returns the credits left on a record, never negative.
func Remaining(record *models.AICredit) int64 {
	if record == nil {
		return 0
	}
	if remaining := record.CreditsLimit - record.CreditsUsed; remaining > 0 {
		return remaining
	}
	return 0
}

// Exhausted reports whether a record has no credit left.
func Exhausted(record *models.AICredit) bool {
	return record != nil && record.CreditsUsed >= record.CreditsLimit
}
