package models

import "time"

// AICredit tracks AI generation credits for one user over one calendar month.
// The limit is frozen when the row is created; a role change takes effect on
// the next period.
type AICredit struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;uniqueIndex:idx_ai_credits_user_period"`           // Owning user.
	Period string `gorm:"type:text;not null;uniqueIndex:idx_ai_credits_user_period"` // Month key, YYYY-MM.

	CreditsUsed  int64 `gorm:"not null;default:0"` // Credits consumed this period.
	CreditsLimit int64 `gorm:"not null;default:0"` // Monthly allowance, frozen at creation.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (AICredit) TableName() string {
	return "ai_credits"
}
