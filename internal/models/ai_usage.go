package models

import (
	"time"

	"gorm.io/datatypes"
)

// AIUsage records metering data for a single AI provider call.
type AIUsage struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;index"`           // Calling user.
	Task   string `gorm:"type:text;not null;index"` // Generation task name.
	Model  string `gorm:"type:text;not null"`       // Provider model id.

	RequestedAt time.Time `gorm:"not null;index"`         // Request timestamp.
	Failed      bool      `gorm:"not null;default:false"` // Failure flag.

	ErrorStatusCode *int           `gorm:""`           // Provider HTTP status for failed calls.
	ErrorDetail     datatypes.JSON `gorm:"type:jsonb"` // Structured error detail JSON.

	InputTokens  int64 `gorm:"not null;default:0"` // Input token count.
	OutputTokens int64 `gorm:"not null;default:0"` // Output token count.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
}

// TableName overrides the default table name.
func (AIUsage) TableName() string {
	return "ai_usages"
}
