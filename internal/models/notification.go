package models

import "time"

// Notification is an in-app notification addressed to one user.
type Notification struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID  uint64 `gorm:"not null;index"`     // Recipient.
	Type    string `gorm:"type:text;not null"` // news, event, danger, system, ...
	Title   string `gorm:"type:text;not null"` // Short title.
	Message string `gorm:"type:text"`          // Body text.
	Link    string `gorm:"type:text"`          // In-app link target.

	IsRead    bool    `gorm:"not null;default:false;index"` // Read flag.
	RelatedID *uint64 `gorm:""`                             // Related entity id, optional.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
}
