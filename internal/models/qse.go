package models

import "time"

// Danger report statuses, in lifecycle order.
const (
	DangerStatusSignale = "signale"
	DangerStatusEnCours = "en_cours"
	DangerStatusResolu  = "resolu"
	DangerStatusCloture = "cloture"
)

// DangerReport is a reported dangerous situation on a worksite.
type DangerReport struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Title       string `gorm:"type:text;not null"`                 // Short title.
	Description string `gorm:"type:text;not null"`                 // Detailed description.
	Location    string `gorm:"type:text"`                          // Worksite or place.
	PhotoURL    string `gorm:"type:text"`                          // Photo URL, optional.
	Status      string `gorm:"type:text;not null;default:signale"` // Lifecycle status.
	Severity    int    `gorm:"not null;default:1"`                 // 1 (minor) to 5 (critical).

	ReportedBy uint64     `gorm:"not null;index"` // Reporting user.
	AssignedTo *uint64    `gorm:"index"`          // Assignee, optional.
	ResolvedAt *time.Time `gorm:""`               // Resolution timestamp.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// Rex is a worksite lessons-learned report (retour d'expérience).
type Rex struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Title          string `gorm:"type:text;not null"` // Short title.
	Description    string `gorm:"type:text;not null"` // Context and course of events.
	LessonsLearned string `gorm:"type:text"`          // Lessons and improvements.
	Chantier       string `gorm:"type:text"`          // Worksite name.

	AuthorID uint64 `gorm:"not null;index"` // Authoring user.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
}

// TableName overrides the default table name.
func (Rex) TableName() string {
	return "rex"
}
