package models

import "time"

// News categories and priorities mirror the values the UI filters on.
const (
	NewsPriorityNormal    = "normal"
	NewsPriorityImportant = "important"
	NewsPriorityUrgent    = "urgent"
)

// News is a company news article.
type News struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Title    string `gorm:"type:text;not null"`                       // Headline.
	Excerpt  string `gorm:"type:text"`                                // Short summary.
	Content  string `gorm:"type:text;not null"`                       // Article body.
	Category string `gorm:"type:text;not null;index"`                 // entreprise, securite, formation, chantier, social, rh.
	Priority string `gorm:"type:text;not null;default:normal"`        // normal, important, urgent.
	ImageURL string `gorm:"type:text"`                                // Illustration URL.

	IsCarousel  bool `gorm:"not null;default:false"`       // Featured on the dashboard carousel.
	IsPublished bool `gorm:"not null;default:false;index"` // Visible to readers.

	AuthorID    *uint64    `gorm:"index"` // Publishing user.
	PublishedAt *time.Time `gorm:""`      // Publication timestamp.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
