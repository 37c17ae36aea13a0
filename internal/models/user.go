package models

import "time"

// Roles known to the intranet. Unknown roles fall back to technicien-level
// permissions and quota.
const (
	RoleAdmin          = "admin"
	RoleRH             = "rh"
	RoleResponsableQSE = "responsable_qse"
	RoleChefChantier   = "chef_chantier"
	RoleTechnicien     = "technicien"
)

// User is an employee profile with its login credentials.
type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Email    string `gorm:"type:text;not null;uniqueIndex"` // Login email.
	Password string `gorm:"type:text;not null"`             // Bcrypt hash.

	FirstName string `gorm:"type:text;not null"`                          // First name.
	LastName  string `gorm:"type:text;not null"`                          // Last name.
	Role      string `gorm:"type:text;not null;default:technicien;index"` // Role string.
	JobTitle  string `gorm:"type:text"`                                   // Job title.
	Phone     string `gorm:"type:text"`                                   // Phone number.
	AvatarURL string `gorm:"type:text"`                                   // Avatar URL.

	DateOfBirth *time.Time `gorm:""` // Birthday, optional.
	HireDate    *time.Time `gorm:""` // Hire date, optional.

	// No column default: gorm omits zero-value fields that have one, so an
	// insert with Active=false would store true.
	Active bool `gorm:"not null"` // Account enabled flag.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
