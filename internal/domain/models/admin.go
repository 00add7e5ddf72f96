package models

// Admin represents directory administrators, seeded at startup
type Admin struct {
	BaseModel
	Username string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password string `gorm:"type:varchar(100);not null" json:"-"` // bcrypt hash, never exposed in JSON
}
