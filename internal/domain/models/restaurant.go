package models

// Restaurant 默认值
const (
	DefaultMaxPartySize     = 10
	DefaultTimeSlotInterval = 30 // minutes
)

// Restaurant represents a listing in the vegan directory
type Restaurant struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	Name               string  `gorm:"type:varchar(255);not null" json:"name"`
	Description        string  `gorm:"type:text;not null" json:"description"`
	Address            string  `gorm:"type:varchar(255);not null" json:"address"`
	Hours              string  `gorm:"type:varchar(255);not null" json:"hours"`
	ImageURL           string  `gorm:"type:varchar(1024);not null" json:"imageUrl"`
	Latitude           float64 `gorm:"not null" json:"latitude"`
	Longitude          float64 `gorm:"not null" json:"longitude"`
	SustainabilityInfo string  `gorm:"type:text;not null" json:"sustainabilityInfo"`
	Menu               string  `gorm:"type:text;not null" json:"menu"`
	Type               string  `gorm:"type:varchar(100);not null" json:"type"` // free text: Restaurant, Food Cart, Cafe...
	MaxPartySize       int     `gorm:"not null;default:10" json:"maxPartySize"`
	TimeSlotInterval   int     `gorm:"not null;default:30" json:"timeSlotInterval"` // minutes between reservation slots
}

// ApplyDefaults fills the party size and slot interval when they were left unset
func (r *Restaurant) ApplyDefaults() {
	if r.MaxPartySize <= 0 {
		r.MaxPartySize = DefaultMaxPartySize
	}
	if r.TimeSlotInterval <= 0 {
		r.TimeSlotInterval = DefaultTimeSlotInterval
	}
}
