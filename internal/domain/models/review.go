package models

import "time"

// Review is an append-only rating left for a restaurant
type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurantId"` // not enforced as a foreign key
	Rating       int       `gorm:"not null" json:"rating"`             // 1..5
	Comment      string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}

// ReviewSummary is the derived rating view of a restaurant's reviews
type ReviewSummary struct {
	RestaurantID  uint        `json:"restaurantId"`
	Count         int         `json:"count"`
	AverageRating float64     `json:"averageRating"`
	Distribution  map[int]int `json:"distribution"` // star -> number of reviews, keys 1..5
}
