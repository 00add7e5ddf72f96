package models

import "time"

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

// Reservation represents a time-slotted booking at a restaurant
type Reservation struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	RestaurantID uint              `gorm:"not null;index:idx_reservation_restaurant_date,priority:1" json:"restaurantId"`
	Date         time.Time         `gorm:"not null;index:idx_reservation_restaurant_date,priority:2" json:"date"`
	PartySize    int               `gorm:"not null" json:"partySize"`
	Name         string            `gorm:"type:varchar(255);not null" json:"name"`
	Email        string            `gorm:"type:varchar(255);not null" json:"email"`
	Phone        string            `gorm:"type:varchar(50);not null" json:"phone"`
	Status       ReservationStatus `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	CreatedAt    time.Time         `gorm:"not null" json:"createdAt"`
}
