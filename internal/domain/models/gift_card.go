package models

import "time"

// GiftCard 状态标记（沿用整型存储 1/0）
const (
	GiftCardActive   = 1
	GiftCardInactive = 0
)

// GiftCardCodeLength 兑换码长度
const GiftCardCodeLength = 10

// GiftCard represents a stored-value card. Balance only ever decreases and
// IsActive drops to 0 exactly when Balance reaches 0.
type GiftCard struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	Amount    int64     `gorm:"not null" json:"amount"`  // face value
	Balance   int64     `gorm:"not null" json:"balance"` // remaining value, <= Amount
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	IsActive  int       `gorm:"not null;default:1" json:"isActive"`
}

// Active reports whether the card can still be redeemed
func (g *GiftCard) Active() bool {
	return g.IsActive == GiftCardActive
}

// Expired reports whether now is past the card's expiry
func (g *GiftCard) Expired(now time.Time) bool {
	return now.After(g.ExpiresAt)
}
