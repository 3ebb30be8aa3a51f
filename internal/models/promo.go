package models

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type PromoCode struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Code          string       `gorm:"uniqueIndex;size:64;not null" json:"code"`
	DiscountType  DiscountType `gorm:"type:varchar(10);not null" json:"discount_type"`
	DiscountValue int64        `gorm:"not null" json:"discount_value"`
	StartAt       time.Time    `gorm:"not null" json:"start_at"`
	EndAt         time.Time    `gorm:"not null" json:"end_at"`
	IsActive      bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// ValidAt reports whether the code is usable at the given instant.
func (p *PromoCode) ValidAt(now time.Time) bool {
	return p.IsActive && !now.Before(p.StartAt) && !now.After(p.EndAt)
}

// BookingPromo records an applied discount. DiscountCents is the amount
// actually subtracted from the booking total; removal adds it back verbatim
// so the round-trip is exact even if the promo's parameters change later.
type BookingPromo struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BookingID     uint      `gorm:"uniqueIndex;not null" json:"booking_id"`
	PromoCodeID   uint      `gorm:"not null;index" json:"promo_code_id"`
	DiscountCents int64     `gorm:"not null" json:"discount_cents"`
	AppliedAt     time.Time `gorm:"not null" json:"applied_at"`

	PromoCode *PromoCode `gorm:"foreignKey:PromoCodeID" json:"promo_code,omitempty"`
}
