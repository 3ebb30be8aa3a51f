package models

import "time"

type TicketType struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EventID      uint      `gorm:"not null;index" json:"event_id"`
	Name         string    `gorm:"not null" json:"name"`
	PriceCents   int64     `gorm:"not null" json:"price_cents"`
	SeatLimit    int       `gorm:"not null" json:"seat_limit"`
	SalesStartAt time.Time `gorm:"not null" json:"sales_start_at"`
	SalesEndAt   time.Time `gorm:"not null" json:"sales_end_at"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// OnSale reports whether the type can be sold at the given instant.
func (t *TicketType) OnSale(now time.Time) bool {
	return t.IsActive && !now.Before(t.SalesStartAt) && !now.After(t.SalesEndAt)
}
