package models

import "time"

type BookingStatus string

const (
	BookingPendingPayment BookingStatus = "pending_payment"
	BookingConfirmed      BookingStatus = "confirmed"
	BookingCancelled      BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleOrganizer  Role = "organizer"
	RoleUniversity Role = "university_member"
	RoleExternal   Role = "external_member"
)

type Booking struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	Reference        string        `gorm:"uniqueIndex;size:32;not null" json:"reference"`
	EventID          uint          `gorm:"not null;index" json:"event_id"`
	MemberID         string        `gorm:"not null;index" json:"member_id"`
	MemberRole       Role          `gorm:"type:varchar(20);not null" json:"member_role"`
	Status           BookingStatus `gorm:"type:varchar(20);not null;default:'pending_payment'" json:"status"`
	PaymentStatus    PaymentStatus `gorm:"type:varchar(10);not null;default:'unpaid'" json:"payment_status"`
	TotalAmountCents int64         `gorm:"not null" json:"total_amount_cents"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	Event *Event        `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Items []BookingItem `gorm:"foreignKey:BookingID" json:"items,omitempty"`
	Promo *BookingPromo `gorm:"foreignKey:BookingID" json:"promo,omitempty"`
}

type BookingItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	BookingID      uint      `gorm:"not null;index" json:"booking_id"`
	TicketTypeID   uint      `gorm:"not null;index" json:"ticket_type_id"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	UnitPriceCents int64     `gorm:"not null" json:"unit_price_cents"`
	LineTotalCents int64     `gorm:"not null" json:"line_total_cents"`
	CreatedAt      time.Time `json:"created_at"`

	TicketType *TicketType `gorm:"foreignKey:TicketTypeID" json:"ticket_type,omitempty"`
}
