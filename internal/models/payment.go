package models

import "time"

type PaymentMethod string

const (
	MethodCard         PaymentMethod = "card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCash         PaymentMethod = "cash"
)

type Payment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	BookingID     uint          `gorm:"uniqueIndex;not null" json:"booking_id"`
	AmountCents   int64         `gorm:"not null" json:"amount_cents"`
	Method        PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`
	TransactionID string        `gorm:"uniqueIndex;size:36;not null" json:"transaction_id"`
	ExternalRef   string        `json:"external_ref,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

type Ticket struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BookingID    uint      `gorm:"not null;index" json:"booking_id"`
	TicketTypeID uint      `gorm:"not null;index" json:"ticket_type_id"`
	Code         string    `gorm:"uniqueIndex;size:64;not null" json:"code"`
	IssuedAt     time.Time `gorm:"not null" json:"issued_at"`

	TicketType *TicketType `gorm:"foreignKey:TicketTypeID" json:"ticket_type,omitempty"`
}
