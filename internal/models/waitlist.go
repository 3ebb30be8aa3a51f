package models

import "time"

type WaitlistStatus string

const (
	WaitlistPending  WaitlistStatus = "pending"
	WaitlistNotified WaitlistStatus = "notified"
	WaitlistExpired  WaitlistStatus = "expired"
)

type WaitingListEntry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	EventID   uint           `gorm:"not null;index" json:"event_id"`
	MemberID  string         `gorm:"not null;index" json:"member_id"`
	Status    WaitlistStatus `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
