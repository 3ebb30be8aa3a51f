package models

import "time"

type EventStatus string

const (
	EventPendingApproval EventStatus = "pending_approval"
	EventPendingUpcoming EventStatus = "pending_upcoming"
	EventPublished       EventStatus = "published"
	EventRejected        EventStatus = "rejected"
)

type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityUniversity Visibility = "university"
)

type Event struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `json:"description"`
	StartAt     time.Time   `gorm:"not null" json:"start_at"`
	EndAt       time.Time   `gorm:"not null" json:"end_at"`
	IsOnline    bool        `gorm:"not null;default:false" json:"is_online"`
	Venue       string      `json:"venue,omitempty"`
	OnlineLink  string      `json:"online_link,omitempty"`
	Capacity    int         `gorm:"not null" json:"capacity"`
	Visibility  Visibility  `gorm:"type:varchar(20);not null;default:'public'" json:"visibility"`
	Status      EventStatus `gorm:"type:varchar(20);not null;default:'pending_approval'" json:"status"`
	OrganizerID uint        `gorm:"not null;index" json:"organizer_id"`
	CategoryID  *uint       `gorm:"index" json:"category_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Category  *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Organizer *OrganizerUnit `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type OrganizerUnit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
