package dto

import (
	"time"

	"github.com/campustix/campus-ticketing/internal/models"
)

type CreateEventRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	StartAt     time.Time         `json:"start_at"`
	EndAt       time.Time         `json:"end_at"`
	IsOnline    bool              `json:"is_online"`
	Venue       string            `json:"venue"`
	OnlineLink  string            `json:"online_link"`
	Capacity    int               `json:"capacity"`
	Visibility  models.Visibility `json:"visibility"`
	OrganizerID uint              `json:"organizer_id"`
	CategoryID  *uint             `json:"category_id"`
}

type ApproveEventRequest struct {
	Publish bool `json:"publish"`
}

type CreateTicketTypeRequest struct {
	Name         string    `json:"name"`
	PriceCents   int64     `json:"price_cents"`
	SeatLimit    int       `json:"seat_limit"`
	SalesStartAt time.Time `json:"sales_start_at"`
	SalesEndAt   time.Time `json:"sales_end_at"`
}

type BookingLineRequest struct {
	TicketTypeID uint `json:"ticket_type_id"`
	Quantity     int  `json:"quantity"`
}

type CreateBookingRequest struct {
	MemberID   string               `json:"member_id"`
	MemberRole models.Role          `json:"member_role"`
	EventID    uint                 `json:"event_id"`
	Items      []BookingLineRequest `json:"items"`
	PromoCode  string               `json:"promo_code,omitempty"`
}

type ApplyPromoRequest struct {
	Code string `json:"code"`
}

type PayRequest struct {
	Method      models.PaymentMethod `json:"method"`
	ExternalRef string               `json:"external_ref,omitempty"`
}

type JoinWaitlistRequest struct {
	MemberID string `json:"member_id"`
}

type CreateReviewRequest struct {
	MemberID string `json:"member_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

type CreatePromoCodeRequest struct {
	Code          string              `json:"code"`
	DiscountType  models.DiscountType `json:"discount_type"`
	DiscountValue int64               `json:"discount_value"`
	StartAt       time.Time           `json:"start_at"`
	EndAt         time.Time           `json:"end_at"`
}
