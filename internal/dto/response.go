package dto

import (
	"time"

	"github.com/campustix/campus-ticketing/internal/models"
	"github.com/campustix/campus-ticketing/internal/service"
)

type EventResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	StartAt     time.Time          `json:"start_at"`
	EndAt       time.Time          `json:"end_at"`
	IsOnline    bool               `json:"is_online"`
	Venue       string             `json:"venue,omitempty"`
	OnlineLink  string             `json:"online_link,omitempty"`
	Capacity    int                `json:"capacity"`
	Visibility  models.Visibility  `json:"visibility"`
	Status      models.EventStatus `json:"status"`
	OrganizerID uint               `json:"organizer_id"`
	CategoryID  *uint              `json:"category_id,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type TicketTypeResponse struct {
	ID           uint      `json:"id"`
	EventID      uint      `json:"event_id"`
	Name         string    `json:"name"`
	PriceCents   int64     `json:"price_cents"`
	SeatLimit    int       `json:"seat_limit"`
	SalesStartAt time.Time `json:"sales_start_at"`
	SalesEndAt   time.Time `json:"sales_end_at"`
	IsActive     bool      `json:"is_active"`
}

type BookingItemResponse struct {
	TicketTypeID   uint  `json:"ticket_type_id"`
	Quantity       int   `json:"quantity"`
	UnitPriceCents int64 `json:"unit_price_cents"`
	LineTotalCents int64 `json:"line_total_cents"`
}

type BookingPromoResponse struct {
	PromoCodeID   uint  `json:"promo_code_id"`
	DiscountCents int64 `json:"discount_cents"`
}

type BookingResponse struct {
	ID               uint                  `json:"id"`
	Reference        string                `json:"reference"`
	EventID          uint                  `json:"event_id"`
	MemberID         string                `json:"member_id"`
	Status           models.BookingStatus  `json:"status"`
	PaymentStatus    models.PaymentStatus  `json:"payment_status"`
	TotalAmountCents int64                 `json:"total_amount_cents"`
	Items            []BookingItemResponse `json:"items,omitempty"`
	Promo            *BookingPromoResponse `json:"promo,omitempty"`
	PromoWarning     string                `json:"promo_warning,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

type TicketResponse struct {
	ID           uint      `json:"id"`
	TicketTypeID uint      `json:"ticket_type_id"`
	Code         string    `json:"code"`
	IssuedAt     time.Time `json:"issued_at"`
}

type PaymentReceiptResponse struct {
	PaymentID     uint                 `json:"payment_id"`
	TransactionID string               `json:"transaction_id"`
	BookingID     uint                 `json:"booking_id"`
	Reference     string               `json:"reference"`
	AmountCents   int64                `json:"amount_cents"`
	Method        models.PaymentMethod `json:"method"`
	Tickets       []TicketResponse     `json:"tickets"`
}

type WaitlistResponse struct {
	ID        uint                  `json:"id"`
	EventID   uint                  `json:"event_id"`
	MemberID  string                `json:"member_id"`
	Status    models.WaitlistStatus `json:"status"`
	CreatedAt time.Time             `json:"created_at"`
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	MemberID  string    `json:"member_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PromoCodeResponse struct {
	ID            uint                `json:"id"`
	Code          string              `json:"code"`
	DiscountType  models.DiscountType `json:"discount_type"`
	DiscountValue int64               `json:"discount_value"`
	StartAt       time.Time           `json:"start_at"`
	EndAt         time.Time           `json:"end_at"`
	IsActive      bool                `json:"is_active"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartAt:     e.StartAt,
		EndAt:       e.EndAt,
		IsOnline:    e.IsOnline,
		Venue:       e.Venue,
		OnlineLink:  e.OnlineLink,
		Capacity:    e.Capacity,
		Visibility:  e.Visibility,
		Status:      e.Status,
		OrganizerID: e.OrganizerID,
		CategoryID:  e.CategoryID,
		CreatedAt:   e.CreatedAt,
	}
}

func ToTicketTypeResponse(t *models.TicketType) TicketTypeResponse {
	return TicketTypeResponse{
		ID:           t.ID,
		EventID:      t.EventID,
		Name:         t.Name,
		PriceCents:   t.PriceCents,
		SeatLimit:    t.SeatLimit,
		SalesStartAt: t.SalesStartAt,
		SalesEndAt:   t.SalesEndAt,
		IsActive:     t.IsActive,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:               b.ID,
		Reference:        b.Reference,
		EventID:          b.EventID,
		MemberID:         b.MemberID,
		Status:           b.Status,
		PaymentStatus:    b.PaymentStatus,
		TotalAmountCents: b.TotalAmountCents,
		CreatedAt:        b.CreatedAt,
	}
	for _, item := range b.Items {
		resp.Items = append(resp.Items, BookingItemResponse{
			TicketTypeID:   item.TicketTypeID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: item.LineTotalCents,
		})
	}
	if b.Promo != nil {
		resp.Promo = &BookingPromoResponse{
			PromoCodeID:   b.Promo.PromoCodeID,
			DiscountCents: b.Promo.DiscountCents,
		}
	}
	return resp
}

func ToCreateBookingResponse(r *service.CreateBookingResult) BookingResponse {
	resp := ToBookingResponse(r.Booking)
	resp.PromoWarning = r.PromoWarning
	return resp
}

func ToTicketResponse(t *models.Ticket) TicketResponse {
	return TicketResponse{
		ID:           t.ID,
		TicketTypeID: t.TicketTypeID,
		Code:         t.Code,
		IssuedAt:     t.IssuedAt,
	}
}

func ToPaymentReceiptResponse(r *service.PaymentReceipt) PaymentReceiptResponse {
	resp := PaymentReceiptResponse{
		PaymentID:     r.Payment.ID,
		TransactionID: r.Payment.TransactionID,
		BookingID:     r.Booking.ID,
		Reference:     r.Booking.Reference,
		AmountCents:   r.Payment.AmountCents,
		Method:        r.Payment.Method,
		Tickets:       make([]TicketResponse, 0, len(r.Tickets)),
	}
	for i := range r.Tickets {
		resp.Tickets = append(resp.Tickets, ToTicketResponse(&r.Tickets[i]))
	}
	return resp
}

func ToWaitlistResponse(w *models.WaitingListEntry) WaitlistResponse {
	return WaitlistResponse{
		ID:        w.ID,
		EventID:   w.EventID,
		MemberID:  w.MemberID,
		Status:    w.Status,
		CreatedAt: w.CreatedAt,
	}
}

func ToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		EventID:   r.EventID,
		MemberID:  r.MemberID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func ToPromoCodeResponse(p *models.PromoCode) PromoCodeResponse {
	return PromoCodeResponse{
		ID:            p.ID,
		Code:          p.Code,
		DiscountType:  p.DiscountType,
		DiscountValue: p.DiscountValue,
		StartAt:       p.StartAt,
		EndAt:         p.EndAt,
		IsActive:      p.IsActive,
	}
}
