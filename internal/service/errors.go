package service

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound           = errors.New("event not found")
	ErrEventNotBookable        = errors.New("event is not open for booking")
	ErrEventRestricted         = errors.New("event is restricted to university members")
	ErrEventFull               = errors.New("event is at capacity")
	ErrEmptySelection          = errors.New("booking selection is empty")
	ErrInvalidQuantity         = errors.New("ticket quantities must be positive")
	ErrTicketTypeUnavailable   = errors.New("one or more ticket types are unavailable")
	ErrTicketTypeNotFound      = errors.New("ticket type not found")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingNotEligible      = errors.New("booking is not eligible for this operation")
	ErrAlreadyPaid             = errors.New("booking is already paid")
	ErrPromoNotFound           = errors.New("promo code not found or not valid")
	ErrPromoAlreadyApplied     = errors.New("a promo code is already applied to this booking")
	ErrPromoNotApplied         = errors.New("no promo code is applied to this booking")
	ErrAlreadyWaiting          = errors.New("member is already on the waiting list")
	ErrReviewNotAllowed        = errors.New("reviews require a paid booking for an ended event")
	ErrAlreadyReviewed         = errors.New("member has already reviewed this event")
	ErrInvalidSchedule         = errors.New("event end must not be before its start")
	ErrInvalidVenue            = errors.New("online events require a link and in-person events must not have one")
	ErrInvalidStatusTransition = errors.New("invalid event status transition")
)

// InsufficientSeatsError reports which ticket type ran out so callers can
// tell the member how many seats are actually left.
type InsufficientSeatsError struct {
	TicketTypeID uint
	Requested    int
	Available    int
}

func (e *InsufficientSeatsError) Error() string {
	return fmt.Sprintf("ticket type %d has %d seats left, %d requested", e.TicketTypeID, e.Available, e.Requested)
}
