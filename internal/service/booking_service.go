package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campustix/campus-ticketing/internal/models"
	"github.com/campustix/campus-ticketing/internal/repository"
	"github.com/campustix/campus-ticketing/pkg/rabbitmq"
	"github.com/campustix/campus-ticketing/pkg/reference"
	"gorm.io/gorm"
)

// BookingLine is one requested ticket type and quantity.
type BookingLine struct {
	TicketTypeID uint
	Quantity     int
}

type CreateBookingInput struct {
	MemberID   string
	MemberRole models.Role
	EventID    uint
	Lines      []BookingLine
	PromoCode  string
}

// CreateBookingResult carries the booking plus a non-fatal warning when a
// supplied promo code could not be applied: a bad code degrades the
// booking to full price instead of aborting checkout.
type CreateBookingResult struct {
	Booking      *models.Booking
	PromoWarning string
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListByMember(ctx context.Context, memberID string) ([]models.Booking, error)
	ListByEvent(ctx context.Context, eventID uint, status *models.BookingStatus) ([]models.Booking, error)
	CancelBooking(ctx context.Context, id uint) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo    repository.BookingRepository
	eventRepo      repository.EventRepository
	ticketTypeRepo repository.TicketTypeRepository
	promoRepo      repository.PromoRepository
	promoSvc       PromoService
	inventory      InventoryService
	publisher      *rabbitmq.Publisher
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	eventRepo repository.EventRepository,
	ticketTypeRepo repository.TicketTypeRepository,
	promoRepo repository.PromoRepository,
	promoSvc PromoService,
	inventory InventoryService,
	publisher *rabbitmq.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		ticketTypeRepo: ticketTypeRepo,
		promoRepo:      promoRepo,
		promoSvc:       promoSvc,
		inventory:      inventory,
		publisher:      publisher,
	}
}

// mergeLines folds duplicate ticket-type lines together, preserving the
// order types were first requested in. A selection with no positive
// quantities at all is empty; a non-positive quantity alongside valid
// lines is a distinct validation error.
func mergeLines(lines []BookingLine) ([]uint, map[uint]int, error) {
	order := make([]uint, 0, len(lines))
	merged := make(map[uint]int, len(lines))
	invalid := false
	for _, l := range lines {
		if l.Quantity <= 0 {
			invalid = true
			continue
		}
		if _, seen := merged[l.TicketTypeID]; !seen {
			order = append(order, l.TicketTypeID)
		}
		merged[l.TicketTypeID] += l.Quantity
	}
	if len(order) == 0 {
		return nil, nil, ErrEmptySelection
	}
	if invalid {
		return nil, nil, ErrInvalidQuantity
	}
	return order, merged, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error) {
	ids, merged, err := mergeLines(in.Lines)
	if err != nil {
		return nil, err
	}

	var result *CreateBookingResult

	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the event row first: the remaining-seat reads below and the
		// inserts at the bottom form one admission decision, and the lock
		// serializes concurrent decisions for the same event.
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, in.EventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if event.Status != models.EventPublished {
			return ErrEventNotBookable
		}
		if event.Visibility == models.VisibilityUniversity && in.MemberRole == models.RoleExternal {
			return ErrEventRestricted
		}

		now := time.Now()
		types, err := s.ticketTypeRepo.FindOnSaleByIDs(ctx, tx, event.ID, ids, now)
		if err != nil {
			return err
		}
		// Partial fulfillment is not supported: one missing, inactive or
		// out-of-window type aborts the whole booking.
		if len(types) != len(ids) {
			return ErrTicketTypeUnavailable
		}
		byID := make(map[uint]*models.TicketType, len(types))
		for i := range types {
			byID[types[i].ID] = &types[i]
		}

		totalQty := 0
		var rawTotal int64
		items := make([]models.BookingItem, 0, len(ids))
		for _, id := range ids {
			tt := byID[id]
			qty := merged[id]
			available, err := s.inventory.RemainingForTypeTx(ctx, tx, tt)
			if err != nil {
				return err
			}
			if qty > available {
				return &InsufficientSeatsError{TicketTypeID: tt.ID, Requested: qty, Available: available}
			}
			totalQty += qty
			rawTotal += int64(qty) * tt.PriceCents
			items = append(items, models.BookingItem{
				TicketTypeID:   tt.ID,
				Quantity:       qty,
				UnitPriceCents: tt.PriceCents,
				LineTotalCents: int64(qty) * tt.PriceCents,
			})
		}

		eventRemaining, err := s.inventory.RemainingForEventTx(ctx, tx, event)
		if err != nil {
			return err
		}
		// Not an error in the usual sense: the handler turns this into an
		// offer to join the waiting list.
		if totalQty > eventRemaining {
			return ErrEventFull
		}

		var discount int64
		var promoID uint
		var warning string
		if in.PromoCode != "" {
			promo, d, err := s.promoSvc.Evaluate(ctx, tx, in.PromoCode, rawTotal, now)
			switch {
			case err == nil:
				discount = d
				promoID = promo.ID
			case errors.Is(err, ErrPromoNotFound):
				warning = fmt.Sprintf("promo code %q was not applied: %v", in.PromoCode, err)
			default:
				return err
			}
		}

		ref, err := reference.NewBookingRef()
		if err != nil {
			return err
		}
		booking := &models.Booking{
			Reference:        ref,
			EventID:          event.ID,
			MemberID:         in.MemberID,
			MemberRole:       in.MemberRole,
			Status:           models.BookingPendingPayment,
			PaymentStatus:    models.PaymentUnpaid,
			TotalAmountCents: rawTotal - discount,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}
		for i := range items {
			items[i].BookingID = booking.ID
		}
		if err := s.bookingRepo.CreateItems(ctx, tx, items); err != nil {
			return err
		}
		booking.Items = items

		if promoID != 0 {
			bp := &models.BookingPromo{
				BookingID:     booking.ID,
				PromoCodeID:   promoID,
				DiscountCents: discount,
				AppliedAt:     now.UTC(),
			}
			if err := s.promoRepo.CreateBookingPromo(ctx, tx, bp); err != nil {
				return err
			}
			booking.Promo = bp
		}

		result = &CreateBookingResult{Booking: booking, PromoWarning: warning}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("booking.created", result.Booking)
	}
	return result, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListByMember(ctx context.Context, memberID string) ([]models.Booking, error) {
	return s.bookingRepo.FindByMember(ctx, memberID)
}

func (s *bookingService) ListByEvent(ctx context.Context, eventID uint, status *models.BookingStatus) ([]models.Booking, error) {
	return s.bookingRepo.FindByEventID(ctx, eventID, status)
}

// CancelBooking cancels an unpaid booking. A cancelled booking never held
// paid inventory, so no seats need releasing. Paid bookings are refused:
// refunds are outside this system.
func (s *bookingService) CancelBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.PaymentStatus == models.PaymentPaid || booking.Status == models.BookingCancelled {
			return ErrBookingNotEligible
		}
		if err := s.bookingRepo.UpdateStatus(ctx, tx, booking.ID, models.BookingCancelled); err != nil {
			return err
		}
		booking.Status = models.BookingCancelled
		result = booking
		return nil
	})

	return result, err
}
