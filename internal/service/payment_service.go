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
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentReceipt struct {
	Payment *models.Payment
	Booking *models.Booking
	Tickets []models.Ticket
}

type PaymentService interface {
	Pay(ctx context.Context, bookingID uint, method models.PaymentMethod, externalRef string) (*PaymentReceipt, error)
	ListTickets(ctx context.Context, bookingID uint) ([]models.Ticket, error)
}

type paymentService struct {
	bookingRepo    repository.BookingRepository
	eventRepo      repository.EventRepository
	ticketTypeRepo repository.TicketTypeRepository
	paymentRepo    repository.PaymentRepository
	inventory      InventoryService
	publisher      *rabbitmq.Publisher
}

func NewPaymentService(
	bookingRepo repository.BookingRepository,
	eventRepo repository.EventRepository,
	ticketTypeRepo repository.TicketTypeRepository,
	paymentRepo repository.PaymentRepository,
	inventory InventoryService,
	publisher *rabbitmq.Publisher,
) PaymentService {
	return &paymentService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		ticketTypeRepo: ticketTypeRepo,
		paymentRepo:    paymentRepo,
		inventory:      inventory,
		publisher:      publisher,
	}
}

// Pay records the payment, flips the booking to confirmed/paid and issues
// one ticket per purchased seat, all in a single transaction. The amount
// is the booking total at pay time, never caller-supplied. A second call
// for the same booking fails with ErrAlreadyPaid and changes nothing.
func (s *paymentService) Pay(ctx context.Context, bookingID uint, method models.PaymentMethod, externalRef string) (*PaymentReceipt, error) {
	var receipt *PaymentReceipt

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.PaymentStatus == models.PaymentPaid {
			return ErrAlreadyPaid
		}
		exists, err := s.paymentRepo.ExistsForBooking(ctx, tx, booking.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyPaid
		}
		if booking.Status == models.BookingCancelled {
			return ErrBookingNotEligible
		}

		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, booking.EventID)
		if err != nil {
			return err
		}
		items, err := s.bookingRepo.FindItems(ctx, tx, booking.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("booking %d has no items", booking.ID)
		}

		// Unpaid bookings hold no inventory, so seats admitted at creation
		// may have been consumed by another booking that paid first.
		// Re-verify under the event lock before this booking starts
		// counting against the ledger.
		totalQty := 0
		for _, item := range items {
			tt, err := s.ticketTypeRepo.FindByIDTx(ctx, tx, item.TicketTypeID)
			if err != nil {
				return err
			}
			available, err := s.inventory.RemainingForTypeTx(ctx, tx, tt)
			if err != nil {
				return err
			}
			if item.Quantity > available {
				return &InsufficientSeatsError{TicketTypeID: tt.ID, Requested: item.Quantity, Available: available}
			}
			totalQty += item.Quantity
		}
		eventRemaining, err := s.inventory.RemainingForEventTx(ctx, tx, event)
		if err != nil {
			return err
		}
		if totalQty > eventRemaining {
			return ErrEventFull
		}

		now := time.Now().UTC()
		payment := &models.Payment{
			BookingID:     booking.ID,
			AmountCents:   booking.TotalAmountCents,
			Method:        method,
			TransactionID: uuid.New().String(),
			ExternalRef:   externalRef,
		}
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return err
		}
		if err := s.bookingRepo.MarkPaid(ctx, tx, booking.ID); err != nil {
			return err
		}

		tickets := make([]models.Ticket, 0, totalQty)
		seq := 0
		for _, item := range items {
			for i := 0; i < item.Quantity; i++ {
				seq++
				code, err := reference.TicketCode(booking.ID, booking.MemberID, seq)
				if err != nil {
					return err
				}
				tickets = append(tickets, models.Ticket{
					BookingID:    booking.ID,
					TicketTypeID: item.TicketTypeID,
					Code:         code,
					IssuedAt:     now,
				})
			}
		}
		if err := s.paymentRepo.CreateTickets(ctx, tx, tickets); err != nil {
			return err
		}

		booking.Status = models.BookingConfirmed
		booking.PaymentStatus = models.PaymentPaid
		booking.Items = items
		receipt = &PaymentReceipt{Payment: payment, Booking: booking, Tickets: tickets}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("booking.paid", receipt.Booking)
	}
	return receipt, nil
}

func (s *paymentService) ListTickets(ctx context.Context, bookingID uint) ([]models.Ticket, error) {
	if _, err := s.bookingRepo.FindByID(ctx, bookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return s.paymentRepo.FindTicketsByBooking(ctx, bookingID)
}
