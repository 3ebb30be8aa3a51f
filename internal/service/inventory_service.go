package service

import (
	"context"
	"errors"
	"time"

	"github.com/campustix/campus-ticketing/internal/models"
	"github.com/campustix/campus-ticketing/internal/repository"
	"gorm.io/gorm"
)

// TypeAvailability is one row of an event's availability report.
type TypeAvailability struct {
	TicketTypeID uint   `json:"ticket_type_id"`
	Name         string `json:"name"`
	PriceCents   int64  `json:"price_cents"`
	SeatLimit    int    `json:"seat_limit"`
	Remaining    int    `json:"remaining"`
	OnSale       bool   `json:"on_sale"`
}

type Availability struct {
	EventID   uint               `json:"event_id"`
	Capacity  int                `json:"capacity"`
	Remaining int                `json:"remaining"`
	Types     []TypeAvailability `json:"types"`
}

// InventoryService derives remaining seats from paid bookings at read time.
// There is no maintained counter to drift: the sums are always consistent
// with the committed paid-booking set. The Tx variants run the same sums
// inside a caller-held transaction so admission checks see locked state.
type InventoryService interface {
	RemainingForType(ctx context.Context, ticketTypeID uint) (int, error)
	RemainingForEvent(ctx context.Context, eventID uint) (int, error)
	RemainingForTypeTx(ctx context.Context, tx *gorm.DB, tt *models.TicketType) (int, error)
	RemainingForEventTx(ctx context.Context, tx *gorm.DB, event *models.Event) (int, error)
	Availability(ctx context.Context, eventID uint) (*Availability, error)
}

type inventoryService struct {
	eventRepo      repository.EventRepository
	ticketTypeRepo repository.TicketTypeRepository
	bookingRepo    repository.BookingRepository
}

func NewInventoryService(eventRepo repository.EventRepository, ticketTypeRepo repository.TicketTypeRepository, bookingRepo repository.BookingRepository) InventoryService {
	return &inventoryService{
		eventRepo:      eventRepo,
		ticketTypeRepo: ticketTypeRepo,
		bookingRepo:    bookingRepo,
	}
}

func (s *inventoryService) RemainingForType(ctx context.Context, ticketTypeID uint) (int, error) {
	tt, err := s.ticketTypeRepo.FindByID(ctx, ticketTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrTicketTypeNotFound
		}
		return 0, err
	}
	return s.RemainingForTypeTx(ctx, s.bookingRepo.GetDB(), tt)
}

func (s *inventoryService) RemainingForEvent(ctx context.Context, eventID uint) (int, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrEventNotFound
		}
		return 0, err
	}
	return s.RemainingForEventTx(ctx, s.bookingRepo.GetDB(), event)
}

func (s *inventoryService) RemainingForTypeTx(ctx context.Context, tx *gorm.DB, tt *models.TicketType) (int, error) {
	sold, err := s.bookingRepo.SumPaidQuantityByType(ctx, tx, tt.ID)
	if err != nil {
		return 0, err
	}
	remaining := tt.SeatLimit - int(sold)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *inventoryService) RemainingForEventTx(ctx context.Context, tx *gorm.DB, event *models.Event) (int, error) {
	sold, err := s.bookingRepo.SumPaidQuantityByEvent(ctx, tx, event.ID)
	if err != nil {
		return 0, err
	}
	remaining := event.Capacity - int(sold)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *inventoryService) Availability(ctx context.Context, eventID uint) (*Availability, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	db := s.bookingRepo.GetDB()
	remaining, err := s.RemainingForEventTx(ctx, db, event)
	if err != nil {
		return nil, err
	}

	types, err := s.ticketTypeRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &Availability{
		EventID:   event.ID,
		Capacity:  event.Capacity,
		Remaining: remaining,
		Types:     make([]TypeAvailability, 0, len(types)),
	}
	for i := range types {
		tt := &types[i]
		left, err := s.RemainingForTypeTx(ctx, db, tt)
		if err != nil {
			return nil, err
		}
		report.Types = append(report.Types, TypeAvailability{
			TicketTypeID: tt.ID,
			Name:         tt.Name,
			PriceCents:   tt.PriceCents,
			SeatLimit:    tt.SeatLimit,
			Remaining:    left,
			OnSale:       tt.OnSale(now),
		})
	}
	return report, nil
}
