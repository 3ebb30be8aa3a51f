package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/campustix/campus-ticketing/internal/models"
	"github.com/campustix/campus-ticketing/internal/repository"
	"github.com/campustix/campus-ticketing/pkg/rabbitmq"
	"gorm.io/gorm"
)

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context, status *models.EventStatus, visibility *models.Visibility) ([]models.Event, error)
	ApproveEvent(ctx context.Context, id uint, publish bool) (*models.Event, error)
	RejectEvent(ctx context.Context, id uint) (*models.Event, error)
	PublishEvent(ctx context.Context, id uint) (*models.Event, error)
	CreateTicketType(ctx context.Context, tt *models.TicketType) error
	ListTicketTypes(ctx context.Context, eventID uint) ([]models.TicketType, error)
}

type eventService struct {
	eventRepo      repository.EventRepository
	ticketTypeRepo repository.TicketTypeRepository
	publisher      *rabbitmq.Publisher
}

func NewEventService(eventRepo repository.EventRepository, ticketTypeRepo repository.TicketTypeRepository, publisher *rabbitmq.Publisher) EventService {
	return &eventService{eventRepo: eventRepo, ticketTypeRepo: ticketTypeRepo, publisher: publisher}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.EndAt.Before(event.StartAt) {
		return ErrInvalidSchedule
	}
	if event.IsOnline && event.OnlineLink == "" {
		return ErrInvalidVenue
	}
	if !event.IsOnline && event.OnlineLink != "" {
		return ErrInvalidVenue
	}

	event.Status = models.EventPendingApproval
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, status *models.EventStatus, visibility *models.Visibility) ([]models.Event, error) {
	return s.eventRepo.FindAll(ctx, status, visibility)
}

// ApproveEvent moves a pending event forward: publish=true opens it for
// booking right away, publish=false parks it at pending_upcoming until an
// explicit PublishEvent call.
func (s *eventService) ApproveEvent(ctx context.Context, id uint, publish bool) (*models.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventPendingApproval {
		return nil, ErrInvalidStatusTransition
	}

	next := models.EventPendingUpcoming
	routingKey := "event.approved"
	if publish {
		next = models.EventPublished
		routingKey = "event.published"
	}
	if err := s.eventRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	event.Status = next

	if s.publisher != nil {
		_ = s.publisher.Publish(routingKey, event)
	}
	return event, nil
}

func (s *eventService) RejectEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventPendingApproval {
		return nil, ErrInvalidStatusTransition
	}
	if err := s.eventRepo.UpdateStatus(ctx, id, models.EventRejected); err != nil {
		return nil, err
	}
	event.Status = models.EventRejected
	return event, nil
}

func (s *eventService) PublishEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventPendingUpcoming {
		return nil, ErrInvalidStatusTransition
	}
	if err := s.eventRepo.UpdateStatus(ctx, id, models.EventPublished); err != nil {
		return nil, err
	}
	event.Status = models.EventPublished

	if s.publisher != nil {
		_ = s.publisher.Publish("event.published", event)
	}
	return event, nil
}

func (s *eventService) CreateTicketType(ctx context.Context, tt *models.TicketType) error {
	event, err := s.GetEvent(ctx, tt.EventID)
	if err != nil {
		return err
	}
	if event.Status == models.EventRejected {
		return ErrInvalidStatusTransition
	}
	if tt.SalesEndAt.Before(tt.SalesStartAt) {
		return ErrInvalidSchedule
	}
	return s.ticketTypeRepo.Create(ctx, tt)
}

func (s *eventService) ListTicketTypes(ctx context.Context, eventID uint) ([]models.TicketType, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.ticketTypeRepo.FindByEventID(ctx, eventID)
}
