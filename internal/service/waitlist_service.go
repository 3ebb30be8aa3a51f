package service

import (
	"context"
	"errors"

	"github.com/campustix/campus-ticketing/internal/models"
	"github.com/campustix/campus-ticketing/internal/repository"
	"gorm.io/gorm"
)

// WaitlistService registers members for a full event. There is no
// automatic promotion: organizers work the list manually.
type WaitlistService interface {
	Join(ctx context.Context, memberID string, eventID uint) (*models.WaitingListEntry, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.WaitingListEntry, error)
}

type waitlistService struct {
	waitlistRepo repository.WaitlistRepository
	eventRepo    repository.EventRepository
}

func NewWaitlistService(waitlistRepo repository.WaitlistRepository, eventRepo repository.EventRepository) WaitlistService {
	return &waitlistService{waitlistRepo: waitlistRepo, eventRepo: eventRepo}
}

func (s *waitlistService) Join(ctx context.Context, memberID string, eventID uint) (*models.WaitingListEntry, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if _, err := s.waitlistRepo.FindPending(ctx, eventID, memberID); err == nil {
		return nil, ErrAlreadyWaiting
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entry := &models.WaitingListEntry{
		EventID:  eventID,
		MemberID: memberID,
		Status:   models.WaitlistPending,
	}
	if err := s.waitlistRepo.Create(ctx, entry); err != nil {
		// The partial unique index catches the race between the check
		// above and this insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyWaiting
		}
		return nil, err
	}
	return entry, nil
}

func (s *waitlistService) ListByEvent(ctx context.Context, eventID uint) ([]models.WaitingListEntry, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return s.waitlistRepo.ListByEvent(ctx, eventID)
}
