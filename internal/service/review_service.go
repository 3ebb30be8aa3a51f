package service

import (
	"context"
	"errors"
	"time"

	"github.com/campustix/campus-ticketing/internal/models"
	"github.com/campustix/campus-ticketing/internal/repository"
	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(ctx context.Context, review *models.Review) error
	ListByEvent(ctx context.Context, eventID uint) ([]models.Review, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
	eventRepo   repository.EventRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookingRepo repository.BookingRepository, eventRepo repository.EventRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, bookingRepo: bookingRepo, eventRepo: eventRepo}
}

// CreateReview accepts a review only from a member who paid for the event
// and only after the event has ended.
func (s *reviewService) CreateReview(ctx context.Context, review *models.Review) error {
	event, err := s.eventRepo.FindByID(ctx, review.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if time.Now().Before(event.EndAt) {
		return ErrReviewNotAllowed
	}

	paid, err := s.bookingRepo.ExistsPaidByMemberAndEvent(ctx, review.MemberID, review.EventID)
	if err != nil {
		return err
	}
	if !paid {
		return ErrReviewNotAllowed
	}

	if _, err := s.reviewRepo.FindByMemberAndEvent(ctx, review.MemberID, review.EventID); err == nil {
		return ErrAlreadyReviewed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyReviewed
		}
		return err
	}
	return nil
}

func (s *reviewService) ListByEvent(ctx context.Context, eventID uint) ([]models.Review, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return s.reviewRepo.ListByEvent(ctx, eventID)
}
