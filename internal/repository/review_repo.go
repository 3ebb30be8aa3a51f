package repository

import (
	"context"

	"github.com/campustix/campus-ticketing/internal/models"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByMemberAndEvent(ctx context.Context, memberID string, eventID uint) (*models.Review, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByMemberAndEvent(ctx context.Context, memberID string, eventID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND event_id = ?", memberID, eventID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByEvent(ctx context.Context, eventID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
