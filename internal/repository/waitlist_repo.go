package repository

import (
	"context"

	"github.com/campustix/campus-ticketing/internal/models"
	"gorm.io/gorm"
)

type WaitlistRepository interface {
	Create(ctx context.Context, entry *models.WaitingListEntry) error
	FindPending(ctx context.Context, eventID uint, memberID string) (*models.WaitingListEntry, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.WaitingListEntry, error)
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (r *waitlistRepository) Create(ctx context.Context, entry *models.WaitingListEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *waitlistRepository) FindPending(ctx context.Context, eventID uint, memberID string) (*models.WaitingListEntry, error) {
	var entry models.WaitingListEntry
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND member_id = ? AND status = ?", eventID, memberID, models.WaitlistPending).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *waitlistRepository) ListByEvent(ctx context.Context, eventID uint) ([]models.WaitingListEntry, error) {
	var entries []models.WaitingListEntry
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
