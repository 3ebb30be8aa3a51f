package repository

import (
	"context"
	"time"

	"github.com/campustix/campus-ticketing/internal/models"
	"gorm.io/gorm"
)

type TicketTypeRepository interface {
	Create(ctx context.Context, tt *models.TicketType) error
	FindByID(ctx context.Context, id uint) (*models.TicketType, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*models.TicketType, error)
	FindByEventID(ctx context.Context, eventID uint) ([]models.TicketType, error)
	FindOnSaleByIDs(ctx context.Context, tx *gorm.DB, eventID uint, ids []uint, now time.Time) ([]models.TicketType, error)
}

type ticketTypeRepository struct {
	db *gorm.DB
}

func NewTicketTypeRepository(db *gorm.DB) TicketTypeRepository {
	return &ticketTypeRepository{db: db}
}

func (r *ticketTypeRepository) Create(ctx context.Context, tt *models.TicketType) error {
	return r.db.WithContext(ctx).Create(tt).Error
}

func (r *ticketTypeRepository) FindByID(ctx context.Context, id uint) (*models.TicketType, error) {
	var tt models.TicketType
	if err := r.db.WithContext(ctx).First(&tt, id).Error; err != nil {
		return nil, err
	}
	return &tt, nil
}

func (r *ticketTypeRepository) FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*models.TicketType, error) {
	var tt models.TicketType
	if err := tx.WithContext(ctx).First(&tt, id).Error; err != nil {
		return nil, err
	}
	return &tt, nil
}

func (r *ticketTypeRepository) FindByEventID(ctx context.Context, eventID uint) ([]models.TicketType, error) {
	var types []models.TicketType
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// FindOnSaleByIDs loads the requested ticket types restricted to the given
// event, active flag and current sales window. Callers compare the result
// size against the request size: any missing type means the type is
// unknown, inactive, belongs to another event or is outside its window.
func (r *ticketTypeRepository) FindOnSaleByIDs(ctx context.Context, tx *gorm.DB, eventID uint, ids []uint, now time.Time) ([]models.TicketType, error) {
	var types []models.TicketType
	err := tx.WithContext(ctx).
		Where("event_id = ? AND id IN ? AND is_active = ? AND sales_start_at <= ? AND sales_end_at >= ?",
			eventID, ids, true, now, now).
		Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}
