package repository

import (
	"context"

	"github.com/campustix/campus-ticketing/internal/models"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	ExistsForBooking(ctx context.Context, tx *gorm.DB, bookingID uint) (bool, error)
	CreateTickets(ctx context.Context, tx *gorm.DB, tickets []models.Ticket) error
	FindTicketsByBooking(ctx context.Context, bookingID uint) ([]models.Ticket, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) ExistsForBooking(ctx context.Context, tx *gorm.DB, bookingID uint) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Payment{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	return count > 0, err
}

func (r *paymentRepository) CreateTickets(ctx context.Context, tx *gorm.DB, tickets []models.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&tickets).Error
}

func (r *paymentRepository) FindTicketsByBooking(ctx context.Context, bookingID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("id ASC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}
