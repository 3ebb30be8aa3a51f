package repository

import (
	"context"

	"github.com/campustix/campus-ticketing/internal/models"
	"gorm.io/gorm"
)

type PromoRepository interface {
	CreateCode(ctx context.Context, promo *models.PromoCode) error
	FindCodeByCode(ctx context.Context, tx *gorm.DB, code string) (*models.PromoCode, error)
	ListCodes(ctx context.Context) ([]models.PromoCode, error)
	FindBookingPromo(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.BookingPromo, error)
	CreateBookingPromo(ctx context.Context, tx *gorm.DB, bp *models.BookingPromo) error
	DeleteBookingPromo(ctx context.Context, tx *gorm.DB, id uint) error
}

type promoRepository struct {
	db *gorm.DB
}

func NewPromoRepository(db *gorm.DB) PromoRepository {
	return &promoRepository{db: db}
}

func (r *promoRepository) CreateCode(ctx context.Context, promo *models.PromoCode) error {
	return r.db.WithContext(ctx).Create(promo).Error
}

// FindCodeByCode matches the code case-sensitively and exactly.
func (r *promoRepository) FindCodeByCode(ctx context.Context, tx *gorm.DB, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	if err := tx.WithContext(ctx).
		Where("code = ?", code).
		First(&promo).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *promoRepository) ListCodes(ctx context.Context) ([]models.PromoCode, error) {
	var promos []models.PromoCode
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&promos).Error; err != nil {
		return nil, err
	}
	return promos, nil
}

func (r *promoRepository) FindBookingPromo(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.BookingPromo, error) {
	var bp models.BookingPromo
	if err := tx.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&bp).Error; err != nil {
		return nil, err
	}
	return &bp, nil
}

func (r *promoRepository) CreateBookingPromo(ctx context.Context, tx *gorm.DB, bp *models.BookingPromo) error {
	return tx.WithContext(ctx).Create(bp).Error
}

func (r *promoRepository) DeleteBookingPromo(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.BookingPromo{}, id).Error
}
