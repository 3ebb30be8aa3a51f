package repository

import (
	"context"

	"github.com/campustix/campus-ticketing/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	CreateItems(ctx context.Context, tx *gorm.DB, items []models.BookingItem) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	FindItems(ctx context.Context, tx *gorm.DB, bookingID uint) ([]models.BookingItem, error)
	FindByMember(ctx context.Context, memberID string) ([]models.Booking, error)
	FindByEventID(ctx context.Context, eventID uint, status *models.BookingStatus) ([]models.Booking, error)
	UpdateTotal(ctx context.Context, tx *gorm.DB, bookingID uint, totalCents int64) error
	MarkPaid(ctx context.Context, tx *gorm.DB, bookingID uint) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error
	SumPaidQuantityByType(ctx context.Context, tx *gorm.DB, ticketTypeID uint) (int64, error)
	SumPaidQuantityByEvent(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error)
	ExistsPaidByMemberAndEvent(ctx context.Context, memberID string, eventID uint) (bool, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) CreateItems(ctx context.Context, tx *gorm.DB, items []models.BookingItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Promo").
		First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate locks the booking row. Callers that also touch the
// event row must lock the event first to keep lock ordering consistent.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindItems(ctx context.Context, tx *gorm.DB, bookingID uint) ([]models.BookingItem, error) {
	var items []models.BookingItem
	if err := tx.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *bookingRepository) FindByMember(ctx context.Context, memberID string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Promo").
		Where("member_id = ?", memberID).
		Order("id DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByEventID(ctx context.Context, eventID uint, status *models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Preload("Items").Where("event_id = ?", eventID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateTotal(ctx context.Context, tx *gorm.DB, bookingID uint, totalCents int64) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("total_amount_cents", totalCents).Error
}

func (r *bookingRepository) MarkPaid(ctx context.Context, tx *gorm.DB, bookingID uint) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]interface{}{
			"status":         models.BookingConfirmed,
			"payment_status": models.PaymentPaid,
		}).Error
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

// SumPaidQuantityByType totals the seats sold for a ticket type. Only items
// whose parent booking is paid consume inventory; pending and cancelled
// bookings never count.
func (r *bookingRepository) SumPaidQuantityByType(ctx context.Context, tx *gorm.DB, ticketTypeID uint) (int64, error) {
	var total int64
	err := tx.WithContext(ctx).
		Model(&models.BookingItem{}).
		Joins("JOIN bookings ON bookings.id = booking_items.booking_id").
		Where("booking_items.ticket_type_id = ? AND bookings.payment_status = ?", ticketTypeID, models.PaymentPaid).
		Select("COALESCE(SUM(booking_items.quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *bookingRepository) SumPaidQuantityByEvent(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error) {
	var total int64
	err := tx.WithContext(ctx).
		Model(&models.BookingItem{}).
		Joins("JOIN bookings ON bookings.id = booking_items.booking_id").
		Where("bookings.event_id = ? AND bookings.payment_status = ?", eventID, models.PaymentPaid).
		Select("COALESCE(SUM(booking_items.quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *bookingRepository) ExistsPaidByMemberAndEvent(ctx context.Context, memberID string, eventID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("member_id = ? AND event_id = ? AND payment_status = ?", memberID, eventID, models.PaymentPaid).
		Count(&count).Error
	return count > 0, err
}
