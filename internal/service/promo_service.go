package service

import (
	"context"
	"errors"
	"time"

	"github.com/campustix/campus-ticketing/internal/models"
	"github.com/campustix/campus-ticketing/internal/repository"
	"gorm.io/gorm"
)

type PromoService interface {
	// Evaluate validates a code against its active flag and validity window
	// and prices it against the given total. It never mutates anything.
	Evaluate(ctx context.Context, tx *gorm.DB, code string, totalCents int64, now time.Time) (*models.PromoCode, int64, error)
	Apply(ctx context.Context, bookingID uint, code string) (*models.Booking, error)
	Remove(ctx context.Context, bookingID uint) (*models.Booking, error)
	CreateCode(ctx context.Context, promo *models.PromoCode) error
	ListCodes(ctx context.Context) ([]models.PromoCode, error)
}

type promoService struct {
	promoRepo   repository.PromoRepository
	bookingRepo repository.BookingRepository
}

func NewPromoService(promoRepo repository.PromoRepository, bookingRepo repository.BookingRepository) PromoService {
	return &promoService{promoRepo: promoRepo, bookingRepo: bookingRepo}
}

// computeDiscount prices a promo against a total in cents. Percentage
// discounts truncate toward zero; the result is always clamped to the
// total so a booking can never go negative.
func computeDiscount(promo *models.PromoCode, totalCents int64) int64 {
	var discount int64
	switch promo.DiscountType {
	case models.DiscountPercentage:
		discount = totalCents * promo.DiscountValue / 100
	case models.DiscountFixed:
		discount = promo.DiscountValue
	}
	if discount > totalCents {
		discount = totalCents
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

func (s *promoService) Evaluate(ctx context.Context, tx *gorm.DB, code string, totalCents int64, now time.Time) (*models.PromoCode, int64, error) {
	promo, err := s.promoRepo.FindCodeByCode(ctx, tx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrPromoNotFound
		}
		return nil, 0, err
	}
	if !promo.ValidAt(now) {
		return nil, 0, ErrPromoNotFound
	}
	return promo, computeDiscount(promo, totalCents), nil
}

func (s *promoService) Apply(ctx context.Context, bookingID uint, code string) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.PaymentStatus == models.PaymentPaid || booking.Status == models.BookingCancelled {
			return ErrBookingNotEligible
		}

		if _, err := s.promoRepo.FindBookingPromo(ctx, tx, bookingID); err == nil {
			return ErrPromoAlreadyApplied
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now()
		promo, discount, err := s.Evaluate(ctx, tx, code, booking.TotalAmountCents, now)
		if err != nil {
			return err
		}

		bp := &models.BookingPromo{
			BookingID:     booking.ID,
			PromoCodeID:   promo.ID,
			DiscountCents: discount,
			AppliedAt:     now.UTC(),
		}
		if err := s.promoRepo.CreateBookingPromo(ctx, tx, bp); err != nil {
			return err
		}

		booking.TotalAmountCents -= discount
		if err := s.bookingRepo.UpdateTotal(ctx, tx, booking.ID, booking.TotalAmountCents); err != nil {
			return err
		}

		booking.Promo = bp
		result = booking
		return nil
	})

	return result, err
}

// Remove detaches the applied promo and adds back the stored discount
// amount. Recomputing from the promo's current parameters would drift if
// the code was edited after application, so the stored cents are used
// verbatim and the pre-application total is restored exactly.
func (s *promoService) Remove(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.PaymentStatus == models.PaymentPaid || booking.Status == models.BookingCancelled {
			return ErrBookingNotEligible
		}

		bp, err := s.promoRepo.FindBookingPromo(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPromoNotApplied
			}
			return err
		}

		booking.TotalAmountCents += bp.DiscountCents
		if err := s.bookingRepo.UpdateTotal(ctx, tx, booking.ID, booking.TotalAmountCents); err != nil {
			return err
		}
		if err := s.promoRepo.DeleteBookingPromo(ctx, tx, bp.ID); err != nil {
			return err
		}

		booking.Promo = nil
		result = booking
		return nil
	})

	return result, err
}

func (s *promoService) CreateCode(ctx context.Context, promo *models.PromoCode) error {
	return s.promoRepo.CreateCode(ctx, promo)
}

func (s *promoService) ListCodes(ctx context.Context) ([]models.PromoCode, error) {
	return s.promoRepo.ListCodes(ctx)
}
