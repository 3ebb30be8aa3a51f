package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/campustix/campus-ticketing/internal/dto"
	"github.com/campustix/campus-ticketing/internal/models"
	"github.com/campustix/campus-ticketing/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn       func(ctx context.Context, in service.CreateBookingInput) (*service.CreateBookingResult, error)
	getFn          func(ctx context.Context, id uint) (*models.Booking, error)
	listByMemberFn func(ctx context.Context, memberID string) ([]models.Booking, error)
	listByEventFn  func(ctx context.Context, eventID uint, status *models.BookingStatus) ([]models.Booking, error)
	cancelFn       func(ctx context.Context, id uint) (*models.Booking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, in service.CreateBookingInput) (*service.CreateBookingResult, error) {
	return m.createFn(ctx, in)
}
func (m *mockBookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return m.getFn(ctx, id)
}
func (m *mockBookingService) ListByMember(ctx context.Context, memberID string) ([]models.Booking, error) {
	return m.listByMemberFn(ctx, memberID)
}
func (m *mockBookingService) ListByEvent(ctx context.Context, eventID uint, status *models.BookingStatus) ([]models.Booking, error) {
	return m.listByEventFn(ctx, eventID, status)
}
func (m *mockBookingService) CancelBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return m.cancelFn(ctx, id)
}

// --- Mock PromoService ---

type mockPromoService struct {
	applyFn  func(ctx context.Context, bookingID uint, code string) (*models.Booking, error)
	removeFn func(ctx context.Context, bookingID uint) (*models.Booking, error)
}

func (m *mockPromoService) Evaluate(ctx context.Context, tx *gorm.DB, code string, totalCents int64, now time.Time) (*models.PromoCode, int64, error) {
	return nil, 0, nil
}
func (m *mockPromoService) Apply(ctx context.Context, bookingID uint, code string) (*models.Booking, error) {
	return m.applyFn(ctx, bookingID, code)
}
func (m *mockPromoService) Remove(ctx context.Context, bookingID uint) (*models.Booking, error) {
	return m.removeFn(ctx, bookingID)
}
func (m *mockPromoService) CreateCode(ctx context.Context, promo *models.PromoCode) error { return nil }
func (m *mockPromoService) ListCodes(ctx context.Context) ([]models.PromoCode, error) {
	return nil, nil
}

// --- Mock PaymentService ---

type mockPaymentService struct {
	payFn         func(ctx context.Context, bookingID uint, method models.PaymentMethod, externalRef string) (*service.PaymentReceipt, error)
	listTicketsFn func(ctx context.Context, bookingID uint) ([]models.Ticket, error)
}

func (m *mockPaymentService) Pay(ctx context.Context, bookingID uint, method models.PaymentMethod, externalRef string) (*service.PaymentReceipt, error) {
	return m.payFn(ctx, bookingID, method, externalRef)
}
func (m *mockPaymentService) ListTickets(ctx context.Context, bookingID uint) ([]models.Ticket, error) {
	return m.listTicketsFn(ctx, bookingID)
}

// --- Tests ---

func newBookingContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateBooking_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*service.CreateBookingResult, error) {
			return &service.CreateBookingResult{
				Booking: &models.Booking{
					ID:               1,
					Reference:        "BK-ABCDEFGHIJKLMNOPQRS",
					EventID:          in.EventID,
					MemberID:         in.MemberID,
					Status:           models.BookingPendingPayment,
					PaymentStatus:    models.PaymentUnpaid,
					TotalAmountCents: 5000,
					Items: []models.BookingItem{
						{TicketTypeID: 2, Quantity: 2, UnitPriceCents: 2500, LineTotalCents: 5000},
					},
					CreatedAt: time.Now(),
				},
			}, nil
		},
	}

	e := echo.New()
	body := `{"member_id":"m-1","member_role":"university_member","event_id":1,"items":[{"ticket_type_id":2,"quantity":2}]}`
	c, rec := newBookingContext(e, http.MethodPost, "/api/v1/bookings", body)

	h := NewBookingHandler(svc, nil, nil)
	err := h.CreateBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, models.BookingPendingPayment, resp.Status)
	assert.Equal(t, int64(5000), resp.TotalAmountCents)
	assert.Len(t, resp.Items, 1)
	assert.Empty(t, resp.PromoWarning)
}

func TestCreateBooking_Handler_PromoWarning(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*service.CreateBookingResult, error) {
			return &service.CreateBookingResult{
				Booking: &models.Booking{
					ID:               3,
					Reference:        "BK-WARN",
					EventID:          in.EventID,
					MemberID:         in.MemberID,
					Status:           models.BookingPendingPayment,
					TotalAmountCents: 5000,
				},
				PromoWarning: "promo code not applied: promo code not found",
			}, nil
		},
	}

	e := echo.New()
	body := `{"member_id":"m-1","event_id":1,"items":[{"ticket_type_id":2,"quantity":1}],"promo_code":"NOPE"}`
	c, rec := newBookingContext(e, http.MethodPost, "/api/v1/bookings", body)

	h := NewBookingHandler(svc, nil, nil)
	err := h.CreateBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5000), resp.TotalAmountCents)
	assert.Contains(t, resp.PromoWarning, "not applied")
}

func TestCreateBooking_Handler_MissingMemberID(t *testing.T) {
	e := echo.New()
	body := `{"event_id":1,"items":[{"ticket_type_id":2,"quantity":1}]}`
	c, _ := newBookingContext(e, http.MethodPost, "/api/v1/bookings", body)

	h := NewBookingHandler(nil, nil, nil)
	err := h.CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateBooking_Handler_EmptySelection(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*service.CreateBookingResult, error) {
			return nil, service.ErrEmptySelection
		},
	}

	e := echo.New()
	body := `{"member_id":"m-1","event_id":1,"items":[]}`
	c, _ := newBookingContext(e, http.MethodPost, "/api/v1/bookings", body)

	h := NewBookingHandler(svc, nil, nil)
	err := h.CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateBooking_Handler_EventFull(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*service.CreateBookingResult, error) {
			return nil, service.ErrEventFull
		},
	}

	e := echo.New()
	body := `{"member_id":"m-1","event_id":1,"items":[{"ticket_type_id":2,"quantity":1}]}`
	c, _ := newBookingContext(e, http.MethodPost, "/api/v1/bookings", body)

	h := NewBookingHandler(svc, nil, nil)
	err := h.CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
	assert.Contains(t, he.Message, "waiting list")
}

func TestCreateBooking_Handler_InsufficientSeats(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*service.CreateBookingResult, error) {
			return nil, &service.InsufficientSeatsError{TicketTypeID: 2, Requested: 5, Available: 1}
		},
	}

	e := echo.New()
	body := `{"member_id":"m-1","event_id":1,"items":[{"ticket_type_id":2,"quantity":5}]}`
	c, _ := newBookingContext(e, http.MethodPost, "/api/v1/bookings", body)

	h := NewBookingHandler(svc, nil, nil)
	err := h.CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)

	payload, ok := he.Message.(echo.Map)
	assert.True(t, ok)
	assert.Equal(t, uint(2), payload["ticket_type_id"])
	assert.Equal(t, 5, payload["requested"])
	assert.Equal(t, 1, payload["available"])
}

func TestCreateBooking_Handler_EventRestricted(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*service.CreateBookingResult, error) {
			return nil, service.ErrEventRestricted
		},
	}

	e := echo.New()
	body := `{"member_id":"m-1","member_role":"external_member","event_id":1,"items":[{"ticket_type_id":2,"quantity":1}]}`
	c, _ := newBookingContext(e, http.MethodPost, "/api/v1/bookings", body)

	h := NewBookingHandler(svc, nil, nil)
	err := h.CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestGetBooking_Handler_NotFound(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return nil, service.ErrBookingNotFound
		},
	}

	e := echo.New()
	c, _ := newBookingContext(e, http.MethodGet, "/api/v1/bookings/999", "")
	c.SetParamNames("id")
	c.SetParamValues("999")

	h := NewBookingHandler(svc, nil, nil)
	err := h.GetBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestGetBooking_Handler_InvalidID(t *testing.T) {
	e := echo.New()
	c, _ := newBookingContext(e, http.MethodGet, "/api/v1/bookings/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	h := NewBookingHandler(nil, nil, nil)
	err := h.GetBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestApplyPromo_Handler_Success(t *testing.T) {
	promo := &mockPromoService{
		applyFn: func(ctx context.Context, bookingID uint, code string) (*models.Booking, error) {
			return &models.Booking{
				ID:               bookingID,
				Reference:        "BK-PROMO",
				EventID:          1,
				MemberID:         "m-1",
				Status:           models.BookingPendingPayment,
				TotalAmountCents: 4000,
				Promo:            &models.BookingPromo{BookingID: bookingID, PromoCodeID: 7, DiscountCents: 1000},
			}, nil
		},
	}

	e := echo.New()
	c, rec := newBookingContext(e, http.MethodPost, "/api/v1/bookings/1/promo", `{"code":"SAVE20"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewBookingHandler(nil, promo, nil)
	err := h.ApplyPromo(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(4000), resp.TotalAmountCents)
	assert.NotNil(t, resp.Promo)
	assert.Equal(t, int64(1000), resp.Promo.DiscountCents)
}

func TestApplyPromo_Handler_AlreadyApplied(t *testing.T) {
	promo := &mockPromoService{
		applyFn: func(ctx context.Context, bookingID uint, code string) (*models.Booking, error) {
			return nil, service.ErrPromoAlreadyApplied
		},
	}

	e := echo.New()
	c, _ := newBookingContext(e, http.MethodPost, "/api/v1/bookings/1/promo", `{"code":"SAVE20"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewBookingHandler(nil, promo, nil)
	err := h.ApplyPromo(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestApplyPromo_Handler_MissingCode(t *testing.T) {
	e := echo.New()
	c, _ := newBookingContext(e, http.MethodPost, "/api/v1/bookings/1/promo", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewBookingHandler(nil, nil, nil)
	err := h.ApplyPromo(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestRemovePromo_Handler_NotApplied(t *testing.T) {
	promo := &mockPromoService{
		removeFn: func(ctx context.Context, bookingID uint) (*models.Booking, error) {
			return nil, service.ErrPromoNotApplied
		},
	}

	e := echo.New()
	c, _ := newBookingContext(e, http.MethodDelete, "/api/v1/bookings/1/promo", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewBookingHandler(nil, promo, nil)
	err := h.RemovePromo(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestPay_Handler_Success(t *testing.T) {
	payments := &mockPaymentService{
		payFn: func(ctx context.Context, bookingID uint, method models.PaymentMethod, externalRef string) (*service.PaymentReceipt, error) {
			return &service.PaymentReceipt{
				Payment: &models.Payment{
					ID:            10,
					BookingID:     bookingID,
					AmountCents:   5000,
					Method:        method,
					TransactionID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
				},
				Booking: &models.Booking{
					ID:            bookingID,
					Reference:     "BK-PAID",
					Status:        models.BookingConfirmed,
					PaymentStatus: models.PaymentPaid,
				},
				Tickets: []models.Ticket{
					{ID: 1, BookingID: bookingID, TicketTypeID: 2, Code: "TKT-1-a1b2c3d4-1-deadbeef"},
					{ID: 2, BookingID: bookingID, TicketTypeID: 2, Code: "TKT-1-a1b2c3d4-2-cafebabe"},
				},
			}, nil
		},
	}

	e := echo.New()
	c, rec := newBookingContext(e, http.MethodPost, "/api/v1/bookings/1/pay", `{"method":"card"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewBookingHandler(nil, nil, payments)
	err := h.Pay(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.PaymentReceiptResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5000), resp.AmountCents)
	assert.Len(t, resp.Tickets, 2)
	assert.NotEqual(t, resp.Tickets[0].Code, resp.Tickets[1].Code)
}

func TestPay_Handler_AlreadyPaid(t *testing.T) {
	payments := &mockPaymentService{
		payFn: func(ctx context.Context, bookingID uint, method models.PaymentMethod, externalRef string) (*service.PaymentReceipt, error) {
			return nil, service.ErrAlreadyPaid
		},
	}

	e := echo.New()
	c, _ := newBookingContext(e, http.MethodPost, "/api/v1/bookings/1/pay", `{"method":"card"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewBookingHandler(nil, nil, payments)
	err := h.Pay(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestPay_Handler_InvalidMethod(t *testing.T) {
	e := echo.New()
	c, _ := newBookingContext(e, http.MethodPost, "/api/v1/bookings/1/pay", `{"method":"iou"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewBookingHandler(nil, nil, nil)
	err := h.Pay(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestListMemberBookings_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		listByMemberFn: func(ctx context.Context, memberID string) ([]models.Booking, error) {
			return []models.Booking{
				{ID: 1, MemberID: memberID, Status: models.BookingConfirmed},
				{ID: 2, MemberID: memberID, Status: models.BookingCancelled},
			}, nil
		},
	}

	e := echo.New()
	c, rec := newBookingContext(e, http.MethodGet, "/api/v1/members/m-1/bookings", "")
	c.SetParamNames("id")
	c.SetParamValues("m-1")

	h := NewBookingHandler(svc, nil, nil)
	err := h.ListMemberBookings(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestListEventBookings_Handler_WithStatusFilter(t *testing.T) {
	var capturedStatus *models.BookingStatus
	svc := &mockBookingService{
		listByEventFn: func(ctx context.Context, eventID uint, status *models.BookingStatus) ([]models.Booking, error) {
			capturedStatus = status
			return []models.Booking{}, nil
		},
	}

	e := echo.New()
	c, _ := newBookingContext(e, http.MethodGet, "/api/v1/events/1/bookings?status=confirmed", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewBookingHandler(svc, nil, nil)
	err := h.ListEventBookings(c)

	assert.NoError(t, err)
	assert.NotNil(t, capturedStatus)
	assert.Equal(t, models.BookingConfirmed, *capturedStatus)
}

func TestCancelBooking_Handler_AlreadyPaid(t *testing.T) {
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return nil, service.ErrAlreadyPaid
		},
	}

	e := echo.New()
	c, _ := newBookingContext(e, http.MethodPost, "/api/v1/bookings/1/cancel", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewBookingHandler(svc, nil, nil)
	err := h.CancelBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}
