package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campustix/campus-ticketing/internal/dto"
	"github.com/campustix/campus-ticketing/internal/models"
	"github.com/campustix/campus-ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	bookingSvc service.BookingService
	promoSvc   service.PromoService
	paymentSvc service.PaymentService
}

func NewBookingHandler(bookingSvc service.BookingService, promoSvc service.PromoService, paymentSvc service.PaymentService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc, promoSvc: promoSvc, paymentSvc: paymentSvc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	bookings := e.Group("/api/v1/bookings")
	bookings.POST("", h.CreateBooking)
	bookings.GET("/:id", h.GetBooking)
	bookings.POST("/:id/cancel", h.CancelBooking)
	bookings.POST("/:id/promo", h.ApplyPromo)
	bookings.DELETE("/:id/promo", h.RemovePromo)
	bookings.POST("/:id/pay", h.Pay)
	bookings.GET("/:id/tickets", h.ListTickets)

	e.GET("/api/v1/members/:id/bookings", h.ListMemberBookings)
	e.GET("/api/v1/events/:id/bookings", h.ListEventBookings)
}

// mapServiceError translates the service error taxonomy to HTTP statuses.
// Validation failures are 400, missing entities 404, business-rule
// conflicts 409, visibility/eligibility refusals 403.
func mapServiceError(err error) *echo.HTTPError {
	var seats *service.InsufficientSeatsError
	if errors.As(err, &seats) {
		// Structured payload: the member learns how many seats are left.
		return echo.NewHTTPError(http.StatusConflict, echo.Map{
			"message":        seats.Error(),
			"ticket_type_id": seats.TicketTypeID,
			"requested":      seats.Requested,
			"available":      seats.Available,
		})
	}

	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrTicketTypeNotFound),
		errors.Is(err, service.ErrPromoNotFound),
		errors.Is(err, service.ErrPromoNotApplied):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmptySelection),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidSchedule),
		errors.Is(err, service.ErrInvalidVenue):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEventRestricted),
		errors.Is(err, service.ErrReviewNotAllowed):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrEventNotBookable),
		errors.Is(err, service.ErrEventFull),
		errors.Is(err, service.ErrTicketTypeUnavailable),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrBookingNotEligible),
		errors.Is(err, service.ErrPromoAlreadyApplied),
		errors.Is(err, service.ErrAlreadyWaiting),
		errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrInvalidStatusTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.MemberID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "member_id is required")
	}
	if req.EventID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "event_id is required")
	}
	if req.MemberRole == "" {
		req.MemberRole = models.RoleExternal
	}

	lines := make([]service.BookingLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.BookingLine{TicketTypeID: item.TicketTypeID, Quantity: item.Quantity})
	}

	result, err := h.bookingSvc.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		MemberID:   req.MemberID,
		MemberRole: req.MemberRole,
		EventID:    req.EventID,
		Lines:      lines,
		PromoCode:  req.PromoCode,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventFull) {
			// Deliberate UX branch: the event being full is an invitation
			// to join the waiting list, not a plain failure.
			return echo.NewHTTPError(http.StatusConflict, "event is at capacity; you may join the waiting list")
		}
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToCreateBookingResponse(result))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	booking, err := h.bookingSvc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	booking, err := h.bookingSvc.CancelBooking(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ApplyPromo(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.ApplyPromoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code is required")
	}

	booking, err := h.promoSvc.Apply(c.Request().Context(), id, req.Code)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) RemovePromo(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	booking, err := h.promoSvc.Remove(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) Pay(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.PayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	switch req.Method {
	case models.MethodCard, models.MethodBankTransfer, models.MethodCash:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment method")
	}

	receipt, err := h.paymentSvc.Pay(c.Request().Context(), id, req.Method, req.ExternalRef)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToPaymentReceiptResponse(receipt))
}

func (h *BookingHandler) ListTickets(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	tickets, err := h.paymentSvc.ListTickets(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	resp := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		resp = append(resp, dto.ToTicketResponse(&tickets[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) ListMemberBookings(c echo.Context) error {
	memberID := c.Param("id")
	if memberID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid member id")
	}

	bookings, err := h.bookingSvc.ListByMember(c.Request().Context(), memberID)
	if err != nil {
		return mapServiceError(err)
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) ListEventBookings(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		status = &bs
	}

	bookings, err := h.bookingSvc.ListByEvent(c.Request().Context(), id, status)
	if err != nil {
		return mapServiceError(err)
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}
