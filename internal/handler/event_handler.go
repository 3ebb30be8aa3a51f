package handler

import (
	"net/http"

	"github.com/campustix/campus-ticketing/internal/dto"
	"github.com/campustix/campus-ticketing/internal/models"
	"github.com/campustix/campus-ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	eventSvc  service.EventService
	inventory service.InventoryService
}

func NewEventHandler(eventSvc service.EventService, inventory service.InventoryService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc, inventory: inventory}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo) {
	events := e.Group("/api/v1/events")
	events.POST("", h.CreateEvent)
	events.GET("", h.ListEvents)
	events.GET("/:id", h.GetEvent)
	events.POST("/:id/approve", h.ApproveEvent)
	events.POST("/:id/reject", h.RejectEvent)
	events.POST("/:id/publish", h.PublishEvent)
	events.POST("/:id/ticket-types", h.CreateTicketType)
	events.GET("/:id/ticket-types", h.ListTicketTypes)
	events.GET("/:id/availability", h.GetAvailability)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Capacity < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "title and capacity (>=1) are required")
	}
	if req.OrganizerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "organizer_id is required")
	}
	if req.Visibility == "" {
		req.Visibility = models.VisibilityPublic
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		IsOnline:    req.IsOnline,
		Venue:       req.Venue,
		OnlineLink:  req.OnlineLink,
		Capacity:    req.Capacity,
		Visibility:  req.Visibility,
		OrganizerID: req.OrganizerID,
		CategoryID:  req.CategoryID,
	}
	if err := h.eventSvc.CreateEvent(c.Request().Context(), event); err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	var status *models.EventStatus
	if s := c.QueryParam("status"); s != "" {
		es := models.EventStatus(s)
		status = &es
	}
	var visibility *models.Visibility
	if v := c.QueryParam("visibility"); v != "" {
		ev := models.Visibility(v)
		visibility = &ev
	}

	events, err := h.eventSvc.ListEvents(c.Request().Context(), status, visibility)
	if err != nil {
		return mapServiceError(err)
	}

	resp := make([]dto.EventResponse, len(events))
	for i := range events {
		resp[i] = dto.ToEventResponse(&events[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	event, err := h.eventSvc.GetEvent(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) ApproveEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.ApproveEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := h.eventSvc.ApproveEvent(c.Request().Context(), id, req.Publish)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) RejectEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	event, err := h.eventSvc.RejectEvent(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) PublishEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	event, err := h.eventSvc.PublishEvent(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) CreateTicketType(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.CreateTicketTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.SeatLimit < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "name and seat_limit (>=1) are required")
	}
	if req.PriceCents < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price_cents must not be negative")
	}

	tt := &models.TicketType{
		EventID:      id,
		Name:         req.Name,
		PriceCents:   req.PriceCents,
		SeatLimit:    req.SeatLimit,
		SalesStartAt: req.SalesStartAt,
		SalesEndAt:   req.SalesEndAt,
		IsActive:     true,
	}
	if err := h.eventSvc.CreateTicketType(c.Request().Context(), tt); err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToTicketTypeResponse(tt))
}

func (h *EventHandler) ListTicketTypes(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	types, err := h.eventSvc.ListTicketTypes(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	resp := make([]dto.TicketTypeResponse, len(types))
	for i := range types {
		resp[i] = dto.ToTicketTypeResponse(&types[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) GetAvailability(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	report, err := h.inventory.Availability(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, report)
}
