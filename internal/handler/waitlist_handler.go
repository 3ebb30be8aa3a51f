package handler

import (
	"net/http"

	"github.com/campustix/campus-ticketing/internal/dto"
	"github.com/campustix/campus-ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type WaitlistHandler struct {
	svc service.WaitlistService
}

func NewWaitlistHandler(svc service.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{svc: svc}
}

func (h *WaitlistHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/events/:id/waitlist", h.Join)
	e.GET("/api/v1/events/:id/waitlist", h.ListByEvent)
}

func (h *WaitlistHandler) Join(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.JoinWaitlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.MemberID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "member_id is required")
	}

	entry, err := h.svc.Join(c.Request().Context(), req.MemberID, id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToWaitlistResponse(entry))
}

func (h *WaitlistHandler) ListByEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	entries, err := h.svc.ListByEvent(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	resp := make([]dto.WaitlistResponse, len(entries))
	for i := range entries {
		resp[i] = dto.ToWaitlistResponse(&entries[i])
	}
	return c.JSON(http.StatusOK, resp)
}
