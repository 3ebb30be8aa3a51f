package handler

import (
	"net/http"

	"github.com/campustix/campus-ticketing/internal/dto"
	"github.com/campustix/campus-ticketing/internal/models"
	"github.com/campustix/campus-ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/events/:id/reviews", h.CreateReview)
	e.GET("/api/v1/events/:id/reviews", h.ListByEvent)
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.MemberID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "member_id is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	review := &models.Review{
		EventID:  id,
		MemberID: req.MemberID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := h.svc.CreateReview(c.Request().Context(), review); err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToReviewResponse(review))
}

func (h *ReviewHandler) ListByEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	reviews, err := h.svc.ListByEvent(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	resp := make([]dto.ReviewResponse, len(reviews))
	for i := range reviews {
		resp[i] = dto.ToReviewResponse(&reviews[i])
	}
	return c.JSON(http.StatusOK, resp)
}
