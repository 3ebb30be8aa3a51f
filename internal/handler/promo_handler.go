package handler

import (
	"net/http"

	"github.com/campustix/campus-ticketing/internal/dto"
	"github.com/campustix/campus-ticketing/internal/models"
	"github.com/campustix/campus-ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type PromoHandler struct {
	svc service.PromoService
}

func NewPromoHandler(svc service.PromoService) *PromoHandler {
	return &PromoHandler{svc: svc}
}

func (h *PromoHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/promo-codes", h.CreateCode)
	e.GET("/api/v1/promo-codes", h.ListCodes)
}

func (h *PromoHandler) CreateCode(c echo.Context) error {
	var req dto.CreatePromoCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code is required")
	}
	switch req.DiscountType {
	case models.DiscountPercentage:
		if req.DiscountValue <= 0 || req.DiscountValue > 100 {
			return echo.NewHTTPError(http.StatusBadRequest, "percentage value must be in (0,100]")
		}
	case models.DiscountFixed:
		if req.DiscountValue <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "fixed discount must be positive")
		}
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid discount type")
	}
	if req.EndAt.Before(req.StartAt) {
		return echo.NewHTTPError(http.StatusBadRequest, "end_at must not be before start_at")
	}

	promo := &models.PromoCode{
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		IsActive:      true,
	}
	if err := h.svc.CreateCode(c.Request().Context(), promo); err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToPromoCodeResponse(promo))
}

func (h *PromoHandler) ListCodes(c echo.Context) error {
	promos, err := h.svc.ListCodes(c.Request().Context())
	if err != nil {
		return mapServiceError(err)
	}

	resp := make([]dto.PromoCodeResponse, len(promos))
	for i := range promos {
		resp[i] = dto.ToPromoCodeResponse(&promos[i])
	}
	return c.JSON(http.StatusOK, resp)
}
