package handlers

import (
	"net/http"

	"robocamp/internal/service"
	"robocamp/pkg/validator"

	"github.com/gin-gonic/gin"
)

// DiscountHandler validates discount codes for the public checkout flow
type DiscountHandler struct {
	discounts *service.DiscountService
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(discounts *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discounts: discounts}
}

type validateCodeRequest struct {
	Code string `json:"code" validate:"required,min=1,max=50"`
}

// Validate handles POST /api/v1/discounts/validate
func (h *DiscountHandler) Validate(c *gin.Context) {
	var req validateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		badRequest(c, "Validation failed", validator.FormatValidationError(err))
		return
	}

	result, err := h.discounts.ValidateCode(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{Success: true, Data: result})
}
