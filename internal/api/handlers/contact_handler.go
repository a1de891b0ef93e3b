package handlers

import (
	"net/http"

	"robocamp/internal/domain/contact"
	"robocamp/internal/service"
	"robocamp/pkg/validator"

	"github.com/gin-gonic/gin"
)

// ContactHandler accepts messages from the public contact form
type ContactHandler struct {
	contacts *service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Create handles POST /api/v1/contact
func (h *ContactHandler) Create(c *gin.Context) {
	var req contact.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		badRequest(c, "Validation failed", validator.FormatValidationError(err))
		return
	}

	msg, err := h.contacts.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Message received",
		Data:    msg,
	})
}
