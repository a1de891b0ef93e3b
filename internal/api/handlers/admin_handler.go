package handlers

import (
	"net/http"
	"strconv"

	"robocamp/internal/domain/catalog"
	"robocamp/internal/domain/enrollment"
	"robocamp/internal/service"
	"robocamp/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler exposes the back-office operations: catalog management,
// discount codes, registration oversight and reporting.
type AdminHandler struct {
	catalog       *service.CatalogService
	registrations *service.RegistrationService
	discounts     *service.DiscountService
	contacts      *service.ContactService
	auth          *service.AuthService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	catalog *service.CatalogService,
	registrations *service.RegistrationService,
	discounts *service.DiscountService,
	contacts *service.ContactService,
	auth *service.AuthService,
) *AdminHandler {
	return &AdminHandler{
		catalog:       catalog,
		registrations: registrations,
		discounts:     discounts,
		contacts:      contacts,
		auth:          auth,
	}
}

// ListCourses handles GET /api/v1/admin/courses (includes inactive courses)
func (h *AdminHandler) ListCourses(c *gin.Context) {
	courses, err := h.catalog.ListAllCourses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"courses": courses},
	})
}

// CreateCourse handles POST /api/v1/admin/courses
func (h *AdminHandler) CreateCourse(c *gin.Context) {
	var req catalog.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		badRequest(c, "Validation failed", validator.FormatValidationError(err))
		return
	}

	course, err := h.catalog.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Course created successfully",
		Data:    course,
	})
}

// UpdateCourse handles PUT /api/v1/admin/courses/:id
func (h *AdminHandler) UpdateCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid course ID format", nil)
		return
	}

	var req catalog.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		badRequest(c, "Validation failed", validator.FormatValidationError(err))
		return
	}

	course, err := h.catalog.UpdateCourse(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Course updated successfully",
		Data:    course,
	})
}

// DeleteCourse handles DELETE /api/v1/admin/courses/:id
func (h *AdminHandler) DeleteCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid course ID format", nil)
		return
	}

	if err := h.catalog.DeleteCourse(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Course deleted successfully",
	})
}

// CreateInstructor handles POST /api/v1/admin/instructors
func (h *AdminHandler) CreateInstructor(c *gin.Context) {
	var req catalog.CreateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		badRequest(c, "Validation failed", validator.FormatValidationError(err))
		return
	}

	instructor, err := h.catalog.CreateInstructor(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Instructor created successfully",
		Data:    instructor,
	})
}

// DeleteInstructor handles DELETE /api/v1/admin/instructors/:id
func (h *AdminHandler) DeleteInstructor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid instructor ID format", nil)
		return
	}

	if err := h.catalog.DeleteInstructor(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Instructor deleted successfully",
	})
}

// ListDiscounts handles GET /api/v1/admin/discounts
func (h *AdminHandler) ListDiscounts(c *gin.Context) {
	codes, err := h.discounts.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"discount_codes": codes},
	})
}

// CreateDiscount handles POST /api/v1/admin/discounts
func (h *AdminHandler) CreateDiscount(c *gin.Context) {
	var req enrollment.CreateDiscountCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		badRequest(c, "Validation failed", validator.FormatValidationError(err))
		return
	}

	code, err := h.discounts.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Discount code created successfully",
		Data:    code,
	})
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// SetDiscountActive handles PATCH /api/v1/admin/discounts/:id
func (h *AdminHandler) SetDiscountActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid discount code ID format", nil)
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		badRequest(c, "Validation failed", validator.FormatValidationError(err))
		return
	}

	code, err := h.discounts.SetActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Discount code updated successfully",
		Data:    code,
	})
}

// DeleteDiscount handles DELETE /api/v1/admin/discounts/:id
func (h *AdminHandler) DeleteDiscount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid discount code ID format", nil)
		return
	}

	if err := h.discounts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Discount code deleted successfully",
	})
}

// ListRegistrations handles GET /api/v1/admin/registrations with an
// optional course_id filter and limit/offset pagination.
func (h *AdminHandler) ListRegistrations(c *gin.Context) {
	if courseParam := c.Query("course_id"); courseParam != "" {
		courseID, err := uuid.Parse(courseParam)
		if err != nil {
			badRequest(c, "Invalid course ID format", nil)
			return
		}

		regs, err := h.registrations.ListByCourse(c.Request.Context(), courseID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, APIResponse{
			Success: true,
			Data:    map[string]interface{}{"registrations": regs},
		})
		return
	}

	limit, offset := paginationParams(c)
	regs, err := h.registrations.ListAll(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"registrations": regs},
	})
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := paginationParams(c)
	users, err := h.auth.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"users": users},
	})
}

// ListContactMessages handles GET /api/v1/admin/contact
func (h *AdminHandler) ListContactMessages(c *gin.Context) {
	limit, offset := paginationParams(c)
	msgs, err := h.contacts.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"messages": msgs},
	})
}

// MarkContactRead handles POST /api/v1/admin/contact/:id/read
func (h *AdminHandler) MarkContactRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid message ID format", nil)
		return
	}

	if err := h.contacts.MarkRead(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Message marked as read",
	})
}

// ReportSummary handles GET /api/v1/admin/reports/summary
func (h *AdminHandler) ReportSummary(c *gin.Context) {
	summaries, err := h.registrations.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"courses": summaries},
	})
}

func paginationParams(c *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
