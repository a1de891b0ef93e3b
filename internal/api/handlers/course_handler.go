package handlers

import (
	"net/http"

	"robocamp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CourseHandler serves the public course catalog
type CourseHandler struct {
	catalog *service.CatalogService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(catalog *service.CatalogService) *CourseHandler {
	return &CourseHandler{catalog: catalog}
}

// List handles GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.catalog.ListActiveCourses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"courses": courses},
	})
}

// Get handles GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid course ID format", nil)
		return
	}

	course, err := h.catalog.GetCourse(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{Success: true, Data: course})
}

// ListInstructors handles GET /api/v1/instructors
func (h *CourseHandler) ListInstructors(c *gin.Context) {
	instructors, err := h.catalog.ListInstructors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"instructors": instructors},
	})
}
