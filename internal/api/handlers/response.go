package handlers

import (
	"errors"
	"net/http"

	"robocamp/internal/config"
	"robocamp/internal/domain/catalog"
	"robocamp/internal/domain/contact"
	"robocamp/internal/domain/enrollment"
	"robocamp/internal/service"
	"robocamp/pkg/logger"

	"github.com/gin-gonic/gin"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// respondError converts a service error into an HTTP response. Business
// failures carry their own message; anything unrecognized is an
// infrastructure error and surfaces as a generic 500, with detail only
// outside production.
func respondError(c *gin.Context, err error) {
	if status, ok := businessStatus(err); ok {
		c.JSON(status, APIResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	logger.Error("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)

	resp := APIResponse{
		Success: false,
		Message: "Internal server error",
	}
	if !config.Get().IsProduction() {
		resp.Errors = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

func businessStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, enrollment.ErrCourseNotFound),
		errors.Is(err, enrollment.ErrRegistrationNotFound),
		errors.Is(err, enrollment.ErrDiscountNotFound),
		errors.Is(err, catalog.ErrCourseNotFound),
		errors.Is(err, catalog.ErrInstructorNotFound),
		errors.Is(err, contact.ErrMessageNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, enrollment.ErrCourseFull),
		errors.Is(err, enrollment.ErrAgeOutOfRange),
		errors.Is(err, enrollment.ErrTermsNotAgreed),
		errors.Is(err, enrollment.ErrAlreadyCancelled),
		errors.Is(err, enrollment.ErrDiscountInactive),
		errors.Is(err, enrollment.ErrDiscountMaxUses),
		errors.Is(err, enrollment.ErrDiscountNotYetActive),
		errors.Is(err, enrollment.ErrDiscountExpired),
		errors.Is(err, catalog.ErrCourseInUse),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusBadRequest, true
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, true
	}
	return 0, false
}

func badRequest(c *gin.Context, message string, errs interface{}) {
	c.JSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}
