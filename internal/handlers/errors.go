package handlers

import (
	"errors"
	"net/http"

	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/services"
	"github.com/gin-gonic/gin"
)

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// respondError maps service errors onto HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingField), errors.Is(err, services.ErrInvalidField):
		badRequest(c, err.Error())
	case errors.Is(err, services.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
