package handlers

import (
	"errors"
	"net/http"

	"github.com/formhub/formhub-go/response"
	"github.com/formhub/formhub-go/services"
	"github.com/gin-gonic/gin"
)

// writeServiceError maps service sentinel errors onto the HTTP
// taxonomy: validation and conflicts 400, bad credentials 401,
// forbidden 403, missing rows 404.
func writeServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrInactiveUser),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrSiteNameTaken),
		errors.Is(err, services.ErrSubdomainTaken),
		errors.Is(err, services.ErrSiteRequired),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidSchema),
		errors.Is(err, services.ErrInvalidSubmission):
		status = http.StatusBadRequest
	}
	c.JSON(status, response.ErrorResponse{Error: err.Error()})
}
