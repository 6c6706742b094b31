package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/http/middleware"
)

// RespondDomainError maps domain errors to HTTP responses. Unknown errors
// become a generic 500; the underlying error goes to the log, never to the
// client.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err),
		domain.IsInsufficientInventory(err),
		domain.IsLimitExceeded(err),
		domain.IsPaymentIncomplete(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	case domain.IsUnauthorized(err):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case domain.IsForbidden(err):
		RespondError(c, http.StatusForbidden, err.Error())
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("[ERROR] request_id=%s %v", middleware.GetRequestID(c), err)
		RespondError(c, http.StatusInternalServerError, "Server error")
	}
}
