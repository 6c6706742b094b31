package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdrobiulislam1479/ticket-point-server/internal/http/middleware"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/services"
)

// BookingETicket renders the PDF e-ticket for one of the requester's paid
// bookings and streams it as an attachment.
func BookingETicket(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	data, filename, err := svc.GenerateETicket(middleware.TokenEmail(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
