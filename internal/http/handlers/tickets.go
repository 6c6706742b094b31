package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain/models"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/http/middleware"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/repositories"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/services"
)

func ticketService(c *gin.Context) services.TicketService {
	return services.TicketService{RequestID: middleware.GetRequestID(c)}
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// CreateTicket inserts a listing for the authenticated vendor.
func CreateTicket(c *gin.Context) {
	vendor, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "Forbidden: vendor only")
		return
	}

	var input services.TicketInput
	if !BindJSONOrError(c, &input) {
		return
	}

	ticket, err := ticketService(c).Create(vendor, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// UpdateTicket edits display fields of the vendor's own listing.
func UpdateTicket(c *gin.Context) {
	vendor, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "Forbidden: vendor only")
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input services.TicketInput
	if !BindJSONOrError(c, &input) {
		return
	}

	ticket, err := ticketService(c).Update(vendor.Email, id, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// DeleteTicket removes the vendor's own listing.
func DeleteTicket(c *gin.Context) {
	vendor, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "Forbidden: vendor only")
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := ticketService(c).Delete(vendor.Email, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GetTicket returns one listing by id.
func GetTicket(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	tickets := repositories.TicketRepository{}
	ticket, err := tickets.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// VendorTickets lists every listing owned by one vendor, all states included.
func VendorTickets(c *gin.Context) {
	tickets := repositories.TicketRepository{}
	list, err := tickets.ListByVendor(c.Param("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// LatestTickets is the public storefront feed: the newest approved listings,
// capped at the advertise limit.
func LatestTickets(c *gin.Context) {
	tickets := repositories.TicketRepository{}
	list, err := tickets.ListLatestApproved(models.AdvertisedLimit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
