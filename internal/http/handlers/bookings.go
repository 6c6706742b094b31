package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/http/middleware"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/repositories"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/services"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

type createBookingRequest struct {
	TicketID int64 `json:"ticket_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required"`
}

// CreateBooking reserves quantity units of a listing for the requester.
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	email := middleware.TokenEmail(c)

	// Snapshot the display name from the stored account when there is one.
	name := ""
	users := repositories.UserRepository{}
	if user, err := users.GetByEmail(email); err == nil {
		name = user.Name
	} else if !domain.IsNotFound(err) {
		RespondDomainError(c, err)
		return
	}

	booking, err := bookingService(c).Create(services.CreateBookingInput{
		TicketID:  req.TicketID,
		Quantity:  req.Quantity,
		UserEmail: email,
		UserName:  name,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// MyBookings lists bookings placed by one user, newest first.
func MyBookings(c *gin.Context) {
	list, err := bookingService(c).ListForUser(c.Param("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// VendorBookings lists bookings placed against one vendor's listings,
// newest first.
func VendorBookings(c *gin.Context) {
	list, err := bookingService(c).ListForVendor(c.Param("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AcceptBooking lets the owning vendor approve a booking.
func AcceptBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	booking, err := bookingService(c).Accept(middleware.TokenEmail(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// RejectBooking lets the owning vendor reject a booking and hand the
// reserved quantity back to the listing.
func RejectBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	booking, err := bookingService(c).Reject(middleware.TokenEmail(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
