package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain/models"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/http/middleware"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/repositories"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/utils"
)

// AdminListTickets returns every listing in every state.
func AdminListTickets(c *gin.Context) {
	tickets := repositories.TicketRepository{}
	list, err := tickets.ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AdminListApprovedTickets returns approved listings only, for the
// advertise board.
func AdminListApprovedTickets(c *gin.Context) {
	tickets := repositories.TicketRepository{}
	list, err := tickets.ListApproved()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AdminListUsers returns every stored account.
func AdminListUsers(c *gin.Context) {
	users := repositories.UserRepository{}
	list, err := users.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AdminApproveTicket moves a pending listing to approved.
func AdminApproveTicket(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ticketService(c).Approve(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "admin", "approve_ticket", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": models.TicketStatusApproved})
}

// AdminRejectTicket moves a listing to rejected.
func AdminRejectTicket(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ticketService(c).Reject(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "admin", "reject_ticket", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": models.TicketStatusRejected})
}

// AdminAdvertiseTicket toggles the advertised flag. Turning it on is
// refused once the advertised pool is full.
func AdminAdvertiseTicket(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ticket, err := ticketService(c).ToggleAdvertise(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func adminSetRole(c *gin.Context, role string) {
	email := c.Param("email")

	users := repositories.UserRepository{}
	if _, err := users.GetByEmail(email); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := users.UpdateRole(email, role); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "admin", "set_role", email+" -> "+role)
	c.JSON(http.StatusOK, gin.H{"email": email, "role": role})
}

// AdminMakeAdmin promotes an account to admin.
func AdminMakeAdmin(c *gin.Context) {
	adminSetRole(c, models.RoleAdmin)
}

// AdminMakeVendor promotes an account to vendor.
func AdminMakeVendor(c *gin.Context) {
	adminSetRole(c, models.RoleVendor)
}

// AdminMarkFraud flags a vendor as fraudulent and hides all of their
// listings in the same transaction.
func AdminMarkFraud(c *gin.Context) {
	email := c.Param("email")
	if err := ticketService(c).MarkFraud(email); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "admin", "mark_fraud", email)
	c.JSON(http.StatusOK, gin.H{"email": email, "isFraud": true})
}
