package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "github.com/mdrobiulislam1479/ticket-point-server/internal/config"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain/models"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/http/handlers"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/http/middleware"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/repositories"
)

// NewRouter assembles the middleware chain and the full route table.
func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(env.CORSOrigins))
	_ = r.SetTrustedProxies(nil)

	users := repositories.UserRepository{}
	verify := middleware.VerifyToken([]byte(env.JWTSecret))
	vendorOnly := middleware.RequireRole(users, models.RoleVendor)
	adminOnly := middleware.RequireRole(users, models.RoleAdmin)

	r.GET("/health", handlers.Health)

	// Accounts.
	r.POST("/user", handlers.UpsertUser)
	r.GET("/user/role", verify, handlers.GetUserRole)
	r.GET("/users/:email", verify, handlers.GetUserByEmail)

	// Listings.
	r.GET("/latest-ticket", handlers.LatestTickets)
	r.POST("/tickets", verify, vendorOnly, handlers.CreateTicket)
	r.GET("/tickets/:id", verify, handlers.GetTicket)
	r.PUT("/tickets/:id", verify, vendorOnly, handlers.UpdateTicket)
	r.DELETE("/tickets/:id", verify, vendorOnly, handlers.DeleteTicket)
	r.GET("/vendor/tickets/:email", verify, vendorOnly, handlers.VendorTickets)

	// Bookings.
	r.POST("/booked-tickets", verify, handlers.CreateBooking)
	r.GET("/booked-tickets/:email", verify, handlers.MyBookings)
	r.GET("/vendor/bookings/:email", verify, handlers.VendorBookings)
	r.PATCH("/bookings/accept/:id", verify, handlers.AcceptBooking)
	r.PATCH("/bookings/reject/:id", verify, handlers.RejectBooking)
	r.GET("/bookings/eticket/:id", verify, handlers.BookingETicket)

	// Payments.
	r.POST("/create-checkout-session", verify, handlers.CreateCheckoutSession)
	r.POST("/payment-success", handlers.PaymentSuccess)
	r.GET("/transactions/:email", verify, handlers.Transactions)

	// Moderation.
	admin := r.Group("/admin", verify, adminOnly)
	admin.GET("/tickets", handlers.AdminListTickets)
	admin.GET("/approved-tickets", handlers.AdminListApprovedTickets)
	admin.GET("/users", handlers.AdminListUsers)
	admin.PATCH("/tickets/approve/:id", handlers.AdminApproveTicket)
	admin.PATCH("/tickets/reject/:id", handlers.AdminRejectTicket)
	admin.PATCH("/tickets/advertise/:id", handlers.AdminAdvertiseTicket)
	admin.PATCH("/users/make-admin/:email", handlers.AdminMakeAdmin)
	admin.PATCH("/users/make-vendor/:email", handlers.AdminMakeVendor)
	admin.PATCH("/users/mark-fraud/:email", handlers.AdminMarkFraud)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})

	return r
}
