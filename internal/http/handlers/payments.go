package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdrobiulislam1479/ticket-point-server/internal/http/middleware"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/services"
)

func paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		Gateway:   gateway(),
		Sessions:  sessions(),
		RequestID: middleware.GetRequestID(c),
	}
}

type createCheckoutRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

// CreateCheckoutSession starts an external checkout for the requester's
// unpaid booking and returns the hosted payment URL.
func CreateCheckoutSession(c *gin.Context) {
	var req createCheckoutRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	url, err := paymentService(c).CreateCheckoutSession(c.Request.Context(), middleware.TokenEmail(c), req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

type paymentSuccessRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// PaymentSuccess reconciles a completed checkout session into a payment
// record. Replaying the same session returns the original record.
func PaymentSuccess(c *gin.Context) {
	var req paymentSuccessRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	txn, err := paymentService(c).ConfirmPayment(c.Request.Context(), req.SessionID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// Transactions lists payment records for one user, most recent first.
func Transactions(c *gin.Context) {
	list, err := paymentService(c).History(c.Param("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
