package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	intconfig "github.com/mdrobiulislam1479/ticket-point-server/internal/config"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain/models"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/idempotency"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/payment"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/repositories"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/utils"
)

// PaymentService delegates checkout to the external gateway and reconciles
// completed sessions into payment records. Reconciliation is idempotent per
// session id: a redis reservation fences concurrent replays and the unique
// index on transactions.session_id is the durable backstop.
type PaymentService struct {
	DB              *sql.DB
	BookingRepo     repositories.BookingRepository
	TransactionRepo repositories.TransactionRepository
	Gateway         payment.Gateway
	Sessions        *idempotency.SessionGuard
	RequestID       string
}

func (s PaymentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// CreateCheckoutSession starts an external checkout for an unpaid booking
// and returns the hosted redirect URL.
func (s PaymentService) CreateCheckoutSession(ctx context.Context, userEmail string, bookingID int64) (string, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return "", err
	}
	if booking.UserEmail != userEmail {
		return "", domain.ForbiddenError{Msg: "booking belongs to another user"}
	}
	if booking.PaymentStatus == models.PaymentStatusPaid {
		return "", domain.ValidationError{Field: "booking", Msg: "booking is already paid"}
	}

	sess, err := s.Gateway.CreateCheckoutSession(ctx, payment.CheckoutParams{
		BookingID:   booking.ID,
		Title:       booking.Title,
		UnitPrice:   booking.Price,
		Quantity:    booking.Quantity,
		UserEmail:   booking.UserEmail,
		VendorEmail: booking.VendorEmail,
	})
	if err != nil {
		return "", err
	}

	utils.LogEvent(s.RequestID, "payment", "checkout",
		fmt.Sprintf("booking_id=%d session=%s", booking.ID, sess.ID))
	return sess.URL, nil
}

// ConfirmPayment reconciles a checkout session: verify it is paid with the
// gateway, then record the transaction and mark the booking paid in one
// database transaction. Replaying a settled session returns the existing
// record without writing anything.
func (s PaymentService) ConfirmPayment(ctx context.Context, sessionID string) (models.Transaction, error) {
	if sessionID == "" {
		return models.Transaction{}, domain.ValidationError{Field: "session_id", Msg: "session id is required"}
	}

	sess, err := s.Gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return models.Transaction{}, err
	}
	if sess.PaymentStatus != payment.StatusPaid {
		return models.Transaction{}, domain.PaymentIncompleteError{SessionID: sessionID}
	}

	// fast path: this session was already reconciled
	if existing, err := s.TransactionRepo.GetBySessionID(sessionID); err == nil {
		return existing, nil
	}

	reserved, err := s.Sessions.Reserve(ctx, sessionID)
	if err != nil {
		// redis being down must not block settlement; the unique index
		// still dedupes
		utils.LogEvent(s.RequestID, "payment", "confirm", "session guard unavailable: "+err.Error())
		reserved = true
	}
	if !reserved {
		if existing, err := s.TransactionRepo.GetBySessionID(sessionID); err == nil {
			return existing, nil
		}
		return models.Transaction{}, domain.ConflictError{
			Resource: "payment",
			Msg:      "reconciliation for this session is already in progress",
		}
	}

	record, err := s.settle(sess)
	if err != nil {
		_ = s.Sessions.Release(ctx, sessionID)
		return models.Transaction{}, err
	}
	return record, nil
}

func (s PaymentService) settle(sess *payment.Session) (models.Transaction, error) {
	bookingID, err := strconv.ParseInt(sess.Metadata["booking_id"], 10, 64)
	if err != nil || bookingID <= 0 {
		return models.Transaction{}, domain.ValidationError{Field: "session", Msg: "session carries no booking reference"}
	}

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Transaction{}, err
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Transaction{}, err
	}
	defer tx.Rollback()

	record := models.Transaction{
		BookingID:     booking.ID,
		UserEmail:     booking.UserEmail,
		VendorEmail:   booking.VendorEmail,
		Title:         booking.Title,
		Amount:        sess.AmountTotal / 100,
		SessionID:     sess.ID,
		TransactionID: sess.TransactionID,
		Status:        models.PaymentStatusPaid,
		PaidAt:        time.Now(),
	}
	if err := s.TransactionRepo.Insert(tx, &record); err != nil {
		if domain.IsConflict(err) {
			// lost the race; the winner's record is the answer
			tx.Rollback()
			return s.TransactionRepo.GetBySessionID(sess.ID)
		}
		return models.Transaction{}, err
	}

	// MarkPaid is a no-op when the booking is already paid; paid_at is
	// stamped at most once
	if _, err := s.BookingRepo.MarkPaid(tx, booking.ID); err != nil {
		return models.Transaction{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Transaction{}, err
	}

	utils.LogEvent(s.RequestID, "payment", "confirm",
		fmt.Sprintf("booking_id=%d session=%s amount=%d", booking.ID, sess.ID, record.Amount))
	return record, nil
}

func (s PaymentService) History(email string) ([]models.Transaction, error) {
	return s.TransactionRepo.ListByUser(email)
}
