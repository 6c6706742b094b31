package services

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "github.com/mdrobiulislam1479/ticket-point-server/internal/config"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain/models"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/repositories"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/utils"
)

// BookingService owns the only multi-store workflow in the system: reserve
// inventory when a booking is created, and hand it back when the vendor
// rejects. Each workflow runs inside one transaction so a failure between
// the booking write and the quantity write cannot strand either side.
type BookingService struct {
	DB          *sql.DB
	BookingRepo repositories.BookingRepository
	TicketRepo  repositories.TicketRepository
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

type CreateBookingInput struct {
	TicketID  int64
	Quantity  int
	UserEmail string
	UserName  string
}

// Create books quantity units of a ticket for the requesting user. The
// ticket row is locked for the duration, and the decrement re-checks
// availability so quantity can never go below zero.
func (s BookingService) Create(input CreateBookingInput) (models.Booking, error) {
	if input.TicketID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "ticket_id", Msg: "invalid ticket id"}
	}
	if input.Quantity <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "quantity", Msg: "quantity must be positive"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, err
	}
	defer tx.Rollback()

	ticket, err := s.TicketRepo.GetByIDForUpdate(tx, input.TicketID)
	if err != nil {
		return models.Booking{}, err
	}
	if input.Quantity > ticket.Quantity {
		return models.Booking{}, domain.InsufficientInventoryError{
			TicketID:  ticket.ID,
			Requested: input.Quantity,
			Available: ticket.Quantity,
		}
	}

	booking := models.Booking{
		TicketID:      ticket.ID,
		Title:         ticket.Title,
		Image:         ticket.Image,
		Origin:        ticket.Origin,
		Destination:   ticket.Destination,
		DepartureAt:   ticket.DepartureAt,
		Price:         ticket.Price,
		VendorEmail:   ticket.VendorEmail,
		UserEmail:     input.UserEmail,
		UserName:      input.UserName,
		Quantity:      input.Quantity,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
		CreatedAt:     time.Now(),
	}
	if err := s.BookingRepo.Insert(tx, &booking); err != nil {
		return models.Booking{}, err
	}

	ok, err := s.TicketRepo.DecrementQuantity(tx, ticket.ID, input.Quantity)
	if err != nil {
		return models.Booking{}, err
	}
	if !ok {
		return models.Booking{}, domain.InsufficientInventoryError{
			TicketID:  ticket.ID,
			Requested: input.Quantity,
			Available: ticket.Quantity,
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d ticket_id=%d quantity=%d", booking.ID, ticket.ID, input.Quantity))
	return booking, nil
}

// Accept marks a booking accepted. Only the vendor the booking was placed
// against may decide it.
func (s BookingService) Accept(vendorEmail string, id int64) (models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.VendorEmail != vendorEmail {
		return models.Booking{}, domain.ForbiddenError{Msg: "booking belongs to another vendor"}
	}

	if err := s.BookingRepo.UpdateStatus(s.db(), id, models.BookingStatusAccepted); err != nil {
		return models.Booking{}, err
	}
	booking.Status = models.BookingStatusAccepted
	return booking, nil
}

// Reject marks a booking rejected and restores the booked quantity to the
// source ticket, both in one transaction.
//
// There is deliberately no prior-status check: rejecting the same booking
// twice restores the quantity twice. See DESIGN.md.
func (s BookingService) Reject(vendorEmail string, id int64) (models.Booking, error) {
	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, err
	}
	defer tx.Rollback()

	booking, err := s.BookingRepo.GetByIDForUpdate(tx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.VendorEmail != vendorEmail {
		return models.Booking{}, domain.ForbiddenError{Msg: "booking belongs to another vendor"}
	}

	if err := s.BookingRepo.UpdateStatus(tx, id, models.BookingStatusRejected); err != nil {
		return models.Booking{}, err
	}
	if err := s.TicketRepo.RestoreQuantity(tx, booking.TicketID, booking.Quantity); err != nil {
		return models.Booking{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "reject",
		fmt.Sprintf("booking_id=%d ticket_id=%d restored=%d", id, booking.TicketID, booking.Quantity))
	booking.Status = models.BookingStatusRejected
	return booking, nil
}

func (s BookingService) ListForUser(email string) ([]models.Booking, error) {
	return s.BookingRepo.ListByUser(email)
}

func (s BookingService) ListForVendor(email string) ([]models.Booking, error) {
	return s.BookingRepo.ListByVendor(email)
}
