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

// TicketService covers the listing lifecycle: vendor CRUD, admin moderation,
// the advertise cap and the fraud cascade.
type TicketService struct {
	DB         *sql.DB
	TicketRepo repositories.TicketRepository
	UserRepo   repositories.UserRepository
	RequestID  string
}

func (s TicketService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

type TicketInput struct {
	Title       string     `json:"title" binding:"required"`
	Image       string     `json:"image"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	DepartureAt *time.Time `json:"departure_at"`
	Price       int64      `json:"price"`
	Quantity    int        `json:"quantity"`
}

// Create inserts a vendor listing. Vendor identity and name come from the
// authenticated account, never from the payload; new listings always start
// pending and unadvertised, and are born hidden when the vendor is flagged
// fraudulent.
func (s TicketService) Create(vendor models.User, input TicketInput) (models.Ticket, error) {
	if input.Price < 0 {
		return models.Ticket{}, domain.ValidationError{Field: "price", Msg: "price cannot be negative"}
	}
	if input.Quantity < 0 {
		return models.Ticket{}, domain.ValidationError{Field: "quantity", Msg: "quantity cannot be negative"}
	}

	ticket := models.Ticket{
		Title:       input.Title,
		Image:       input.Image,
		Origin:      input.Origin,
		Destination: input.Destination,
		DepartureAt: input.DepartureAt,
		Price:       input.Price,
		Quantity:    input.Quantity,
		VendorName:  vendor.Name,
		VendorEmail: vendor.Email,
		Status:      models.TicketStatusPending,
		Advertised:  false,
		Hidden:      vendor.IsFraud,
		CreatedAt:   time.Now(),
	}
	if err := s.TicketRepo.Insert(&ticket); err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

// Update rewrites the display fields of a listing the vendor owns. Quantity
// and moderation state are out of reach on this path.
func (s TicketService) Update(vendorEmail string, id int64, input TicketInput) (models.Ticket, error) {
	ticket, err := s.TicketRepo.GetByID(id)
	if err != nil {
		return models.Ticket{}, err
	}
	if ticket.VendorEmail != vendorEmail {
		return models.Ticket{}, domain.ForbiddenError{Msg: "ticket belongs to another vendor"}
	}

	ticket.Title = input.Title
	ticket.Image = input.Image
	ticket.Origin = input.Origin
	ticket.Destination = input.Destination
	ticket.DepartureAt = input.DepartureAt
	ticket.Price = input.Price
	if err := s.TicketRepo.Update(ticket); err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

func (s TicketService) Delete(vendorEmail string, id int64) error {
	ticket, err := s.TicketRepo.GetByID(id)
	if err != nil {
		return err
	}
	if ticket.VendorEmail != vendorEmail {
		return domain.ForbiddenError{Msg: "ticket belongs to another vendor"}
	}
	return s.TicketRepo.Delete(id)
}

func (s TicketService) Approve(id int64) error {
	return s.TicketRepo.SetStatus(id, models.TicketStatusApproved)
}

func (s TicketService) Reject(id int64) error {
	return s.TicketRepo.SetStatus(id, models.TicketStatusRejected)
}

// ToggleAdvertise flips the advertised flag. Turning it on is a conditional
// atomic update against the global cap; turning it off always succeeds.
func (s TicketService) ToggleAdvertise(id int64) (models.Ticket, error) {
	ticket, err := s.TicketRepo.GetByID(id)
	if err != nil {
		return models.Ticket{}, err
	}

	if ticket.Advertised {
		if err := s.TicketRepo.AdvertiseOff(id); err != nil {
			return models.Ticket{}, err
		}
		ticket.Advertised = false
		return ticket, nil
	}

	ok, err := s.TicketRepo.AdvertiseOn(id, models.AdvertisedLimit)
	if err != nil {
		return models.Ticket{}, err
	}
	if !ok {
		return models.Ticket{}, domain.LimitExceededError{
			Limit: models.AdvertisedLimit,
			Msg:   fmt.Sprintf("at most %d tickets can be advertised at once", models.AdvertisedLimit),
		}
	}
	ticket.Advertised = true
	return ticket, nil
}

// MarkFraud flags a vendor account and hides every listing it owns, in one
// transaction so the cascade cannot half-apply.
func (s TicketService) MarkFraud(vendorEmail string) error {
	tx, err := s.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.UserRepo.SetFraud(tx, vendorEmail, true); err != nil {
		return err
	}
	if err := s.TicketRepo.HideAllByVendor(tx, vendorEmail); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "ticket", "mark_fraud", "vendor="+vendorEmail)
	return nil
}
