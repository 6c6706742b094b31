package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain/models"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/repositories"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/utils"
)

// DocsService renders the PDF e-ticket for a paid booking.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	RequestID   string
}

func (s DocsService) GenerateETicket(userEmail string, bookingID int64) ([]byte, string, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, "", err
	}
	if booking.UserEmail != userEmail {
		return nil, "", domain.ForbiddenError{Msg: "booking belongs to another user"}
	}
	if booking.PaymentStatus != models.PaymentStatusPaid {
		return nil, "", domain.ValidationError{Field: "booking", Msg: "e-ticket is available after payment"}
	}

	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(booking)
}

func buildETicketPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger   : %s", safe(b.UserName, b.UserEmail)),
		fmt.Sprintf("Ticket      : %s", safe(b.Title, "-")),
		fmt.Sprintf("Route       : %s -> %s", safe(b.Origin, "-"), safe(b.Destination, "-")),
		fmt.Sprintf("Departure   : %s", formatDeparture(b.DepartureAt)),
		fmt.Sprintf("Quantity    : %d", b.Quantity),
		fmt.Sprintf("Total Paid  : %d", b.Price*int64(b.Quantity)),
		fmt.Sprintf("Vendor      : %s", safe(b.VendorEmail, "-")),
		fmt.Sprintf("Booking Ref : #%d", b.ID),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Note: present this e-ticket at departure. One e-ticket covers all seats in the booking.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", b.ID, safeFilenamePart(b.UserName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func formatDeparture(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func safeFilenamePart(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "ticket"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(v)
}
