package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the e-ticket PDF for a booking.
type DocsService struct {
	Status    StatusService
	RequestID string

	// Loader overrides the status lookup in tests.
	Loader func(pnr int64) (BookingStatusView, error)
}

func (s DocsService) GenerateETicket(ctx context.Context, pnr int64) ([]byte, string, error) {
	view, err := s.load(ctx, pnr)
	if err != nil {
		return nil, "", err
	}
	if view.Booking.Status == models.StatusCancelled {
		return nil, "", domain.ValidationError{Field: "pnr", Msg: "booking is cancelled"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("pnr=%d", pnr))
	return buildETicketPDF(view)
}

func (s DocsService) load(ctx context.Context, pnr int64) (BookingStatusView, error) {
	if s.Loader != nil {
		return s.Loader(pnr)
	}
	return s.Status.Lookup(ctx, pnr)
}

func buildETicketPDF(v BookingStatusView) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("PNR            : %d", v.Booking.PNR),
		fmt.Sprintf("Booked by      : %s", safe(v.Booking.Holder, "-")),
		fmt.Sprintf("Train          : %d", v.Train.TrainNo),
		fmt.Sprintf("Route          : %s -> %s", safe(v.Train.StartCity, "-"), safe(v.Train.EndCity, "-")),
		fmt.Sprintf("Departure      : %s", safe(v.Train.StartTime, "-")),
		fmt.Sprintf("Status         : %s", string(v.Booking.Status)),
	}
	if v.WaitlistLabel != "" {
		lines = append(lines, fmt.Sprintf("Waitlist       : %s", v.WaitlistLabel))
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range v.Passengers {
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s, %d, %s - %s", i+1, safe(p.Name, "-"), p.Age, safe(p.Gender, "-"), string(p.Status)))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Waiting List passengers board only after confirmation. Carry a valid ID for every confirmed passenger.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d.pdf", v.Booking.PNR)
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
