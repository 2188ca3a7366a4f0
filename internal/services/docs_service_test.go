package services

import (
	"bytes"
	"context"
	"testing"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
)

func ticketView(status models.BookingStatus) BookingStatusView {
	return BookingStatusView{
		Booking: models.Booking{PNR: 424242, TrainNo: 12001, Holder: "alice", Status: status},
		Train: models.Train{
			TrainNo: 12001, StartCity: "Chennai", EndCity: "Bengaluru",
			StartTime: "06:00", TotalSeats: 100, AvailableSeats: 10, Fare: 100,
		},
		Passengers: []models.Passenger{
			{ID: 1, PNR: 424242, Name: "Asha", Age: 30, Gender: "F", Status: models.PassengerConfirmed},
			{ID: 2, PNR: 424242, Name: "Bala", Age: 34, Gender: "M", Status: models.PassengerConfirmed},
		},
	}
}

func TestGenerateETicketProducesPDF(t *testing.T) {
	svc := DocsService{Loader: func(int64) (BookingStatusView, error) {
		return ticketView(models.StatusConfirmed), nil
	}}

	data, filename, err := svc.GenerateETicket(context.Background(), 424242)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filename != "ETICKET_424242.pdf" {
		t.Fatalf("wrong filename: %q", filename)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestGenerateETicketRejectsCancelledBooking(t *testing.T) {
	svc := DocsService{Loader: func(int64) (BookingStatusView, error) {
		return ticketView(models.StatusCancelled), nil
	}}

	_, _, err := svc.GenerateETicket(context.Background(), 424242)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
