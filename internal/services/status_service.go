package services

import (
	"context"
	"database/sql"

	"railbook/internal/domain/models"
	"railbook/internal/repositories"
)

// BookingStatusView is the PNR enquiry payload: booking, its train, and the
// passenger rows, with the waitlist span rendered as "start-end".
type BookingStatusView struct {
	Booking       models.Booking     `json:"booking"`
	Train         models.Train       `json:"train"`
	Passengers    []models.Passenger `json:"passengers"`
	WaitlistLabel string             `json:"waitlist_label,omitempty"`
}

// StatusService answers read-only PNR lookups outside any transaction.
type StatusService struct {
	DB         *sql.DB
	Trains     repositories.TrainRepo
	Bookings   repositories.BookingRepo
	Passengers repositories.PassengerRepo
}

func (s StatusService) Lookup(ctx context.Context, pnr int64) (BookingStatusView, error) {
	booking, err := s.Bookings.Get(s.DB, pnr)
	if err != nil {
		return BookingStatusView{}, err
	}
	train, err := s.Trains.GetByNo(s.DB, booking.TrainNo)
	if err != nil {
		return BookingStatusView{}, err
	}
	passengers, err := s.Passengers.ListByPNR(s.DB, pnr)
	if err != nil {
		return BookingStatusView{}, err
	}

	view := BookingStatusView{Booking: booking, Train: train, Passengers: passengers}
	if booking.Waitlist != nil {
		view.WaitlistLabel = booking.Waitlist.String()
	}
	return view, nil
}
