package services

import (
	"context"
	"database/sql"
	"fmt"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/repositories"
	"railbook/internal/utils"
)

// BookRequest carries everything a booking needs up front. Passenger details
// are collected before the transaction opens; one input per requested seat.
type BookRequest struct {
	TrainNo    int64
	Holder     string
	Account    string
	Passengers []models.PassengerInput
}

type BookResult struct {
	PNR        int64                 `json:"pnr"`
	Status     models.BookingStatus  `json:"status"`
	Confirmed  int                   `json:"confirmed"`
	Waitlisted int                   `json:"waitlisted"`
	Waitlist   *models.WaitlistRange `json:"waitlist,omitempty"`
	AmountPaid int64                 `json:"amount_paid"`
}

// BookingService is the booking ledger: it classifies a seat request into
// full confirm, full waitlist, or split, and applies the whole outcome as
// one transaction. The train's capacity row is locked first, so the
// read-classify-write sequence is serialized per train.
type BookingService struct {
	DB         *sql.DB
	TxOptions  *sql.TxOptions
	Trains     repositories.TrainRepo
	Waitlist   repositories.WaitlistRepo
	Bookings   repositories.BookingRepo
	Passengers repositories.PassengerRepo
	Refs       ReferenceAllocator
	Payments   Payments
	RequestID  string
}

func (s BookingService) Book(ctx context.Context, req BookRequest) (BookResult, error) {
	requested := len(req.Passengers)

	tx, err := s.DB.BeginTx(ctx, s.TxOptions)
	if err != nil {
		return BookResult{}, domain.StorageError{Op: "book", Err: err}
	}
	defer tx.Rollback()

	train, err := s.Trains.GetForUpdate(tx, req.TrainNo)
	if err != nil {
		return BookResult{}, err
	}

	pnr, err := s.Refs.Allocate(tx)
	if err != nil {
		return BookResult{}, err
	}

	amount := train.Fare * int64(requested)
	if err := s.Payments.Pay(tx, req.Account, amount); err != nil {
		return BookResult{}, err
	}

	res := BookResult{PNR: pnr, AmountPaid: amount}

	switch {
	case requested <= train.AvailableSeats:
		// Full confirm; requested == available is still a full confirm.
		if err := s.Trains.TakeSeats(tx, req.TrainNo, requested); err != nil {
			return BookResult{}, err
		}
		if err := s.Bookings.Insert(tx, models.Booking{
			PNR: pnr, TrainNo: req.TrainNo, Holder: req.Holder, Status: models.StatusConfirmed,
		}); err != nil {
			return BookResult{}, err
		}
		for _, p := range req.Passengers {
			if err := s.Passengers.Insert(tx, pnr, p, models.PassengerConfirmed); err != nil {
				return BookResult{}, err
			}
		}
		res.Status = models.StatusConfirmed
		res.Confirmed = requested

	case train.AvailableSeats == 0:
		// Full waitlist: append behind the current queue tail.
		prev, err := s.Waitlist.CountForUpdate(tx, req.TrainNo)
		if err != nil {
			return BookResult{}, err
		}
		if err := s.Waitlist.Add(tx, req.TrainNo, requested); err != nil {
			return BookResult{}, err
		}
		rng := models.WaitlistRange{Start: prev + 1, End: prev + requested}
		if err := s.Bookings.Insert(tx, models.Booking{
			PNR: pnr, TrainNo: req.TrainNo, Holder: req.Holder, Status: models.StatusWaitingList, Waitlist: &rng,
		}); err != nil {
			return BookResult{}, err
		}
		for _, p := range req.Passengers {
			if err := s.Passengers.Insert(tx, pnr, p, models.PassengerWaiting); err != nil {
				return BookResult{}, err
			}
		}
		res.Status = models.StatusWaitingList
		res.Waitlisted = requested
		res.Waitlist = &rng

	default:
		// Split: drain the remaining seats, waitlist the rest under the
		// same reference. Details keep their entry order: the first
		// `confirmed` inputs get the seats.
		confirmed := train.AvailableSeats
		waiting := requested - confirmed

		if err := s.Trains.TakeSeats(tx, req.TrainNo, confirmed); err != nil {
			return BookResult{}, err
		}
		prev, err := s.Waitlist.CountForUpdate(tx, req.TrainNo)
		if err != nil {
			return BookResult{}, err
		}
		if err := s.Waitlist.Add(tx, req.TrainNo, waiting); err != nil {
			return BookResult{}, err
		}
		rng := models.WaitlistRange{Start: prev + 1, End: prev + waiting}
		if err := s.Bookings.Insert(tx, models.Booking{
			PNR: pnr, TrainNo: req.TrainNo, Holder: req.Holder, Status: models.StatusPartiallyBooked, Waitlist: &rng,
		}); err != nil {
			return BookResult{}, err
		}
		for i, p := range req.Passengers {
			status := models.PassengerConfirmed
			if i >= confirmed {
				status = models.PassengerWaiting
			}
			if err := s.Passengers.Insert(tx, pnr, p, status); err != nil {
				return BookResult{}, err
			}
		}
		res.Status = models.StatusPartiallyBooked
		res.Confirmed = confirmed
		res.Waitlisted = waiting
		res.Waitlist = &rng
	}

	if err := tx.Commit(); err != nil {
		return BookResult{}, domain.StorageError{Op: "book commit", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "book",
		fmt.Sprintf("pnr=%d train=%d status=%q confirmed=%d waitlisted=%d", pnr, req.TrainNo, res.Status, res.Confirmed, res.Waitlisted))
	return res, nil
}
