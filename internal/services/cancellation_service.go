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

type CancelResult struct {
	PNR        int64 `json:"pnr"`
	FreedSeats int   `json:"freed_seats"`
	Promoted   int   `json:"promoted"`
	Refund     int64 `json:"refund"`
}

// CancellationService reverses a booking and promotes the longest-waiting
// passengers into the freed capacity. The whole operation, refund included,
// is one transaction; the refund is the last write before commit so every
// validation has already passed when the balance moves.
type CancellationService struct {
	DB         *sql.DB
	TxOptions  *sql.TxOptions
	Trains     repositories.TrainRepo
	Waitlist   repositories.WaitlistRepo
	Bookings   repositories.BookingRepo
	Passengers repositories.PassengerRepo
	Payments   Payments
	RequestID  string
}

func (s CancellationService) Cancel(ctx context.Context, pnr int64, account string) (CancelResult, error) {
	tx, err := s.DB.BeginTx(ctx, s.TxOptions)
	if err != nil {
		return CancelResult{}, domain.StorageError{Op: "cancel", Err: err}
	}
	defer tx.Rollback()

	booking, err := s.Bookings.GetForUpdate(tx, pnr)
	if err != nil {
		return CancelResult{}, err
	}
	if booking.Status == models.StatusCancelled {
		return CancelResult{}, domain.AlreadyCancelledError{PNR: pnr}
	}

	// Locking the train row both validates the train before the refund and
	// serializes the promotion against concurrent bookings.
	train, err := s.Trains.GetForUpdate(tx, booking.TrainNo)
	if err != nil {
		return CancelResult{}, err
	}

	total, err := s.Passengers.Count(tx, pnr)
	if err != nil {
		return CancelResult{}, err
	}
	freed, err := s.Passengers.CountByStatus(tx, pnr, models.PassengerConfirmed)
	if err != nil {
		return CancelResult{}, err
	}
	waiting := total - freed

	if err := s.Passengers.DeleteByPNR(tx, pnr); err != nil {
		return CancelResult{}, err
	}
	if err := s.Bookings.MarkCancelled(tx, pnr); err != nil {
		return CancelResult{}, err
	}

	promoted := 0
	switch {
	case freed > 0:
		promoted, err = s.promote(tx, booking.TrainNo, freed, train.AvailableSeats, waiting)
		if err != nil {
			return CancelResult{}, err
		}
	case waiting > 0:
		// Waitlist-only booking: the queue shrinks without freeing seats.
		count, err := s.Waitlist.CountForUpdate(tx, booking.TrainNo)
		if err != nil {
			return CancelResult{}, err
		}
		if err := s.Waitlist.SetCount(tx, booking.TrainNo, count-waiting); err != nil {
			return CancelResult{}, err
		}
		if err := s.renumber(tx, booking.TrainNo); err != nil {
			return CancelResult{}, err
		}
	}

	refund := train.Fare * int64(total)
	if refund > 0 {
		if err := s.Payments.Refund(tx, account, refund); err != nil {
			return CancelResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return CancelResult{}, domain.StorageError{Op: "cancel commit", Err: err}
	}

	utils.LogEvent(s.RequestID, "cancellation", "cancel",
		fmt.Sprintf("pnr=%d train=%d freed=%d promoted=%d refund=%d", pnr, booking.TrainNo, freed, promoted, refund))
	return CancelResult{PNR: pnr, FreedSeats: freed, Promoted: promoted, Refund: refund}, nil
}

// promote moves up to freed waiting passengers to Confirmed, oldest queue
// range first. availBefore is the seat count read under the train row lock;
// cancelledWaiting is the queue width the cancelled booking itself gave up.
// Only the net surplus of freed seats becomes available again.
func (s CancellationService) promote(q dbtx, trainNo int64, freed, availBefore, cancelledWaiting int) (int, error) {
	count, err := s.Waitlist.CountForUpdate(q, trainNo)
	if err != nil {
		return 0, err
	}
	count -= cancelledWaiting

	if count <= 0 {
		if err := s.Waitlist.SetCount(q, trainNo, 0); err != nil {
			return 0, err
		}
		return 0, s.Trains.SetAvailable(q, trainNo, availBefore+freed)
	}

	waiters, err := s.Bookings.WaitingByTrain(q, trainNo)
	if err != nil {
		return 0, err
	}

	remaining := freed
	promoted := 0
	for _, w := range waiters {
		if remaining == 0 {
			break
		}
		width, err := s.Passengers.CountByStatus(q, w.PNR, models.PassengerWaiting)
		if err != nil {
			return 0, err
		}
		if width == 0 {
			continue
		}
		n := width
		if remaining < n {
			n = remaining
		}
		if err := s.Passengers.PromoteOldest(q, w.PNR, n); err != nil {
			return 0, err
		}
		if n == width {
			if err := s.Bookings.SetStatusRange(q, w.PNR, models.StatusConfirmed, nil); err != nil {
				return 0, err
			}
		} else {
			// Narrow to the still-waiting tail; the renumbering pass below
			// compacts the whole queue before anything commits.
			narrowed := models.WaitlistRange{Start: w.Waitlist.Start + n, End: w.Waitlist.End}
			if err := s.Bookings.SetStatusRange(q, w.PNR, models.StatusPartiallyConfirmed, &narrowed); err != nil {
				return 0, err
			}
		}
		promoted += n
		remaining -= n
	}

	if err := s.Waitlist.SetCount(q, trainNo, count-promoted); err != nil {
		return 0, err
	}
	if err := s.Trains.SetAvailable(q, trainNo, availBefore+freed-promoted); err != nil {
		return 0, err
	}
	if err := s.renumber(q, trainNo); err != nil {
		return 0, err
	}
	return promoted, nil
}

// renumber reassigns compact ordinal ranges starting at 1, walking the
// remaining waiting bookings in queue order. It runs inside the same
// transaction as the mutation that disturbed the queue, so contiguity holds
// at every committed state.
func (s CancellationService) renumber(q dbtx, trainNo int64) error {
	waiters, err := s.Bookings.WaitingByTrain(q, trainNo)
	if err != nil {
		return err
	}

	next := 1
	for _, w := range waiters {
		width, err := s.Passengers.CountByStatus(q, w.PNR, models.PassengerWaiting)
		if err != nil {
			return err
		}
		if width == 0 {
			if err := s.Bookings.SetRange(q, w.PNR, nil); err != nil {
				return err
			}
			continue
		}
		rng := models.WaitlistRange{Start: next, End: next + width - 1}
		if err := s.Bookings.SetRange(q, w.PNR, &rng); err != nil {
			return err
		}
		next += width
	}
	return nil
}
