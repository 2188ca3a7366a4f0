package repositories

import (
	"database/sql"
	"errors"

	intdb "railbook/internal/db"
	"railbook/internal/domain"
	"railbook/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

// BookingRepo stores PNR records. The pnr column carries a unique key; a
// duplicate insert surfaces as ConflictError so the ledger can re-draw.
type BookingRepo struct{}

const bookingColumns = `pnr, train_no, holder, status, waitlist_start, waitlist_end`

func scanBooking(scan func(dest ...any) error) (models.Booking, error) {
	var (
		b          models.Booking
		start, end sql.NullInt64
	)
	if err := scan(&b.PNR, &b.TrainNo, &b.Holder, &b.Status, &start, &end); err != nil {
		return models.Booking{}, err
	}
	if start.Valid && end.Valid {
		b.Waitlist = &models.WaitlistRange{Start: int(start.Int64), End: int(end.Int64)}
	}
	return b, nil
}

func rangeArgs(r *models.WaitlistRange) (any, any) {
	if r == nil {
		return nil, nil
	}
	return r.Start, r.End
}

// Exists reports whether a reference is already taken.
func (BookingRepo) Exists(q intdb.DBTX, pnr int64) (bool, error) {
	var got int64
	err := q.QueryRow(`SELECT pnr FROM bookings WHERE pnr=?`, pnr).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (BookingRepo) Insert(q intdb.DBTX, b models.Booking) error {
	start, end := rangeArgs(b.Waitlist)
	_, err := q.Exec(`INSERT INTO bookings (pnr, train_no, holder, status, waitlist_start, waitlist_end, created_at) VALUES (?, ?, ?, ?, ?, ?, NOW())`,
		b.PNR, b.TrainNo, b.Holder, string(b.Status), start, end)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return domain.ConflictError{Resource: "booking", Msg: "reference already taken", Err: err}
		}
		return err
	}
	return nil
}

// GetForUpdate locks the booking row for cancellation.
func (BookingRepo) GetForUpdate(q intdb.DBTX, pnr int64) (models.Booking, error) {
	row := q.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE pnr=? FOR UPDATE`, pnr)
	b, err := scanBooking(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, err
	}
	return b, nil
}

func (BookingRepo) Get(q intdb.DBTX, pnr int64) (models.Booking, error) {
	row := q.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE pnr=?`, pnr)
	b, err := scanBooking(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, err
	}
	return b, nil
}

// WaitingByTrain lists bookings still holding queue ordinals, oldest first.
// Range-start order is the FIFO tie-break for promotion and renumbering.
func (BookingRepo) WaitingByTrain(q intdb.DBTX, trainNo int64) ([]models.Booking, error) {
	rows, err := q.Query(`SELECT `+bookingColumns+` FROM bookings WHERE train_no=? AND waitlist_start IS NOT NULL AND status <> 'Cancelled' ORDER BY waitlist_start FOR UPDATE`, trainNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SetStatusRange rewrites a booking's status and queue span together so they
// can never disagree.
func (BookingRepo) SetStatusRange(q intdb.DBTX, pnr int64, status models.BookingStatus, r *models.WaitlistRange) error {
	start, end := rangeArgs(r)
	_, err := q.Exec(`UPDATE bookings SET status=?, waitlist_start=?, waitlist_end=? WHERE pnr=?`, string(status), start, end, pnr)
	return err
}

// SetRange rewrites only the queue span (renumbering pass).
func (BookingRepo) SetRange(q intdb.DBTX, pnr int64, r *models.WaitlistRange) error {
	start, end := rangeArgs(r)
	_, err := q.Exec(`UPDATE bookings SET waitlist_start=?, waitlist_end=? WHERE pnr=?`, start, end, pnr)
	return err
}

// MarkCancelled is terminal; the row is kept, never deleted.
func (BookingRepo) MarkCancelled(q intdb.DBTX, pnr int64) error {
	_, err := q.Exec(`UPDATE bookings SET status='Cancelled', waitlist_start=NULL, waitlist_end=NULL WHERE pnr=?`, pnr)
	return err
}
