package repositories

import (
	"database/sql"
	"errors"

	intdb "railbook/internal/db"
	"railbook/internal/domain"
	"railbook/internal/domain/models"
)

// TrainRepo is the capacity store. Mutating paths must run on a *sql.Tx and
// start from GetForUpdate so the train row stays locked for the whole
// book/cancel/promote sequence.
type TrainRepo struct{}

const trainColumns = `train_no, start_city, end_city, start_time, total_seats, available_seats, fare`

func scanTrain(row *sql.Row) (models.Train, error) {
	var t models.Train
	err := row.Scan(&t.TrainNo, &t.StartCity, &t.EndCity, &t.StartTime, &t.TotalSeats, &t.AvailableSeats, &t.Fare)
	return t, err
}

// GetForUpdate locks the train's capacity row for the calling transaction.
func (TrainRepo) GetForUpdate(q intdb.DBTX, trainNo int64) (models.Train, error) {
	row := q.QueryRow(`SELECT `+trainColumns+` FROM trains WHERE train_no=? FOR UPDATE`, trainNo)
	t, err := scanTrain(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Train{}, domain.NotFoundError{Resource: "train"}
		}
		return models.Train{}, err
	}
	return t, nil
}

// GetByNo is the non-locking read used by search and status lookups.
func (TrainRepo) GetByNo(q intdb.DBTX, trainNo int64) (models.Train, error) {
	row := q.QueryRow(`SELECT `+trainColumns+` FROM trains WHERE train_no=?`, trainNo)
	t, err := scanTrain(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Train{}, domain.NotFoundError{Resource: "train"}
		}
		return models.Train{}, err
	}
	return t, nil
}

// Search lists trains serving a route. Empty filters list everything.
func (TrainRepo) Search(q intdb.DBTX, from, to string) ([]models.Train, error) {
	query := `SELECT ` + trainColumns + ` FROM trains`
	args := []any{}
	switch {
	case from != "" && to != "":
		query += ` WHERE start_city=? AND end_city=?`
		args = append(args, from, to)
	case from != "":
		query += ` WHERE start_city=?`
		args = append(args, from)
	case to != "":
		query += ` WHERE end_city=?`
		args = append(args, to)
	}
	query += ` ORDER BY train_no`

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Train{}
	for rows.Next() {
		var t models.Train
		if err := rows.Scan(&t.TrainNo, &t.StartCity, &t.EndCity, &t.StartTime, &t.TotalSeats, &t.AvailableSeats, &t.Fare); err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// TakeSeats decrements available_seats by n. The availability guard backs up
// the row lock: zero rows affected means the classification went stale.
func (TrainRepo) TakeSeats(q intdb.DBTX, trainNo int64, n int) error {
	res, err := q.Exec(`UPDATE trains SET available_seats = available_seats - ? WHERE train_no = ? AND available_seats >= ?`, n, trainNo, n)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ConflictError{Resource: "train", Msg: "seat availability changed"}
	}
	return nil
}

// SetAvailable writes the post-promotion seat count.
func (TrainRepo) SetAvailable(q intdb.DBTX, trainNo int64, n int) error {
	_, err := q.Exec(`UPDATE trains SET available_seats = ? WHERE train_no = ?`, n, trainNo)
	return err
}
