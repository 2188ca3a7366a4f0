package repositories

import (
	intdb "railbook/internal/db"
	"railbook/internal/domain/models"
)

// PassengerRepo stores one row per purchased seat-unit.
type PassengerRepo struct{}

func (PassengerRepo) Insert(q intdb.DBTX, pnr int64, in models.PassengerInput, status models.PassengerStatus) error {
	_, err := q.Exec(`INSERT INTO passengers (pnr, name, age, gender, status) VALUES (?, ?, ?, ?, ?)`,
		pnr, in.Name, in.Age, in.Gender, string(status))
	return err
}

func (PassengerRepo) Count(q intdb.DBTX, pnr int64) (int, error) {
	var n int
	err := q.QueryRow(`SELECT COUNT(*) FROM passengers WHERE pnr=?`, pnr).Scan(&n)
	return n, err
}

func (PassengerRepo) CountByStatus(q intdb.DBTX, pnr int64, status models.PassengerStatus) (int, error) {
	var n int
	err := q.QueryRow(`SELECT COUNT(*) FROM passengers WHERE pnr=? AND status=?`, pnr, string(status)).Scan(&n)
	return n, err
}

// PromoteOldest flips n of the booking's Waiting List rows to Confirmed.
// Passengers of one booking are fungible seat-units; name order just keeps
// the selection stable.
func (PassengerRepo) PromoteOldest(q intdb.DBTX, pnr int64, n int) error {
	_, err := q.Exec(`UPDATE passengers SET status='Confirmed' WHERE pnr=? AND status='Waiting List' ORDER BY name LIMIT ?`, pnr, n)
	return err
}

func (PassengerRepo) ListByPNR(q intdb.DBTX, pnr int64) ([]models.Passenger, error) {
	rows, err := q.Query(`SELECT id, pnr, name, age, gender, status FROM passengers WHERE pnr=? ORDER BY id`, pnr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passenger{}
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.ID, &p.PNR, &p.Name, &p.Age, &p.Gender, &p.Status); err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteByPNR removes all seat-units at cancellation; passenger rows are
// not retained as history.
func (PassengerRepo) DeleteByPNR(q intdb.DBTX, pnr int64) error {
	_, err := q.Exec(`DELETE FROM passengers WHERE pnr=?`, pnr)
	return err
}
