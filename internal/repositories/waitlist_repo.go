package repositories

import (
	"database/sql"
	"errors"

	intdb "railbook/internal/db"
)

// WaitlistRepo holds the per-train aggregate waiting count. The row exists
// only while the count is positive; absence and zero are equivalent.
type WaitlistRepo struct{}

// CountForUpdate locks the aggregate row and returns its count, or 0 when
// the train has no waiting list.
func (WaitlistRepo) CountForUpdate(q intdb.DBTX, trainNo int64) (int, error) {
	var n int
	err := q.QueryRow(`SELECT waiting_count FROM waitlist WHERE train_no=? FOR UPDATE`, trainNo).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Add appends n to the aggregate, creating the row on first use.
func (WaitlistRepo) Add(q intdb.DBTX, trainNo int64, n int) error {
	_, err := q.Exec(`INSERT INTO waitlist (train_no, waiting_count) VALUES (?, ?) ON DUPLICATE KEY UPDATE waiting_count = waiting_count + ?`, trainNo, n, n)
	return err
}

// SetCount overwrites the aggregate; a count of zero or below deletes the
// row so it is never observed as a zero-valued record.
func (WaitlistRepo) SetCount(q intdb.DBTX, trainNo int64, n int) error {
	if n <= 0 {
		_, err := q.Exec(`DELETE FROM waitlist WHERE train_no=?`, trainNo)
		return err
	}
	_, err := q.Exec(`UPDATE waitlist SET waiting_count=? WHERE train_no=?`, n, trainNo)
	return err
}
