package services

import (
	"testing"

	"railbook/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAllocateReturnsFirstFreeReference(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	candidates := []int64{111, 111, 222}
	i := 0
	alloc := ReferenceAllocator{Draw: func() int64 {
		pnr := candidates[i]
		i++
		return pnr
	}}

	// Two collisions, then a free candidate.
	mock.ExpectQuery(`SELECT pnr FROM bookings WHERE pnr=\?`).
		WithArgs(int64(111)).
		WillReturnRows(sqlmock.NewRows([]string{"pnr"}).AddRow(111))
	mock.ExpectQuery(`SELECT pnr FROM bookings WHERE pnr=\?`).
		WithArgs(int64(111)).
		WillReturnRows(sqlmock.NewRows([]string{"pnr"}).AddRow(111))
	mock.ExpectQuery(`SELECT pnr FROM bookings WHERE pnr=\?`).
		WithArgs(int64(222)).
		WillReturnRows(sqlmock.NewRows([]string{"pnr"}))

	pnr, err := alloc.Allocate(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pnr != 222 {
		t.Fatalf("wrong reference: got %d want 222", pnr)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// All five attempts colliding must surface ReferenceExhausted with reads
// only; any write would trip the mock as an unexpected call.
func TestAllocateExhaustsAfterFiveCollisions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	alloc := ReferenceAllocator{Draw: func() int64 { return 777 }}

	for i := 0; i < 5; i++ {
		mock.ExpectQuery(`SELECT pnr FROM bookings WHERE pnr=\?`).
			WithArgs(int64(777)).
			WillReturnRows(sqlmock.NewRows([]string{"pnr"}).AddRow(777))
	}

	_, err = alloc.Allocate(db)
	if !domain.IsReferenceExhausted(err) {
		t.Fatalf("expected reference exhausted, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAllocateDefaultDrawStaysInRange(t *testing.T) {
	alloc := ReferenceAllocator{}
	for i := 0; i < 1000; i++ {
		pnr := alloc.draw()
		if pnr < 1000 || pnr >= 1000000000 {
			t.Fatalf("reference %d outside [1000, 1e9)", pnr)
		}
	}
}
