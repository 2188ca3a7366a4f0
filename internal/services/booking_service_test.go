package services

import (
	"context"
	"testing"

	"railbook/internal/domain"
	"railbook/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

const testPNR = int64(424242)

func newBookingMock(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := BookingService{
		DB:       db,
		Payments: WalletPayments{},
		Refs:     ReferenceAllocator{Draw: func() int64 { return testPNR }},
	}
	return svc, mock, func() { db.Close() }
}

func trainRows(trainNo int64, total, available int, fare int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"train_no", "start_city", "end_city", "start_time", "total_seats", "available_seats", "fare"}).
		AddRow(trainNo, "Chennai", "Bengaluru", "06:00", total, available, fare)
}

func expectFreshPNR(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT pnr FROM bookings WHERE pnr=\?`).
		WithArgs(testPNR).
		WillReturnRows(sqlmock.NewRows([]string{"pnr"}))
}

func expectPayment(mock sqlmock.Sqlmock, account string, balance, amount int64) {
	mock.ExpectQuery(`SELECT balance FROM wallets WHERE account_id=\? FOR UPDATE`).
		WithArgs(account).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(balance))
	mock.ExpectExec(`UPDATE wallets SET balance = balance - \?`).
		WithArgs(amount, account).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func passengerInput(name string) models.PassengerInput {
	return models.PassengerInput{Name: name, Age: 30, Gender: "F"}
}

func bookReq(trainNo int64, names ...string) BookRequest {
	req := BookRequest{TrainNo: trainNo, Holder: "alice", Account: "demo@upi"}
	for _, n := range names {
		req.Passengers = append(req.Passengers, passengerInput(n))
	}
	return req
}

func TestBookFullConfirm(t *testing.T) {
	svc, mock, done := newBookingMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trains WHERE train_no=\? FOR UPDATE`).
		WithArgs(int64(12001)).
		WillReturnRows(trainRows(12001, 100, 10, 100))
	expectFreshPNR(mock)
	expectPayment(mock, "demo@upi", 10000, 200)
	mock.ExpectExec(`UPDATE trains SET available_seats = available_seats - \?`).
		WithArgs(2, int64(12001), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(testPNR, int64(12001), "alice", "Confirmed", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO passengers`).
		WithArgs(testPNR, "Asha", 30, "F", "Confirmed").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO passengers`).
		WithArgs(testPNR, "Bala", 30, "F", "Confirmed").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	res, err := svc.Book(context.Background(), bookReq(12001, "Asha", "Bala"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PNR != testPNR {
		t.Fatalf("wrong pnr: got %d", res.PNR)
	}
	if res.Status != "Confirmed" || res.Confirmed != 2 || res.Waitlisted != 0 {
		t.Fatalf("wrong outcome: %+v", res)
	}
	if res.Waitlist != nil {
		t.Fatalf("full confirm must not carry a waitlist range")
	}
	if res.AmountPaid != 200 {
		t.Fatalf("wrong amount paid: %d", res.AmountPaid)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookExactFitIsFullConfirm(t *testing.T) {
	svc, mock, done := newBookingMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trains WHERE train_no=\? FOR UPDATE`).
		WithArgs(int64(12001)).
		WillReturnRows(trainRows(12001, 100, 2, 100))
	expectFreshPNR(mock)
	expectPayment(mock, "demo@upi", 10000, 200)
	mock.ExpectExec(`UPDATE trains SET available_seats = available_seats - \?`).
		WithArgs(2, int64(12001), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(testPNR, int64(12001), "alice", "Confirmed", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO passengers`).
		WithArgs(testPNR, "Asha", 30, "F", "Confirmed").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO passengers`).
		WithArgs(testPNR, "Bala", 30, "F", "Confirmed").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	res, err := svc.Book(context.Background(), bookReq(12001, "Asha", "Bala"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != "Confirmed" || res.Confirmed != 2 {
		t.Fatalf("requested == available must be a full confirm, got %+v", res)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookSplit(t *testing.T) {
	svc, mock, done := newBookingMock(t)
	defer done()

	// 2 seats left, 5 requested: 2 confirm, 3 join the queue at 1-3.
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trains WHERE train_no=\? FOR UPDATE`).
		WithArgs(int64(12001)).
		WillReturnRows(trainRows(12001, 100, 2, 100))
	expectFreshPNR(mock)
	expectPayment(mock, "demo@upi", 10000, 500)
	mock.ExpectExec(`UPDATE trains SET available_seats = available_seats - \?`).
		WithArgs(2, int64(12001), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT waiting_count FROM waitlist WHERE train_no=\? FOR UPDATE`).
		WithArgs(int64(12001)).
		WillReturnRows(sqlmock.NewRows([]string{"waiting_count"}))
	mock.ExpectExec(`INSERT INTO waitlist`).
		WithArgs(int64(12001), 3, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(testPNR, int64(12001), "alice", "Partially Booked", 1, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for i, name := range []string{"P1", "P2", "P3", "P4", "P5"} {
		status := "Confirmed"
		if i >= 2 {
			status = "Waiting List"
		}
		mock.ExpectExec(`INSERT INTO passengers`).
			WithArgs(testPNR, name, 30, "F", status).
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}
	mock.ExpectCommit()

	res, err := svc.Book(context.Background(), bookReq(12001, "P1", "P2", "P3", "P4", "P5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != "Partially Booked" || res.Confirmed != 2 || res.Waitlisted != 3 {
		t.Fatalf("wrong split outcome: %+v", res)
	}
	if res.Waitlist == nil || res.Waitlist.Start != 1 || res.Waitlist.End != 3 {
		t.Fatalf("wrong waitlist range: %+v", res.Waitlist)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookFullWaitlistAppendsBehindQueue(t *testing.T) {
	svc, mock, done := newBookingMock(t)
	defer done()

	// Sold out with 3 already waiting: the new pair takes ordinals 4-5.
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trains WHERE train_no=\? FOR UPDATE`).
		WithArgs(int64(12001)).
		WillReturnRows(trainRows(12001, 100, 0, 100))
	expectFreshPNR(mock)
	expectPayment(mock, "demo@upi", 10000, 200)
	mock.ExpectQuery(`SELECT waiting_count FROM waitlist WHERE train_no=\? FOR UPDATE`).
		WithArgs(int64(12001)).
		WillReturnRows(sqlmock.NewRows([]string{"waiting_count"}).AddRow(3))
	mock.ExpectExec(`INSERT INTO waitlist`).
		WithArgs(int64(12001), 2, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(testPNR, int64(12001), "alice", "Waiting List", 4, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO passengers`).
		WithArgs(testPNR, "Asha", 30, "F", "Waiting List").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO passengers`).
		WithArgs(testPNR, "Bala", 30, "F", "Waiting List").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	res, err := svc.Book(context.Background(), bookReq(12001, "Asha", "Bala"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != "Waiting List" || res.Waitlisted != 2 || res.Confirmed != 0 {
		t.Fatalf("wrong outcome: %+v", res)
	}
	if res.Waitlist == nil || res.Waitlist.Start != 4 || res.Waitlist.End != 5 {
		t.Fatalf("wrong waitlist range: %+v", res.Waitlist)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookPaymentDeclinedRollsBack(t *testing.T) {
	svc, mock, done := newBookingMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trains WHERE train_no=\? FOR UPDATE`).
		WithArgs(int64(12001)).
		WillReturnRows(trainRows(12001, 100, 10, 100))
	expectFreshPNR(mock)
	mock.ExpectQuery(`SELECT balance FROM wallets WHERE account_id=\? FOR UPDATE`).
		WithArgs("demo@upi").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(50))
	mock.ExpectRollback()

	_, err := svc.Book(context.Background(), bookReq(12001, "Asha", "Bala"))
	if !domain.IsPaymentDeclined(err) {
		t.Fatalf("expected payment declined, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookUnknownAccountRollsBack(t *testing.T) {
	svc, mock, done := newBookingMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trains WHERE train_no=\? FOR UPDATE`).
		WithArgs(int64(12001)).
		WillReturnRows(trainRows(12001, 100, 10, 100))
	expectFreshPNR(mock)
	mock.ExpectQuery(`SELECT balance FROM wallets WHERE account_id=\? FOR UPDATE`).
		WithArgs("demo@upi").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))
	mock.ExpectRollback()

	_, err := svc.Book(context.Background(), bookReq(12001, "Asha"))
	if !domain.IsAccountNotFound(err) {
		t.Fatalf("expected account not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookTrainNotFound(t *testing.T) {
	svc, mock, done := newBookingMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trains WHERE train_no=\? FOR UPDATE`).
		WithArgs(int64(99999)).
		WillReturnRows(sqlmock.NewRows([]string{"train_no", "start_city", "end_city", "start_time", "total_seats", "available_seats", "fare"}))
	mock.ExpectRollback()

	_, err := svc.Book(context.Background(), bookReq(99999, "Asha"))
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
