package models

type PassengerStatus string

const (
	PassengerConfirmed PassengerStatus = "Confirmed"
	PassengerWaiting   PassengerStatus = "Waiting List"
)

// Passenger is one seat-unit of a booking.
type Passenger struct {
	ID     int64           `json:"id"`
	PNR    int64           `json:"pnr"`
	Name   string          `json:"name"`
	Age    int             `json:"age"`
	Gender string          `json:"gender"`
	Status PassengerStatus `json:"status"`
}

// PassengerInput carries caller-supplied details for one requested seat.
// The ledger expects exactly one input per seat-unit, collected up front so
// no transaction waits on user input.
type PassengerInput struct {
	Name   string `json:"name" binding:"required"`
	Age    int    `json:"age" binding:"required"`
	Gender string `json:"gender"`
}
