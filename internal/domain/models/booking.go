package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type BookingStatus string

const (
	StatusConfirmed          BookingStatus = "Confirmed"
	StatusPartiallyBooked    BookingStatus = "Partially Booked"
	StatusWaitingList        BookingStatus = "Waiting List"
	StatusPartiallyConfirmed BookingStatus = "Partially Confirmed"
	StatusCancelled          BookingStatus = "Cancelled"
)

// WaitlistRange is the inclusive ordinal span a booking occupies in its
// train's FIFO waiting queue. Width equals the booking's count of
// Waiting List passengers.
type WaitlistRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r WaitlistRange) Width() int {
	return r.End - r.Start + 1
}

// String renders the range in the classic "start-end" PNR display form.
func (r WaitlistRange) String() string {
	return strconv.Itoa(r.Start) + "-" + strconv.Itoa(r.End)
}

// ParseWaitlistRange reads the "start-end" display form back.
func ParseWaitlistRange(s string) (WaitlistRange, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return WaitlistRange{}, fmt.Errorf("malformed waitlist range %q", s)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return WaitlistRange{}, fmt.Errorf("malformed waitlist range %q", s)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return WaitlistRange{}, fmt.Errorf("malformed waitlist range %q", s)
	}
	if start < 1 || end < start {
		return WaitlistRange{}, fmt.Errorf("malformed waitlist range %q", s)
	}
	return WaitlistRange{Start: start, End: end}, nil
}

// Booking is one PNR record covering one or more passengers. Waitlist is
// non-nil only while the booking still has Waiting List passengers.
type Booking struct {
	PNR       int64          `json:"pnr"`
	TrainNo   int64          `json:"train_no"`
	Holder    string         `json:"holder"`
	Status    BookingStatus  `json:"status"`
	Waitlist  *WaitlistRange `json:"waitlist,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
}
