package services

import (
	"math/rand"

	intdb "railbook/internal/db"
	"railbook/internal/domain"
	"railbook/internal/repositories"
)

// referenceAttempts bounds the unique-reference draw before the booking
// attempt is aborted with ReferenceExhausted.
const referenceAttempts = 5

// ReferenceAllocator draws PNR candidates from a wide numeric space and
// checks them against existing bookings. The check is not atomic against a
// concurrent allocation; the unique key on bookings.pnr is the backstop
// (duplicate insert maps to ConflictError and rolls the booking back).
type ReferenceAllocator struct {
	Bookings repositories.BookingRepo

	// Draw overrides the candidate source; tests use it to force collisions.
	Draw func() int64
}

func (a ReferenceAllocator) draw() int64 {
	if a.Draw != nil {
		return a.Draw()
	}
	return 1000 + rand.Int63n(999999000)
}

// Allocate returns a reference unused at the time of the check. It performs
// reads only, so a failed allocation leaves no state behind.
func (a ReferenceAllocator) Allocate(q intdb.DBTX) (int64, error) {
	for i := 0; i < referenceAttempts; i++ {
		pnr := a.draw()
		exists, err := a.Bookings.Exists(q, pnr)
		if err != nil {
			return 0, err
		}
		if !exists {
			return pnr, nil
		}
	}
	return 0, domain.ReferenceExhaustedError{Attempts: referenceAttempts}
}
