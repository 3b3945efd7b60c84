package domain

import (
	"fmt"
	"time"
)

type Reservation struct {
	ID             int64
	RoomID         int64
	UserID         int64
	GuestEmail     string // joined from the user on reads
	StartDate      time.Time
	EndDate        time.Time
	NumberOfGuests int
	Deleted        bool
	CreatedAt      time.Time
}

func (r *Reservation) Cancel() error {
	if r.Deleted {
		return fmt.Errorf("reservation %d: %w", r.ID, ErrAlreadyDeleted)
	}
	r.Deleted = true
	return nil
}

// Nights is the number of nights covered by the reservation.
func (r Reservation) Nights() int {
	return int(r.EndDate.Sub(r.StartDate).Hours() / 24)
}
