package domain

import (
	"fmt"
	"strings"
)

// RoomState is the soft-delete lifecycle of a room. Deleted is terminal.
type RoomState uint8

const (
	RoomActive RoomState = iota
	RoomDeleted
)

func (s RoomState) String() string {
	if s == RoomDeleted {
		return "deleted"
	}
	return "active"
}

type Room struct {
	ID            int64
	Name          string
	NumberOfBeds  int
	PricePerNight float64
	Description   string
	ImageURLs     []string
	State         RoomState
	HotelID       *int64 // nil while the room is not assigned to a hotel
}

func (r *Room) Deleted() bool { return r.State == RoomDeleted }

// EnsureActive guards every mutation of a room.
func (r *Room) EnsureActive() error {
	if r.Deleted() {
		return fmt.Errorf("room %d: %w", r.ID, ErrAlreadyDeleted)
	}
	return nil
}

// Delete moves the room into its terminal state.
func (r *Room) Delete() error {
	if err := r.EnsureActive(); err != nil {
		return err
	}
	r.State = RoomDeleted
	return nil
}

func (r *Room) AppendImages(urls []string) {
	r.ImageURLs = appendURLs(r.ImageURLs, urls)
}

// AssignTo attaches the room to a hotel.
func (r *Room) AssignTo(hotelID int64) error {
	if err := r.EnsureActive(); err != nil {
		return err
	}
	r.HotelID = &hotelID
	return nil
}

// RoomPatch is a partial room update: a nil field leaves the stored value unchanged.
type RoomPatch struct {
	Name          *string
	NumberOfBeds  *int
	PricePerNight *float64
	Description   *string
}

// NewRoomPatch builds a patch treating blank strings as absent.
func NewRoomPatch(name string, beds *int, price *float64, description string) RoomPatch {
	return RoomPatch{
		Name:          nonBlank(name),
		NumberOfBeds:  beds,
		PricePerNight: price,
		Description:   nonBlank(description),
	}
}

func (p RoomPatch) Empty() bool {
	return p.Name == nil && p.NumberOfBeds == nil && p.PricePerNight == nil && p.Description == nil
}

// Apply overwrites every present field, even when equal to the current value.
func (r *Room) Apply(p RoomPatch) error {
	if err := r.EnsureActive(); err != nil {
		return err
	}
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.NumberOfBeds != nil {
		r.NumberOfBeds = *p.NumberOfBeds
	}
	if p.PricePerNight != nil {
		r.PricePerNight = *p.PricePerNight
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	return nil
}

func nonBlank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
