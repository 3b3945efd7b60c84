package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

func reservationReq(roomID, userID int64, week int) app.ReservationRequest {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*week)
	return app.ReservationRequest{
		RoomID: roomID, UserID: userID, StartDate: start, EndDate: start.AddDate(0, 0, 3), NumberOfGuests: 2,
	}
}

func TestRecordsReservation(t *testing.T) {
	f := newFixture()
	r := f.mustRoom(t, "Blue")
	u := f.mustUser(t, "guest@example.com")

	res, err := f.reservations.RecordsReservation(context.Background(), reservationReq(r.ID, u.ID, 0))
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if res.ID == 0 || res.RoomID != r.ID || res.GuestEmail != "guest@example.com" {
		t.Fatalf("unexpected details: %+v", res)
	}
	if res.StartDate != "2026-06-01" || res.EndDate != "2026-06-04" || res.Nights != 3 {
		t.Fatalf("unexpected dates: %+v", res)
	}
}

func TestRecordsReservation_NoAvailabilityCheck(t *testing.T) {
	f := newFixture()
	r := f.mustRoom(t, "Blue")
	u := f.mustUser(t, "guest@example.com")
	for i := 0; i < 2; i++ {
		if _, err := f.reservations.RecordsReservation(context.Background(), reservationReq(r.ID, u.ID, 0)); err != nil {
			t.Fatalf("overlapping reservation %d rejected: %v", i, err)
		}
	}
}

func TestRecordsReservation_Rejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	r := f.mustRoom(t, "Blue")
	u := f.mustUser(t, "guest@example.com")

	if _, err := f.reservations.RecordsReservation(ctx, reservationReq(999, u.ID, 0)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown room: %v", err)
	}
	if _, err := f.reservations.RecordsReservation(ctx, reservationReq(r.ID, 999, 0)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown user: %v", err)
	}

	bad := reservationReq(r.ID, u.ID, 0)
	bad.EndDate = bad.StartDate
	if _, err := f.reservations.RecordsReservation(ctx, bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty range: %v", err)
	}

	_, _ = f.rooms.DeleteRoom(ctx, r.ID)
	if _, err := f.reservations.RecordsReservation(ctx, reservationReq(r.ID, u.ID, 1)); !errors.Is(err, domain.ErrAlreadyDeleted) {
		t.Fatalf("deleted room: %v", err)
	}
}

func TestCancelReservation_Twice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	r := f.mustRoom(t, "Blue")
	u := f.mustUser(t, "guest@example.com")
	res, _ := f.reservations.RecordsReservation(ctx, reservationReq(r.ID, u.ID, 0))

	out, err := f.reservations.CancelReservation(ctx, res.ID)
	if err != nil || !out.Cancelled {
		t.Fatalf("cancel: %+v %v", out, err)
	}
	if _, err := f.reservations.CancelReservation(ctx, res.ID); !errors.Is(err, domain.ErrAlreadyDeleted) {
		t.Fatalf("expected ErrAlreadyDeleted, got %v", err)
	}
	if _, err := f.reservations.CancelReservation(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
