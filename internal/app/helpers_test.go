package app_test

import (
	"context"
	"testing"

	"hotel_booking/internal/app"
	"hotel_booking/internal/app/apptest"
	"hotel_booking/internal/domain"
)

// ---- fixture ----

type fixture struct {
	store     *apptest.Store
	uploader  *apptest.Uploader
	weather   *apptest.Weather
	geo       *apptest.Geocoder
	profanity *apptest.Profanity

	hotels       *app.HotelService
	rooms        *app.RoomService
	reservations *app.ReservationService
	users        *app.UserService
}

func newFixture() *fixture {
	f := &fixture{
		store:     apptest.NewStore(),
		uploader:  &apptest.Uploader{},
		weather:   &apptest.Weather{Reading: domain.Weather{Temperature: 21.5, Description: "clear sky"}},
		geo:       &apptest.Geocoder{Coords: domain.Coords{Lat: 47.4979, Lon: 19.0402}},
		profanity: &apptest.Profanity{Words: []string{"darn"}},
	}
	f.hotels = app.NewHotelService(f.store, f.uploader, f.weather, f.geo)
	f.rooms = app.NewRoomService(f.store, f.uploader, f.profanity)
	f.reservations = app.NewReservationService(f.store)
	f.users = app.NewUserService(f.store, apptest.Credentials{})
	return f
}

func (f *fixture) mustRoom(t *testing.T, name string, images ...domain.Image) app.RoomDetails {
	t.Helper()
	r, err := f.rooms.CreateRoom(context.Background(), app.RoomForm{
		Name: name, NumberOfBeds: 2, PricePerNight: 80, Description: "quiet room", Images: images,
	})
	if err != nil {
		t.Fatalf("create room %q: %v", name, err)
	}
	return r
}

func (f *fixture) mustHotel(t *testing.T, name string, images ...domain.Image) app.HotelCreationResponse {
	t.Helper()
	h, err := f.hotels.CreateHotel(context.Background(), app.HotelCreateRequest{
		Name: name, Address: "Andrássy út 1", City: "Budapest", Images: images,
	})
	if err != nil {
		t.Fatalf("create hotel %q: %v", name, err)
	}
	return h
}

func (f *fixture) mustUser(t *testing.T, email string) app.UserInfo {
	t.Helper()
	u, err := f.users.RegistrationUser(context.Background(), app.UserRegistrationForm{Email: email, Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("register %q: %v", email, err)
	}
	return u
}

func img(s string) domain.Image { return domain.Image{Filename: s + ".jpg", Data: []byte(s)} }

func ptr[T any](v T) *T { return &v }
