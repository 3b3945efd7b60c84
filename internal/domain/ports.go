package domain

import (
	"context"
	"time"
)

// Store is the entity store. Save* inserts when ID is zero and updates otherwise,
// writing the generated id back into the entity.
type Store interface {
	// Atomic runs fn inside one transaction; rows read through the Store passed
	// to fn are locked until it returns.
	Atomic(ctx context.Context, fn func(tx Store) error) error

	// Hotels
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	FindHotelByName(ctx context.Context, name string) (Hotel, error)
	ListHotels(ctx context.Context) ([]Hotel, error)
	SaveHotel(ctx context.Context, h *Hotel) error
	CountAvailableRooms(ctx context.Context, hotelID int64) (int, error)
	ListAvailableRoomsOfHotel(ctx context.Context, hotelID int64) ([]Room, error)

	// Rooms
	GetRoom(ctx context.Context, id int64) (Room, error)
	FindRoomByName(ctx context.Context, name string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	SaveRoom(ctx context.Context, r *Room) error

	// Reservations
	GetReservation(ctx context.Context, id int64) (Reservation, error)
	ListReservationsOfRoom(ctx context.Context, roomID int64) ([]Reservation, error)
	SaveReservation(ctx context.Context, r *Reservation) error

	// Users
	GetUser(ctx context.Context, id int64) (User, error)
	FindUserByEmail(ctx context.Context, email string) (User, error)
	SaveUser(ctx context.Context, u *User) error
}

// Image is one uploaded binary payload.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (i Image) Empty() bool { return len(i.Data) == 0 }

type ImageUploader interface {
	// UploadImages returns one url per non-empty image, in input order.
	UploadImages(ctx context.Context, images []Image) ([]string, error)
}

type Weather struct {
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
}

type ForecastEntry struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description"`
}

type Forecast struct {
	City    string          `json:"city"`
	Entries []ForecastEntry `json:"entries"`
}

type WeatherGateway interface {
	Current(ctx context.Context, city string) (Weather, error)
	Forecast(ctx context.Context, city string) (Forecast, error)
}

type Geocode struct {
	Coords
	Formatted string
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (Geocode, error)
}

type ProfanityFilter interface {
	ContainsProfanity(ctx context.Context, text string) (bool, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Principal is an authenticated caller.
type Principal struct {
	UserID int64
	Email  string
	Roles  []string
}

type Credentials interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) bool
	IssueToken(u User) (string, error)
	ParseToken(token string) (Principal, error)
}
