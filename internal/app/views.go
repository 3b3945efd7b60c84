package app

const DateLayout = "2006-01-02"

type HotelCreationResponse struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	ImageURLs []string `json:"imageUrls"`
}

type HotelDetails struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Address            string   `json:"address"`
	City               string   `json:"city"`
	NumberOfRooms      int      `json:"numberOfRooms"`
	Temperature        *float64 `json:"temperature,omitempty"`
	WeatherDescription string   `json:"weatherDescription,omitempty"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	ImageURLs          []string `json:"imageUrls"`
}

type HotelAndRoomInfo struct {
	HotelID   int64  `json:"hotelId"`
	HotelName string `json:"hotelName"`
	RoomID    int64  `json:"roomId"`
	RoomName  string `json:"roomName"`
}

type HotelGeocoding struct {
	HotelID          int64   `json:"hotelId"`
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	FormattedAddress string  `json:"formattedAddress,omitempty"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

type RoomDetails struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	NumberOfBeds  int      `json:"numberOfBeds"`
	PricePerNight float64  `json:"pricePerNight"`
	Description   string   `json:"description"`
	ImageURLs     []string `json:"imageUrls"`
	HotelID       *int64   `json:"hotelId,omitempty"`
	Deleted       bool     `json:"deleted"`
}

type RoomListItem struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	NumberOfBeds  int      `json:"numberOfBeds"`
	PricePerNight float64  `json:"pricePerNight"`
	ImageURLs     []string `json:"imageUrl"`
}

type RoomDeletionResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DeletionMessage string `json:"deletionMessage"`
}

type ReservationDetails struct {
	ID             int64  `json:"id"`
	RoomID         int64  `json:"roomId"`
	GuestEmail     string `json:"guestEmail"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	Nights         int    `json:"nights"`
	NumberOfGuests int    `json:"numberOfGuests"`
	Cancelled      bool   `json:"cancelled,omitempty"`
}

type RoomDetailsWithReservations struct {
	RoomDetails
	Reservations []ReservationDetails `json:"reservationDetails"`
}

type UserInfo struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type AuthStatus struct {
	Authenticated bool     `json:"authenticated"`
	Email         string   `json:"email"`
	Roles         []string `json:"roles"`
	Message       string   `json:"message"`
}
