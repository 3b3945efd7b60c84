package app

import (
	"fmt"

	"hotel_booking/internal/domain"
)

/********** hotels **********/

func toHotelCreationResponse(h domain.Hotel) HotelCreationResponse {
	return HotelCreationResponse{
		ID:        h.ID,
		Name:      h.Name,
		Address:   h.Address,
		City:      h.City,
		Latitude:  copyF64(h.Lat),
		Longitude: copyF64(h.Lon),
		ImageURLs: copyStrings(h.ImageURLs),
	}
}

func toHotelDetails(h domain.Hotel, rooms int) HotelDetails {
	return HotelDetails{
		ID:            h.ID,
		Name:          h.Name,
		Address:       h.Address,
		City:          h.City,
		NumberOfRooms: rooms,
		Latitude:      copyF64(h.Lat),
		Longitude:     copyF64(h.Lon),
		ImageURLs:     copyStrings(h.ImageURLs),
	}
}

func withWeather(d HotelDetails, w domain.Weather) HotelDetails {
	t := w.Temperature
	d.Temperature = &t
	d.WeatherDescription = w.Description
	return d
}

func toHotelGeocoding(h domain.Hotel, g domain.Geocode) HotelGeocoding {
	return HotelGeocoding{
		HotelID:          h.ID,
		Name:             h.Name,
		Address:          h.Address,
		FormattedAddress: g.Formatted,
		Latitude:         g.Lat,
		Longitude:        g.Lon,
	}
}

func toHotelAndRoomInfo(h domain.Hotel, r domain.Room) HotelAndRoomInfo {
	return HotelAndRoomInfo{HotelID: h.ID, HotelName: h.Name, RoomID: r.ID, RoomName: r.Name}
}

/********** rooms **********/

func toRoomDetails(r domain.Room) RoomDetails {
	var hotelID *int64
	if r.HotelID != nil {
		id := *r.HotelID
		hotelID = &id
	}
	return RoomDetails{
		ID:            r.ID,
		Name:          r.Name,
		NumberOfBeds:  r.NumberOfBeds,
		PricePerNight: r.PricePerNight,
		Description:   r.Description,
		ImageURLs:     copyStrings(r.ImageURLs),
		HotelID:       hotelID,
		Deleted:       r.Deleted(),
	}
}

func toRoomListItem(r domain.Room) RoomListItem {
	return RoomListItem{
		ID:            r.ID,
		Name:          r.Name,
		NumberOfBeds:  r.NumberOfBeds,
		PricePerNight: r.PricePerNight,
		ImageURLs:     copyStrings(r.ImageURLs),
	}
}

func toRoomDeletionResponse(r domain.Room) RoomDeletionResponse {
	return RoomDeletionResponse{
		ID:              r.ID,
		Name:            r.Name,
		DeletionMessage: fmt.Sprintf("Room with id %d and name %s has been deleted.", r.ID, r.Name),
	}
}

/********** reservations **********/

func toReservationDetails(r domain.Reservation) ReservationDetails {
	return ReservationDetails{
		ID:             r.ID,
		RoomID:         r.RoomID,
		GuestEmail:     r.GuestEmail,
		StartDate:      r.StartDate.Format(DateLayout),
		EndDate:        r.EndDate.Format(DateLayout),
		Nights:         r.Nights(),
		NumberOfGuests: r.NumberOfGuests,
		Cancelled:      r.Deleted,
	}
}

/********** users **********/

func toUserInfo(u domain.User) UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email, Roles: copyStrings(u.Roles)}
}

/********** tiny helpers **********/

// copyStrings keeps views from aliasing entity slices; nil becomes an empty list.
func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyF64(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
