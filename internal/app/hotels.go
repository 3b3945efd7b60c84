package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

type HotelService struct {
	store   domain.Store
	images  domain.ImageUploader
	weather domain.WeatherGateway
	geo     domain.Geocoder
}

func NewHotelService(s domain.Store, img domain.ImageUploader, w domain.WeatherGateway, g domain.Geocoder) *HotelService {
	return &HotelService{store: s, images: img, weather: w, geo: g}
}

// CreateHotel persists the hotel, uploads its images and geocodes it in one transaction.
// A failed upload or geocoding rolls the hotel row back; images already sent stay remote.
func (s *HotelService) CreateHotel(ctx context.Context, req HotelCreateRequest) (HotelCreationResponse, error) {
	if err := validateRequest(req); err != nil {
		return HotelCreationResponse{}, err
	}

	var h domain.Hotel
	err := s.store.Atomic(ctx, func(tx domain.Store) error {
		_, ferr := tx.FindHotelByName(ctx, req.Name)
		found, err := exists(ferr)
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("hotel %q: %w", req.Name, domain.ErrAlreadyExists)
		}

		h = domain.Hotel{Name: req.Name, Address: req.Address, City: req.City}
		if err := tx.SaveHotel(ctx, &h); err != nil {
			return err
		}

		urls, err := s.images.UploadImages(ctx, req.Images)
		if err != nil {
			return asKind(err, domain.ErrUploadFailed)
		}
		h.AppendImages(urls)

		g, err := s.geocode(ctx, h)
		if err != nil {
			return err
		}
		h.SetCoords(g.Coords)
		return tx.SaveHotel(ctx, &h)
	})
	if err != nil {
		log.Warn().Err(err).Str("name", req.Name).Msg("create hotel failed")
		return HotelCreationResponse{}, err
	}

	log.Info().Int64("hotel_id", h.ID).Int("images", len(h.ImageURLs)).Msg("hotel created")
	return toHotelCreationResponse(h), nil
}

func (s *HotelService) AddRoomToHotel(ctx context.Context, hotelID, roomID int64) (HotelAndRoomInfo, error) {
	var out HotelAndRoomInfo
	err := s.store.Atomic(ctx, func(tx domain.Store) error {
		h, err := tx.GetHotel(ctx, hotelID)
		if err != nil {
			return fmt.Errorf("hotel %d: %w", hotelID, err)
		}
		r, err := tx.GetRoom(ctx, roomID)
		if err != nil {
			return fmt.Errorf("room %d: %w", roomID, err)
		}
		if err := r.AssignTo(h.ID); err != nil {
			return err
		}
		if err := tx.SaveRoom(ctx, &r); err != nil {
			return err
		}
		out = toHotelAndRoomInfo(h, r)
		return nil
	})
	if err != nil {
		return HotelAndRoomInfo{}, err
	}
	log.Info().Int64("hotel_id", hotelID).Int64("room_id", roomID).Msg("room assigned to hotel")
	return out, nil
}

func (s *HotelService) ListAllRoomsOfHotel(ctx context.Context, hotelID int64) ([]RoomDetails, error) {
	if _, err := s.store.GetHotel(ctx, hotelID); err != nil {
		return nil, fmt.Errorf("hotel %d: %w", hotelID, err)
	}
	rooms, err := s.store.ListAvailableRoomsOfHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("hotel %d: %w", hotelID, domain.ErrHotelHasNoRooms)
	}
	out := make([]RoomDetails, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomDetails(r))
	}
	return out, nil
}

// ListHotelDetails enriches every hotel with its room count and current weather.
// One failed weather lookup fails the whole listing.
func (s *HotelService) ListHotelDetails(ctx context.Context) ([]HotelDetails, error) {
	hotels, err := s.store.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]HotelDetails, 0, len(hotels))
	for _, h := range hotels {
		d, err := s.details(ctx, h)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *HotelService) GetHotelDetails(ctx context.Context, hotelID int64) (HotelDetails, error) {
	h, err := s.store.GetHotel(ctx, hotelID)
	if err != nil {
		return HotelDetails{}, fmt.Errorf("hotel %d: %w", hotelID, err)
	}
	return s.details(ctx, h)
}

func (s *HotelService) details(ctx context.Context, h domain.Hotel) (HotelDetails, error) {
	n, err := s.store.CountAvailableRooms(ctx, h.ID)
	if err != nil {
		return HotelDetails{}, err
	}
	w, err := s.weather.Current(ctx, h.City)
	if err != nil {
		return HotelDetails{}, fmt.Errorf("hotel %d: %w", h.ID, asKind(err, domain.ErrWeatherUnavailable))
	}
	return withWeather(toHotelDetails(h, n), w), nil
}

// UploadImage appends the uploaded urls to the hotel's list.
func (s *HotelService) UploadImage(ctx context.Context, hotelID int64, images []domain.Image) (HotelDetails, error) {
	var out HotelDetails
	err := s.store.Atomic(ctx, func(tx domain.Store) error {
		h, err := tx.GetHotel(ctx, hotelID)
		if err != nil {
			return fmt.Errorf("hotel %d: %w", hotelID, err)
		}
		urls, err := s.images.UploadImages(ctx, images)
		if err != nil {
			return asKind(err, domain.ErrUploadFailed)
		}
		h.AppendImages(urls)
		if err := tx.SaveHotel(ctx, &h); err != nil {
			return err
		}
		n, err := tx.CountAvailableRooms(ctx, h.ID)
		if err != nil {
			return err
		}
		out = toHotelDetails(h, n)
		return nil
	})
	return out, err
}

func (s *HotelService) GetForecast(ctx context.Context, hotelID int64) (domain.Forecast, error) {
	h, err := s.store.GetHotel(ctx, hotelID)
	if err != nil {
		return domain.Forecast{}, fmt.Errorf("hotel %d: %w", hotelID, err)
	}
	f, err := s.weather.Forecast(ctx, h.City)
	if err != nil {
		return domain.Forecast{}, fmt.Errorf("hotel %d: %w", hotelID, asKind(err, domain.ErrWeatherUnavailable))
	}
	return f, nil
}

func (s *HotelService) GetGeocodingDetails(ctx context.Context, hotelID int64) (HotelGeocoding, error) {
	h, err := s.store.GetHotel(ctx, hotelID)
	if err != nil {
		return HotelGeocoding{}, fmt.Errorf("hotel %d: %w", hotelID, err)
	}
	g, err := s.geocode(ctx, h)
	if err != nil {
		return HotelGeocoding{}, err
	}
	return toHotelGeocoding(h, g), nil
}

// GetHotelsForMap geocodes every hotel; any failure aborts the list.
func (s *HotelService) GetHotelsForMap(ctx context.Context) ([]HotelGeocoding, error) {
	hotels, err := s.store.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]HotelGeocoding, 0, len(hotels))
	for _, h := range hotels {
		g, err := s.geocode(ctx, h)
		if err != nil {
			return nil, err
		}
		out = append(out, toHotelGeocoding(h, g))
	}
	return out, nil
}

// HotelsMissingCoordinates returns the ids of hotels never geocoded.
func (s *HotelService) HotelsMissingCoordinates(ctx context.Context) ([]int64, error) {
	hotels, err := s.store.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	var ids []int64
	for _, h := range hotels {
		if !h.HasCoords() {
			ids = append(ids, h.ID)
		}
	}
	return ids, nil
}

// RefreshCoordinates geocodes one hotel and stores the result.
func (s *HotelService) RefreshCoordinates(ctx context.Context, hotelID int64) (HotelGeocoding, error) {
	var out HotelGeocoding
	err := s.store.Atomic(ctx, func(tx domain.Store) error {
		h, err := tx.GetHotel(ctx, hotelID)
		if err != nil {
			return fmt.Errorf("hotel %d: %w", hotelID, err)
		}
		g, err := s.geocode(ctx, h)
		if err != nil {
			return err
		}
		h.SetCoords(g.Coords)
		if err := tx.SaveHotel(ctx, &h); err != nil {
			return err
		}
		out = toHotelGeocoding(h, g)
		return nil
	})
	return out, err
}

func (s *HotelService) geocode(ctx context.Context, h domain.Hotel) (domain.Geocode, error) {
	g, err := s.geo.Geocode(ctx, geocodeQuery(h))
	if err != nil {
		return domain.Geocode{}, fmt.Errorf("hotel %d: %w", h.ID, asKind(err, domain.ErrGeocodingUnavailable))
	}
	return g, nil
}

func geocodeQuery(h domain.Hotel) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{h.Address, h.City} {
		if t := strings.TrimSpace(p); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, ", ")
}
