package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrAlreadyExists        = errors.New("already exists")
	ErrAlreadyDeleted       = errors.New("already deleted")
	ErrHotelHasNoRooms      = errors.New("hotel has no rooms")
	ErrProfanityFound       = errors.New("profanity found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrUploadFailed         = errors.New("image upload failed")
	ErrWeatherUnavailable   = errors.New("weather service unavailable")
	ErrGeocodingUnavailable = errors.New("geocoding service unavailable")
	ErrProfanityUnavailable = errors.New("profanity service unavailable")
)
