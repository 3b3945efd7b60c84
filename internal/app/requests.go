package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hotel_booking/internal/domain"
)

type HotelCreateRequest struct {
	Name    string         `json:"name" validate:"required,min=1,max=200"`
	Address string         `json:"address" validate:"required,min=1,max=200"`
	City    string         `json:"city" validate:"required,max=100"`
	Images  []domain.Image `json:"-"`
}

type RoomForm struct {
	Name          string         `json:"name" validate:"required,min=1,max=200"`
	NumberOfBeds  int            `json:"numberOfBeds" validate:"required,min=1,max=20"`
	PricePerNight float64        `json:"pricePerNight" validate:"required,gt=0"`
	Description   string         `json:"description" validate:"max=2000"`
	Images        []domain.Image `json:"-"`
}

// RoomFormUpdate carries a partial update; blank strings and nil numbers mean "unchanged".
type RoomFormUpdate struct {
	ID            int64          `json:"id" validate:"required"`
	Name          string         `json:"name" validate:"max=200"`
	NumberOfBeds  *int           `json:"numberOfBeds" validate:"omitempty,min=1,max=20"`
	PricePerNight *float64       `json:"pricePerNight" validate:"omitempty,gt=0"`
	Description   string         `json:"description" validate:"max=2000"`
	Images        []domain.Image `json:"-"`
}

func (f RoomFormUpdate) patch() domain.RoomPatch {
	return domain.NewRoomPatch(f.Name, f.NumberOfBeds, f.PricePerNight, f.Description)
}

type ReservationRequest struct {
	RoomID         int64     `json:"roomId" validate:"required"`
	UserID         int64     `json:"userId" validate:"required"`
	StartDate      time.Time `json:"startDate" validate:"required"`
	EndDate        time.Time `json:"endDate" validate:"required,gtfield=StartDate"`
	NumberOfGuests int       `json:"numberOfGuests" validate:"required,min=1,max=20"`
}

type UserRegistrationForm struct {
	Email    string `json:"email" validate:"required,email,max=200"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so messages match the request payload
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}
