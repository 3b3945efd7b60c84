package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

type ReservationService struct {
	store domain.Store
}

func NewReservationService(s domain.Store) *ReservationService {
	return &ReservationService{store: s}
}

// RecordsReservation stores the reservation as requested. Availability is not checked.
func (s *ReservationService) RecordsReservation(ctx context.Context, req ReservationRequest) (ReservationDetails, error) {
	if err := validateRequest(req); err != nil {
		return ReservationDetails{}, err
	}

	var res domain.Reservation
	err := s.store.Atomic(ctx, func(tx domain.Store) error {
		room, err := tx.GetRoom(ctx, req.RoomID)
		if err != nil {
			return fmt.Errorf("room %d: %w", req.RoomID, err)
		}
		if err := room.EnsureActive(); err != nil {
			return err
		}
		u, err := tx.GetUser(ctx, req.UserID)
		if err != nil {
			return fmt.Errorf("user %d: %w", req.UserID, err)
		}

		res = domain.Reservation{
			RoomID:         room.ID,
			UserID:         u.ID,
			GuestEmail:     u.Email,
			StartDate:      req.StartDate,
			EndDate:        req.EndDate,
			NumberOfGuests: req.NumberOfGuests,
		}
		return tx.SaveReservation(ctx, &res)
	})
	if err != nil {
		return ReservationDetails{}, err
	}

	log.Info().Int64("reservation_id", res.ID).Int64("room_id", res.RoomID).Msg("reservation recorded")
	return toReservationDetails(res), nil
}

// CancelReservation soft-deletes a reservation.
func (s *ReservationService) CancelReservation(ctx context.Context, id int64) (ReservationDetails, error) {
	var res domain.Reservation
	err := s.store.Atomic(ctx, func(tx domain.Store) error {
		var err error
		if res, err = tx.GetReservation(ctx, id); err != nil {
			return fmt.Errorf("reservation %d: %w", id, err)
		}
		if err := res.Cancel(); err != nil {
			return err
		}
		return tx.SaveReservation(ctx, &res)
	})
	if err != nil {
		return ReservationDetails{}, err
	}
	log.Info().Int64("reservation_id", id).Msg("reservation cancelled")
	return toReservationDetails(res), nil
}
