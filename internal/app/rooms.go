package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

type RoomService struct {
	store     domain.Store
	images    domain.ImageUploader
	profanity domain.ProfanityFilter
}

func NewRoomService(s domain.Store, img domain.ImageUploader, p domain.ProfanityFilter) *RoomService {
	return &RoomService{store: s, images: img, profanity: p}
}

// GetRoomList lists every room, deleted ones included.
func (s *RoomService) GetRoomList(ctx context.Context) ([]RoomListItem, error) {
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RoomListItem, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomListItem(r))
	}
	return out, nil
}

// CreateRoom rejects a duplicate name first, then profanity, and only then persists.
func (s *RoomService) CreateRoom(ctx context.Context, form RoomForm) (RoomDetails, error) {
	if err := validateRequest(form); err != nil {
		return RoomDetails{}, err
	}

	var r domain.Room
	err := s.store.Atomic(ctx, func(tx domain.Store) error {
		_, ferr := tx.FindRoomByName(ctx, form.Name)
		found, err := exists(ferr)
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("room %q: %w", form.Name, domain.ErrAlreadyExists)
		}
		if err := s.checkProfanity(ctx, form.Description, form.Name); err != nil {
			return err
		}

		r = domain.Room{
			Name:          form.Name,
			NumberOfBeds:  form.NumberOfBeds,
			PricePerNight: form.PricePerNight,
			Description:   form.Description,
		}
		if err := tx.SaveRoom(ctx, &r); err != nil {
			return err
		}
		urls, err := s.images.UploadImages(ctx, form.Images)
		if err != nil {
			return asKind(err, domain.ErrUploadFailed)
		}
		if len(urls) == 0 {
			return nil
		}
		r.AppendImages(urls)
		return tx.SaveRoom(ctx, &r)
	})
	if err != nil {
		log.Warn().Err(err).Str("name", form.Name).Msg("create room failed")
		return RoomDetails{}, err
	}

	log.Info().Int64("room_id", r.ID).Msg("room created")
	return toRoomDetails(r), nil
}

func (s *RoomService) GetRoomDetails(ctx context.Context, roomID int64) (RoomDetails, error) {
	r, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return RoomDetails{}, fmt.Errorf("room %d: %w", roomID, err)
	}
	return toRoomDetails(r), nil
}

// DeleteRoom soft-deletes the room; a second delete fails with ErrAlreadyDeleted.
func (s *RoomService) DeleteRoom(ctx context.Context, roomID int64) (RoomDeletionResponse, error) {
	var r domain.Room
	err := s.store.Atomic(ctx, func(tx domain.Store) error {
		var err error
		if r, err = s.loadRoom(ctx, tx, roomID); err != nil {
			return err
		}
		if err := r.Delete(); err != nil {
			return err
		}
		return tx.SaveRoom(ctx, &r)
	})
	if err != nil {
		return RoomDeletionResponse{}, err
	}
	log.Info().Int64("room_id", roomID).Msg("room deleted")
	return toRoomDeletionResponse(r), nil
}

// UpdateRoomValues applies a partial update: absent or blank fields keep their
// stored value, new image urls are appended.
func (s *RoomService) UpdateRoomValues(ctx context.Context, form RoomFormUpdate) (RoomDetails, error) {
	if err := validateRequest(form); err != nil {
		return RoomDetails{}, err
	}

	var r domain.Room
	err := s.store.Atomic(ctx, func(tx domain.Store) error {
		var err error
		if r, err = s.loadActiveRoom(ctx, tx, form.ID); err != nil {
			return err
		}

		p := form.patch()
		if p.Name != nil && *p.Name != r.Name {
			other, ferr := tx.FindRoomByName(ctx, *p.Name)
			found, err := exists(ferr)
			if err != nil {
				return err
			}
			if found && other.ID != r.ID {
				return fmt.Errorf("room %q: %w", *p.Name, domain.ErrAlreadyExists)
			}
		}
		if err := s.checkProfanity(ctx, deref(p.Description), deref(p.Name)); err != nil {
			return err
		}
		if err := r.Apply(p); err != nil {
			return err
		}

		urls, err := s.images.UploadImages(ctx, form.Images)
		if err != nil {
			return asKind(err, domain.ErrUploadFailed)
		}
		r.AppendImages(urls)
		return tx.SaveRoom(ctx, &r)
	})
	if err != nil {
		return RoomDetails{}, err
	}
	log.Info().Int64("room_id", r.ID).Msg("room updated")
	return toRoomDetails(r), nil
}

// GetRoomDetailsWithReservations lists the room's reservations, cancelled ones excluded.
func (s *RoomService) GetRoomDetailsWithReservations(ctx context.Context, roomID int64) (RoomDetailsWithReservations, error) {
	r, err := s.loadActiveRoom(ctx, s.store, roomID)
	if err != nil {
		return RoomDetailsWithReservations{}, err
	}
	rs, err := s.store.ListReservationsOfRoom(ctx, roomID)
	if err != nil {
		return RoomDetailsWithReservations{}, err
	}
	out := RoomDetailsWithReservations{
		RoomDetails:  toRoomDetails(r),
		Reservations: make([]ReservationDetails, 0, len(rs)),
	}
	for _, res := range rs {
		if res.Deleted {
			continue
		}
		out.Reservations = append(out.Reservations, toReservationDetails(res))
	}
	return out, nil
}

func (s *RoomService) UploadImage(ctx context.Context, roomID int64, images []domain.Image) (RoomDetails, error) {
	var r domain.Room
	err := s.store.Atomic(ctx, func(tx domain.Store) error {
		var err error
		if r, err = s.loadActiveRoom(ctx, tx, roomID); err != nil {
			return err
		}
		urls, err := s.images.UploadImages(ctx, images)
		if err != nil {
			return asKind(err, domain.ErrUploadFailed)
		}
		r.AppendImages(urls)
		return tx.SaveRoom(ctx, &r)
	})
	if err != nil {
		return RoomDetails{}, err
	}
	return toRoomDetails(r), nil
}

func (s *RoomService) loadRoom(ctx context.Context, st domain.Store, roomID int64) (domain.Room, error) {
	r, err := st.GetRoom(ctx, roomID)
	if err != nil {
		return domain.Room{}, fmt.Errorf("room %d: %w", roomID, err)
	}
	return r, nil
}

func (s *RoomService) loadActiveRoom(ctx context.Context, st domain.Store, roomID int64) (domain.Room, error) {
	r, err := s.loadRoom(ctx, st, roomID)
	if err != nil {
		return domain.Room{}, err
	}
	return r, r.EnsureActive()
}

// checkProfanity checks every non-blank text.
func (s *RoomService) checkProfanity(ctx context.Context, texts ...string) error {
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		bad, err := s.profanity.ContainsProfanity(ctx, t)
		if err != nil {
			return asKind(err, domain.ErrProfanityUnavailable)
		}
		if bad {
			return domain.ErrProfanityFound
		}
	}
	return nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
