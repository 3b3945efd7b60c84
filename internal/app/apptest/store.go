// Package apptest provides in-memory fakes of the domain ports for tests.
package apptest

import (
	"context"
	"sort"
	"sync"

	"hotel_booking/internal/domain"
)

// Store is an in-memory domain.Store. Atomic restores the previous state when fn fails.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	hotels       map[int64]domain.Hotel
	rooms        map[int64]domain.Room
	reservations map[int64]domain.Reservation
	users        map[int64]domain.User
	nextID       int64

	// FailSave makes every Save* return the error.
	FailSave error
}

func NewStore() *Store {
	return &Store{
		hotels:       map[int64]domain.Hotel{},
		rooms:        map[int64]domain.Room{},
		reservations: map[int64]domain.Reservation{},
		users:        map[int64]domain.User{},
	}
}

func (s *Store) Atomic(ctx context.Context, fn func(tx domain.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	hotels       map[int64]domain.Hotel
	rooms        map[int64]domain.Room
	reservations map[int64]domain.Reservation
	users        map[int64]domain.User
	nextID       int64
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	sn := snapshot{
		hotels:       make(map[int64]domain.Hotel, len(s.hotels)),
		rooms:        make(map[int64]domain.Room, len(s.rooms)),
		reservations: make(map[int64]domain.Reservation, len(s.reservations)),
		users:        make(map[int64]domain.User, len(s.users)),
		nextID:       s.nextID,
	}
	for k, v := range s.hotels {
		sn.hotels[k] = cloneHotel(v)
	}
	for k, v := range s.rooms {
		sn.rooms[k] = cloneRoom(v)
	}
	for k, v := range s.reservations {
		sn.reservations[k] = v
	}
	for k, v := range s.users {
		sn.users[k] = cloneUser(v)
	}
	return sn
}

func (s *Store) restore(sn snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hotels, s.rooms, s.reservations, s.users, s.nextID = sn.hotels, sn.rooms, sn.reservations, sn.users, sn.nextID
}

func (s *Store) id(cur int64) int64 {
	if cur != 0 {
		return cur
	}
	s.nextID++
	return s.nextID
}

// ---- hotels ----

func (s *Store) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return cloneHotel(h), nil
}

func (s *Store) FindHotelByName(ctx context.Context, name string) (domain.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.hotels {
		if h.Name == name {
			return cloneHotel(h), nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}

func (s *Store) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Hotel, 0, len(s.hotels))
	for _, h := range s.hotels {
		out = append(out, cloneHotel(h))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SaveHotel(ctx context.Context, h *domain.Hotel) error {
	if s.FailSave != nil {
		return s.FailSave
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.hotels {
		if o.Name == h.Name && o.ID != h.ID {
			return domain.ErrAlreadyExists
		}
	}
	h.ID = s.id(h.ID)
	s.hotels[h.ID] = cloneHotel(*h)
	return nil
}

func (s *Store) CountAvailableRooms(ctx context.Context, hotelID int64) (int, error) {
	rooms, err := s.ListAvailableRoomsOfHotel(ctx, hotelID)
	return len(rooms), err
}

func (s *Store) ListAvailableRoomsOfHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Room
	for _, r := range s.rooms {
		if r.HotelID != nil && *r.HotelID == hotelID && !r.Deleted() {
			out = append(out, cloneRoom(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---- rooms ----

func (s *Store) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	return cloneRoom(r), nil
}

func (s *Store) FindRoomByName(ctx context.Context, name string) (domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if r.Name == name {
			return cloneRoom(r), nil
		}
	}
	return domain.Room{}, domain.ErrNotFound
}

func (s *Store) ListRooms(ctx context.Context) ([]domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, cloneRoom(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SaveRoom(ctx context.Context, r *domain.Room) error {
	if s.FailSave != nil {
		return s.FailSave
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.id(r.ID)
	s.rooms[r.ID] = cloneRoom(*r)
	return nil
}

// ---- reservations ----

func (s *Store) GetReservation(ctx context.Context, id int64) (domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return domain.Reservation{}, domain.ErrNotFound
	}
	r.GuestEmail = s.users[r.UserID].Email
	return r, nil
}

func (s *Store) ListReservationsOfRoom(ctx context.Context, roomID int64) ([]domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Reservation
	for _, r := range s.reservations {
		if r.RoomID == roomID {
			r.GuestEmail = s.users[r.UserID].Email
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SaveReservation(ctx context.Context, r *domain.Reservation) error {
	if s.FailSave != nil {
		return s.FailSave
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.id(r.ID)
	s.reservations[r.ID] = *r
	return nil
}

// ---- users ----

func (s *Store) GetUser(ctx context.Context, id int64) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (s *Store) SaveUser(ctx context.Context, u *domain.User) error {
	if s.FailSave != nil {
		return s.FailSave
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.id(u.ID)
	s.users[u.ID] = cloneUser(*u)
	return nil
}

// ---- clones ----

func cloneHotel(h domain.Hotel) domain.Hotel {
	h.ImageURLs = append([]string(nil), h.ImageURLs...)
	if h.Lat != nil {
		v := *h.Lat
		h.Lat = &v
	}
	if h.Lon != nil {
		v := *h.Lon
		h.Lon = &v
	}
	return h
}

func cloneRoom(r domain.Room) domain.Room {
	r.ImageURLs = append([]string(nil), r.ImageURLs...)
	if r.HotelID != nil {
		v := *r.HotelID
		r.HotelID = &v
	}
	return r
}

func cloneUser(u domain.User) domain.User {
	u.Roles = append([]string(nil), u.Roles...)
	return u
}
