package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

const errDuplicateEntry = 1062

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valJSON(v []string) any {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface{ Scan(dest ...any) error }

// Repo implements domain.Store. Inside Atomic, single-row reads lock with FOR UPDATE.
type Repo struct {
	db   *sql.DB
	q    dbtx
	inTx bool
}

func New(db *sql.DB) *Repo { return &Repo{db: db, q: db} }

func (r *Repo) Atomic(ctx context.Context, fn func(tx domain.Store) error) error {
	if r.inTx {
		return fn(r)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(&Repo{db: r.db, q: tx, inTx: true}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("rollback failed")
		}
		return err
	}
	return tx.Commit()
}

func (r *Repo) forUpdate(q string) string {
	if r.inTx {
		return q + ` FOR UPDATE`
	}
	return q
}

// mapErr converts driver errors into domain kinds.
func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) && me.Number == errDuplicateEntry {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, me.Message)
	}
	return err
}

// ---- hotels ----

func scanHotel(s scanner) (domain.Hotel, error) {
	var h domain.Hotel
	var lat, lon sql.NullFloat64
	var imgs []byte
	if err := s.Scan(&h.ID, &h.Name, &h.Address, &h.City, &lat, &lon, &imgs); err != nil {
		return domain.Hotel{}, mapErr(err)
	}
	if lat.Valid && lon.Valid {
		h.SetCoords(domain.Coords{Lat: lat.Float64, Lon: lon.Float64})
	}
	_ = json.Unmarshal(imgs, &h.ImageURLs)
	return h, nil
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	return scanHotel(r.q.QueryRowContext(ctx, r.forUpdate(getHotelSQL), id))
}

func (r *Repo) FindHotelByName(ctx context.Context, name string) (domain.Hotel, error) {
	return scanHotel(r.q.QueryRowContext(ctx, r.forUpdate(findHotelByNameSQL), name))
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.q.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) SaveHotel(ctx context.Context, h *domain.Hotel) error {
	if h.ID == 0 {
		res, err := r.q.ExecContext(ctx, insertHotelSQL,
			h.Name, h.Address, h.City, valF64(h.Lat), valF64(h.Lon), valJSON(h.ImageURLs))
		if err != nil {
			return mapErr(err)
		}
		h.ID, err = res.LastInsertId()
		return err
	}
	_, err := r.q.ExecContext(ctx, updateHotelSQL,
		h.Name, h.Address, h.City, valF64(h.Lat), valF64(h.Lon), valJSON(h.ImageURLs), h.ID)
	return mapErr(err)
}

func (r *Repo) CountAvailableRooms(ctx context.Context, hotelID int64) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, countAvailableRoomsSQL, hotelID).Scan(&n)
	return n, err
}

func (r *Repo) ListAvailableRoomsOfHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	return r.listRooms(ctx, listAvailableRoomsSQL, hotelID)
}

// ---- rooms ----

func scanRoom(s scanner) (domain.Room, error) {
	var rm domain.Room
	var desc sql.NullString
	var imgs []byte
	var deleted bool
	var hotelID sql.NullInt64
	if err := s.Scan(&rm.ID, &rm.Name, &rm.NumberOfBeds, &rm.PricePerNight, &desc, &imgs, &deleted, &hotelID); err != nil {
		return domain.Room{}, mapErr(err)
	}
	rm.Description = desc.String
	if deleted {
		rm.State = domain.RoomDeleted
	}
	if hotelID.Valid {
		id := hotelID.Int64
		rm.HotelID = &id
	}
	_ = json.Unmarshal(imgs, &rm.ImageURLs)
	return rm, nil
}

func (r *Repo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	return scanRoom(r.q.QueryRowContext(ctx, r.forUpdate(getRoomSQL), id))
}

func (r *Repo) FindRoomByName(ctx context.Context, name string) (domain.Room, error) {
	return scanRoom(r.q.QueryRowContext(ctx, r.forUpdate(findRoomByNameSQL), name))
}

func (r *Repo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return r.listRooms(ctx, listRoomsSQL)
}

func (r *Repo) listRooms(ctx context.Context, q string, args ...any) ([]domain.Room, error) {
	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *Repo) SaveRoom(ctx context.Context, rm *domain.Room) error {
	args := []any{rm.Name, rm.NumberOfBeds, rm.PricePerNight, rm.Description,
		valJSON(rm.ImageURLs), rm.Deleted(), valInt64(rm.HotelID)}
	if rm.ID == 0 {
		res, err := r.q.ExecContext(ctx, insertRoomSQL, args...)
		if err != nil {
			return mapErr(err)
		}
		rm.ID, err = res.LastInsertId()
		return err
	}
	_, err := r.q.ExecContext(ctx, updateRoomSQL, append(args, rm.ID)...)
	return mapErr(err)
}

// ---- reservations ----

func scanReservation(s scanner) (domain.Reservation, error) {
	var res domain.Reservation
	if err := s.Scan(&res.ID, &res.RoomID, &res.UserID, &res.GuestEmail, &res.StartDate, &res.EndDate,
		&res.NumberOfGuests, &res.Deleted, &res.CreatedAt); err != nil {
		return domain.Reservation{}, mapErr(err)
	}
	return res, nil
}

func (r *Repo) GetReservation(ctx context.Context, id int64) (domain.Reservation, error) {
	return scanReservation(r.q.QueryRowContext(ctx, r.forUpdate(getReservationSQL), id))
}

func (r *Repo) ListReservationsOfRoom(ctx context.Context, roomID int64) ([]domain.Reservation, error) {
	rows, err := r.q.QueryContext(ctx, listReservationsOfRoomSQL, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *Repo) SaveReservation(ctx context.Context, res *domain.Reservation) error {
	if res.ID == 0 {
		out, err := r.q.ExecContext(ctx, insertReservationSQL,
			res.RoomID, res.UserID, res.StartDate, res.EndDate, res.NumberOfGuests, res.Deleted)
		if err != nil {
			return mapErr(err)
		}
		res.ID, err = out.LastInsertId()
		return err
	}
	_, err := r.q.ExecContext(ctx, updateReservationSQL,
		res.StartDate, res.EndDate, res.NumberOfGuests, res.Deleted, res.ID)
	return mapErr(err)
}

// ---- users ----

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	var roles []byte
	if err := s.Scan(&u.ID, &u.Email, &u.PasswordHash, &roles); err != nil {
		return domain.User{}, mapErr(err)
	}
	_ = json.Unmarshal(roles, &u.Roles)
	return u, nil
}

func (r *Repo) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx, r.forUpdate(getUserSQL), id))
}

func (r *Repo) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx, r.forUpdate(findUserByEmailSQL), email))
}

func (r *Repo) SaveUser(ctx context.Context, u *domain.User) error {
	if u.ID == 0 {
		res, err := r.q.ExecContext(ctx, insertUserSQL, u.Email, u.PasswordHash, valJSON(u.Roles))
		if err != nil {
			return mapErr(err)
		}
		u.ID, err = res.LastInsertId()
		return err
	}
	_, err := r.q.ExecContext(ctx, updateUserSQL, u.Email, u.PasswordHash, valJSON(u.Roles), u.ID)
	return mapErr(err)
}

var _ domain.Store = (*Repo)(nil)
