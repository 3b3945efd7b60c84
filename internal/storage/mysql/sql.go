package mysql

const hotelCols = `id, name, address, city, lat, lon, image_urls`

const (
	getHotelSQL        = `SELECT ` + hotelCols + ` FROM hotels WHERE id = ?`
	findHotelByNameSQL = `SELECT ` + hotelCols + ` FROM hotels WHERE name = ?`
	listHotelsSQL      = `SELECT ` + hotelCols + ` FROM hotels ORDER BY id`

	insertHotelSQL = `
INSERT INTO hotels (name, address, city, lat, lon, image_urls)
VALUES (?, ?, ?, ?, ?, ?)`

	updateHotelSQL = `
UPDATE hotels SET
  name       = ?,
  address    = ?,
  city       = ?,
  lat        = ?,
  lon        = ?,
  image_urls = ?
WHERE id = ?`
)

const roomCols = `id, name, number_of_beds, price_per_night, description, image_urls, deleted, hotel_id`

const (
	getRoomSQL        = `SELECT ` + roomCols + ` FROM rooms WHERE id = ?`
	findRoomByNameSQL = `SELECT ` + roomCols + ` FROM rooms WHERE name = ?`
	listRoomsSQL      = `SELECT ` + roomCols + ` FROM rooms ORDER BY id`

	listAvailableRoomsSQL  = `SELECT ` + roomCols + ` FROM rooms WHERE hotel_id = ? AND deleted = FALSE ORDER BY id`
	countAvailableRoomsSQL = `SELECT COUNT(*) FROM rooms WHERE hotel_id = ? AND deleted = FALSE`

	insertRoomSQL = `
INSERT INTO rooms (name, number_of_beds, price_per_night, description, image_urls, deleted, hotel_id)
VALUES (?, ?, ?, ?, ?, ?, ?)`

	updateRoomSQL = `
UPDATE rooms SET
  name            = ?,
  number_of_beds  = ?,
  price_per_night = ?,
  description     = ?,
  image_urls      = ?,
  deleted         = ?,
  hotel_id        = ?
WHERE id = ?`
)

// reservations are always read joined with the guest's email
const reservationSelect = `
SELECT r.id, r.room_id, r.user_id, u.email, r.start_date, r.end_date,
       r.number_of_guests, r.deleted, r.created_at
FROM reservations r
JOIN users u ON u.id = r.user_id`

const (
	getReservationSQL         = reservationSelect + ` WHERE r.id = ?`
	listReservationsOfRoomSQL = reservationSelect + ` WHERE r.room_id = ? ORDER BY r.id`

	insertReservationSQL = `
INSERT INTO reservations (room_id, user_id, start_date, end_date, number_of_guests, deleted)
VALUES (?, ?, ?, ?, ?, ?)`

	updateReservationSQL = `
UPDATE reservations SET
  start_date       = ?,
  end_date         = ?,
  number_of_guests = ?,
  deleted          = ?
WHERE id = ?`
)

const userCols = `id, email, password_hash, roles`

const (
	getUserSQL         = `SELECT ` + userCols + ` FROM users WHERE id = ?`
	findUserByEmailSQL = `SELECT ` + userCols + ` FROM users WHERE email = ?`

	insertUserSQL = `INSERT INTO users (email, password_hash, roles) VALUES (?, ?, ?)`
	updateUserSQL = `UPDATE users SET email = ?, password_hash = ?, roles = ? WHERE id = ?`
)
