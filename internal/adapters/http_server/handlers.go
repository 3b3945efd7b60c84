// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

const (
	maxUploadBytes = 32 << 20
	maxJSONBytes   = 1 << 20
)

type Handlers struct {
	Hotels       *app.HotelService
	Rooms        *app.RoomService
	Reservations *app.ReservationService
	Users        *app.UserService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api/hotels", func(r chi.Router) {
		r.Post("/", h.createHotel)
		r.Get("/", h.listHotels)
		r.Get("/map", h.hotelsForMap)
		r.Get("/{id}", h.getHotel)
		r.Get("/{id}/rooms", h.listHotelRooms)
		r.Post("/{id}/images", h.uploadHotelImages)
		r.Get("/{id}/forecast", h.getForecast)
		r.Get("/{id}/geocoding", h.getGeocoding)
		r.Put("/{id}/rooms/{roomId}", h.addRoomToHotel)
	})
	s.mux.Route("/api/rooms", func(r chi.Router) {
		r.Post("/", h.createRoom)
		r.Get("/", h.listRooms)
		r.Get("/{id}", h.getRoom)
		r.Put("/{id}", h.updateRoom)
		r.Delete("/{id}", h.deleteRoom)
		r.Post("/{id}/images", h.uploadRoomImages)
		r.Get("/{id}/reservations", h.roomReservations)
	})
	s.mux.Post("/api/reservations", h.createReservation)
	s.mux.Delete("/api/reservations/{id}", h.cancelReservation)

	s.mux.Post("/registration", h.register)
	s.mux.Post("/login", h.login)
	s.mux.With(RequireBearer(h.Users)).Get("/loginn", h.loginStatus)
}

// ---- responses ----

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps error kinds to HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, title := http.StatusInternalServerError, "Internal Server Error"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, title = http.StatusBadRequest, "Invalid Input"
	case errors.Is(err, domain.ErrUnauthorized):
		status, title = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrNotFound):
		status, title = http.StatusNotFound, "Not Found"
	case errors.Is(err, domain.ErrAlreadyExists):
		status, title = http.StatusConflict, "Already Exists"
	case errors.Is(err, domain.ErrAlreadyDeleted):
		status, title = http.StatusGone, "Already Deleted"
	case errors.Is(err, domain.ErrProfanityFound):
		status, title = http.StatusUnprocessableEntity, "Profanity Found"
	case errors.Is(err, domain.ErrHotelHasNoRooms):
		status, title = http.StatusUnprocessableEntity, "Hotel Has No Rooms"
	case errors.Is(err, domain.ErrUploadFailed),
		errors.Is(err, domain.ErrWeatherUnavailable),
		errors.Is(err, domain.ErrGeocodingUnavailable),
		errors.Is(err, domain.ErrProfanityUnavailable):
		status, title = http.StatusBadGateway, "Upstream Unavailable"
	}

	detail := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		detail = ""
	}
	writeProblem(w, status, title, detail)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

// writeCached answers GETs with a weak ETag and honours If-None-Match.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

// ---- request parsing ----

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, name)
	}
	return id, nil
}

// parseForm accepts multipart or urlencoded bodies. Files under "images" (or "image")
// become domain images in submission order.
func parseForm(w http.ResponseWriter, r *http.Request) ([]domain.Image, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if r.MultipartForm == nil {
		return nil, nil
	}

	var out []domain.Image
	for _, field := range []string{"images", "image"} {
		for _, fh := range r.MultipartForm.File[field] {
			f, err := fh.Open()
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, fh.Filename, err)
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, fh.Filename, err)
			}
			out = append(out, domain.Image{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data})
		}
	}
	return out, nil
}

func formInt(r *http.Request, key string) (*int, error) {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
	}
	return &n, nil
}

func formFloat(r *http.Request, key string) (*float64, error) {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
	}
	return &f, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// ---- hotels ----

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	images, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Hotels.CreateHotel(r.Context(), app.HotelCreateRequest{
		Name:    r.FormValue("name"),
		Address: r.FormValue("address"),
		City:    r.FormValue("city"),
		Images:  images,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/hotels/%d", out.ID))
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	out, err := h.Hotels.ListHotelDetails(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, out)
}

func (h *Handlers) hotelsForMap(w http.ResponseWriter, r *http.Request) {
	out, err := h.Hotels.GetHotelsForMap(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Hotels.GetHotelDetails(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, out)
}

func (h *Handlers) listHotelRooms(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Hotels.ListAllRoomsOfHotel(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, out)
}

func (h *Handlers) uploadHotelImages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	images, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Hotels.UploadImage(r.Context(), id, images)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getForecast(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Hotels.GetForecast(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getGeocoding(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Hotels.GetGeocodingDetails(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, out)
}

func (h *Handlers) addRoomToHotel(w http.ResponseWriter, r *http.Request) {
	hotelID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	roomID, err := pathID(r, "roomId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Hotels.AddRoomToHotel(r.Context(), hotelID, roomID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- rooms ----

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	images, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	beds, err := formInt(r, "numberOfBeds")
	if err != nil {
		writeError(w, r, err)
		return
	}
	price, err := formFloat(r, "pricePerNight")
	if err != nil {
		writeError(w, r, err)
		return
	}
	form := app.RoomForm{Name: r.FormValue("name"), Description: r.FormValue("description"), Images: images}
	if beds != nil {
		form.NumberOfBeds = *beds
	}
	if price != nil {
		form.PricePerNight = *price
	}
	out, err := h.Rooms.CreateRoom(r.Context(), form)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/rooms/%d", out.ID))
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	out, err := h.Rooms.GetRoomList(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, out)
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Rooms.GetRoomDetails(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, out)
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	images, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	beds, err := formInt(r, "numberOfBeds")
	if err != nil {
		writeError(w, r, err)
		return
	}
	price, err := formFloat(r, "pricePerNight")
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Rooms.UpdateRoomValues(r.Context(), app.RoomFormUpdate{
		ID:            id,
		Name:          r.FormValue("name"),
		NumberOfBeds:  beds,
		PricePerNight: price,
		Description:   r.FormValue("description"),
		Images:        images,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Rooms.DeleteRoom(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) uploadRoomImages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	images, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Rooms.UploadImage(r.Context(), id, images)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) roomReservations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Rooms.GetRoomDetailsWithReservations(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, out)
}

// ---- reservations ----

type reservationBody struct {
	RoomID         int64  `json:"roomId"`
	UserID         int64  `json:"userId"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	NumberOfGuests int    `json:"numberOfGuests"`
}

func parseDate(field, v string) (time.Time, error) {
	t, err := time.Parse(app.DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be %s", domain.ErrInvalidInput, field, app.DateLayout)
	}
	return t, nil
}

func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	var body reservationBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	start, err := parseDate("startDate", body.StartDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := parseDate("endDate", body.EndDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Reservations.RecordsReservation(r.Context(), app.ReservationRequest{
		RoomID: body.RoomID, UserID: body.UserID, StartDate: start, EndDate: end, NumberOfGuests: body.NumberOfGuests,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Reservations.CancelReservation(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- users ----

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var form app.UserRegistrationForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Users.RegistrationUser(r.Context(), form)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req app.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Users.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) loginStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	writeJSON(w, http.StatusOK, h.Users.Status(p))
}
