//go:build integration || !unit

package integration

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	server "hotel_booking/internal/adapters/http_server"
	"hotel_booking/internal/app"
	"hotel_booking/internal/app/apptest"
	"hotel_booking/internal/domain"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

// ---------- helpers ----------

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = filepath.Join("..", "..", "migrations")
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env:        []string{"MYSQL_ROOT_PASSWORD=root", "MYSQL_DATABASE=hotel"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hotel?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))
	var db *sql.DB
	pool.MaxWait = 2 * time.Minute
	if err := pool.Retry(func() error {
		var e error
		if db, e = sql.Open("mysql", dsn); e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	applyMigrations(t, db)
	return db
}

type client struct {
	t    *testing.T
	base string
}

func (c client) send(method, path, ct string, body []byte) (int, map[string]any) {
	c.t.Helper()
	req, _ := http.NewRequest(method, c.base+path, bytes.NewReader(body))
	if ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func (c client) form(method, path string, fields map[string]string) (int, map[string]any) {
	c.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	fw, _ := mw.CreateFormFile("images", "front.jpg")
	_, _ = fw.Write([]byte("jpeg bytes"))
	_ = mw.Close()
	return c.send(method, path, mw.FormDataContentType(), buf.Bytes())
}

// ---------- the test ----------

func TestHTTP_E2E_BookingFlow(t *testing.T) {
	repo := mysqlrepo.New(startMySQL(t))
	up := &apptest.Uploader{}
	weather := &apptest.Weather{Reading: domain.Weather{Temperature: 19, Description: "overcast"}}
	geo := &apptest.Geocoder{Coords: domain.Coords{Lat: 47.4979, Lon: 19.0402}}

	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Hotels:       app.NewHotelService(repo, up, weather, geo),
		Rooms:        app.NewRoomService(repo, up, &apptest.Profanity{Words: []string{"darn"}}),
		Reservations: app.NewReservationService(repo),
		Users:        app.NewUserService(repo, apptest.Credentials{}),
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()
	c := client{t: t, base: ts.URL}

	code, hotel := c.form(http.MethodPost, "/api/hotels", map[string]string{"name": "Grand", "address": "Andrássy út 1", "city": "Budapest"})
	if code != http.StatusCreated {
		t.Fatalf("create hotel: %d %v", code, hotel)
	}
	hotelID := int64(hotel["id"].(float64))

	code, room := c.form(http.MethodPost, "/api/rooms", map[string]string{"name": "Blue", "numberOfBeds": "2", "pricePerNight": "120", "description": "sea view"})
	if code != http.StatusCreated {
		t.Fatalf("create room: %d %v", code, room)
	}
	roomID := int64(room["id"].(float64))

	if code, _ := c.send(http.MethodPut, fmt.Sprintf("/api/hotels/%d/rooms/%d", hotelID, roomID), "", nil); code != http.StatusOK {
		t.Fatalf("assign: %d", code)
	}
	code, details := c.send(http.MethodGet, fmt.Sprintf("/api/hotels/%d", hotelID), "", nil)
	if code != http.StatusOK || details["numberOfRooms"].(float64) != 1 || details["latitude"].(float64) != 47.4979 {
		t.Fatalf("hotel details: %d %v", code, details)
	}

	code, user := c.send(http.MethodPost, "/registration", "application/json", []byte(`{"email":"guest@example.com","password":"s3cret-pass"}`))
	if code != http.StatusCreated {
		t.Fatalf("register: %d %v", code, user)
	}
	body := fmt.Sprintf(`{"roomId":%d,"userId":%d,"startDate":"2026-07-01","endDate":"2026-07-05","numberOfGuests":2}`, roomID, int64(user["id"].(float64)))
	if code, res := c.send(http.MethodPost, "/api/reservations", "application/json", []byte(body)); code != http.StatusCreated || res["nights"].(float64) != 4 {
		t.Fatalf("reserve: %d %v", code, res)
	}

	code, withRes := c.send(http.MethodGet, fmt.Sprintf("/api/rooms/%d/reservations", roomID), "", nil)
	if list, _ := withRes["reservationDetails"].([]any); code != http.StatusOK || len(list) != 1 {
		t.Fatalf("room reservations: %d %v", code, withRes)
	}

	if code, _ := c.send(http.MethodDelete, fmt.Sprintf("/api/rooms/%d", roomID), "", nil); code != http.StatusOK {
		t.Fatalf("delete: %d", code)
	}
	if code, _ := c.send(http.MethodDelete, fmt.Sprintf("/api/rooms/%d", roomID), "", nil); code != http.StatusGone {
		t.Fatalf("delete twice: %d", code)
	}
	if code, _ := c.send(http.MethodGet, fmt.Sprintf("/api/hotels/%d/rooms", hotelID), "", nil); code != http.StatusUnprocessableEntity {
		t.Fatalf("hotel without active rooms: %d", code)
	}
}
