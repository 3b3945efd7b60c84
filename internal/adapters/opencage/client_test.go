package opencage_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel_booking/internal/adapters/opencage"
	"hotel_booking/internal/adapters/remote"
	"hotel_booking/internal/domain"
)

func TestGeocode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/geocode/v1/json" || q.Get("q") != "Andrássy út 1, Budapest" || q.Get("key") != "k" || q.Get("limit") != "1" {
			t.Errorf("unexpected request %s", r.URL)
		}
		_, _ = w.Write([]byte(`{"results":[{"formatted":"Andrássy út 1, 1061 Budapest, Hungary","geometry":{"lat":47.5025,"lng":19.0587}}],"status":{"code":200,"message":"OK"}}`))
	}))
	defer ts.Close()

	c := opencage.New(ts.URL, "k", remote.New("opencage", 100, time.Second))
	got, err := c.Geocode(context.Background(), "Andrássy út 1, Budapest")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if got.Lat != 47.5025 || got.Lon != 19.0587 || got.Formatted == "" {
		t.Fatalf("unexpected geocode: %+v", got)
	}
}

func TestGeocode_NoResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[],"status":{"code":200,"message":"OK"}}`))
	}))
	defer ts.Close()

	c := opencage.New(ts.URL, "k", remote.New("opencage", 100, time.Second))
	if _, err := c.Geocode(context.Background(), "nowhere"); !errors.Is(err, domain.ErrGeocodingUnavailable) {
		t.Fatalf("expected ErrGeocodingUnavailable, got %v", err)
	}
}

func TestGeocode_ServiceDown(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	c := opencage.New(ts.URL, "k", remote.New("opencage", 100, time.Second))
	if _, err := c.Geocode(context.Background(), "x"); !errors.Is(err, domain.ErrGeocodingUnavailable) {
		t.Fatalf("expected ErrGeocodingUnavailable, got %v", err)
	}
}
