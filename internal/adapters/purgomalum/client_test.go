package purgomalum_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_booking/internal/adapters/purgomalum"
	"hotel_booking/internal/adapters/remote"
	"hotel_booking/internal/domain"
)

func newServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/service/containsprofanity" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		switch text := r.URL.Query().Get("text"); {
		case strings.Contains(text, "darn"):
			_, _ = w.Write([]byte("true"))
		case text == "broken":
			_, _ = w.Write([]byte("<html>"))
		default:
			_, _ = w.Write([]byte("false"))
		}
	}))
}

func TestContainsProfanity(t *testing.T) {
	ts := newServer(t)
	defer ts.Close()
	c := purgomalum.New(ts.URL, remote.New("purgomalum", 100, time.Second))
	ctx := context.Background()

	if bad, err := c.ContainsProfanity(ctx, "a darn room & more"); err != nil || !bad {
		t.Fatalf("expected profanity, got %v %v", bad, err)
	}
	if bad, err := c.ContainsProfanity(ctx, "lovely sea view"); err != nil || bad {
		t.Fatalf("expected clean, got %v %v", bad, err)
	}
	if bad, err := c.ContainsProfanity(ctx, "  "); err != nil || bad {
		t.Fatalf("blank text should be clean without a call, got %v %v", bad, err)
	}
	if _, err := c.ContainsProfanity(ctx, "broken"); !errors.Is(err, domain.ErrProfanityUnavailable) {
		t.Fatalf("expected ErrProfanityUnavailable, got %v", err)
	}
}

func TestContainsProfanity_ServiceDown(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()
	c := purgomalum.New(ts.URL, remote.New("purgomalum", 100, time.Second))
	if _, err := c.ContainsProfanity(context.Background(), "x"); !errors.Is(err, domain.ErrProfanityUnavailable) {
		t.Fatalf("expected ErrProfanityUnavailable, got %v", err)
	}
}
