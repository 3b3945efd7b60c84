package cloudinary_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"hotel_booking/internal/adapters/cloudinary"
	"hotel_booking/internal/adapters/remote"
	"hotel_booking/internal/domain"
)

func cfg(base string) cloudinary.Config {
	return cloudinary.Config{BaseURL: base, CloudName: "demo", APIKey: "key", APISecret: "secret", Folder: "hotels"}
}

func TestUploadImages_SignedAndOrdered(t *testing.T) {
	var n int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/demo/image/upload" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		pid, stamp := r.PostForm.Get("public_id"), r.PostForm.Get("timestamp")
		if !strings.HasPrefix(pid, "hotels/") {
			t.Errorf("public_id not in folder: %q", pid)
		}
		if r.PostForm.Get("signature") != cloudinary.Sign(pid, stamp, "secret") {
			t.Errorf("bad signature")
		}
		if !strings.HasPrefix(r.PostForm.Get("file"), "data:image/png;base64,") {
			t.Errorf("unexpected file field")
		}
		i := atomic.AddInt32(&n, 1)
		_ = json.NewEncoder(w).Encode(map[string]string{"secure_url": "https://res.test/" + string(rune('0'+i))})
	}))
	defer ts.Close()

	up := cloudinary.New(cfg(ts.URL), remote.New("cloudinary", 100, time.Second))
	urls, err := up.UploadImages(context.Background(), []domain.Image{
		{Filename: "a.png", ContentType: "image/png", Data: []byte("a")},
		{Filename: "", Data: nil},
		{Filename: "b.png", ContentType: "image/png", Data: []byte("b")},
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(urls) != 2 || urls[0] != "https://res.test/1" || urls[1] != "https://res.test/2" {
		t.Fatalf("unexpected urls: %v", urls)
	}
}

func TestUploadImages_FailureReturnsNoURLs(t *testing.T) {
	var n int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&n, 1) == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"secure_url": "https://res.test/ok"})
	}))
	defer ts.Close()

	up := cloudinary.New(cfg(ts.URL), remote.New("cloudinary", 100, time.Second))
	urls, err := up.UploadImages(context.Background(), []domain.Image{
		{Filename: "a.png", Data: []byte("a")},
		{Filename: "b.png", Data: []byte("b")},
	})
	if !errors.Is(err, domain.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	if urls != nil {
		t.Fatalf("expected no urls, got %v", urls)
	}
	if got := atomic.LoadInt32(&n); got != 2 {
		t.Fatalf("uploads must not be retried, got %d calls", got)
	}
}

func TestUploadImages_ErrorMessageInBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid Signature"}}`))
	}))
	defer ts.Close()

	up := cloudinary.New(cfg(ts.URL), remote.New("cloudinary", 100, time.Second))
	_, err := up.UploadImages(context.Background(), []domain.Image{{Filename: "a.png", Data: []byte("a")}})
	if !errors.Is(err, domain.ErrUploadFailed) || !strings.Contains(err.Error(), "Invalid Signature") {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestUploadImages_MissingCredentials(t *testing.T) {
	up := cloudinary.New(cloudinary.Config{}, remote.New("cloudinary", 100, time.Second))
	if urls, err := up.UploadImages(context.Background(), nil); err != nil || urls != nil {
		t.Fatalf("no images should be a no-op: %v %v", urls, err)
	}
	_, err := up.UploadImages(context.Background(), []domain.Image{{Filename: "a.png", Data: []byte("a")}})
	if !errors.Is(err, domain.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
}
