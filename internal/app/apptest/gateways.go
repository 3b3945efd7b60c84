package apptest

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"hotel_booking/internal/domain"
)

// Uploader returns https://img.test/<n> for every non-empty image.
type Uploader struct {
	mu    sync.Mutex
	n     int
	Err   error
	Calls int
}

func (u *Uploader) UploadImages(ctx context.Context, images []domain.Image) ([]string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Calls++
	if u.Err != nil {
		return nil, u.Err
	}
	var out []string
	for _, img := range images {
		if img.Empty() {
			continue
		}
		u.n++
		out = append(out, "https://img.test/"+strconv.Itoa(u.n))
	}
	return out, nil
}

// Weather answers every city with the same reading unless Err is set.
type Weather struct {
	mu      sync.Mutex
	Reading domain.Weather
	Err     error
	Calls   int
}

func (w *Weather) Current(ctx context.Context, city string) (domain.Weather, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Calls++
	if w.Err != nil {
		return domain.Weather{}, w.Err
	}
	return w.Reading, nil
}

func (w *Weather) Forecast(ctx context.Context, city string) (domain.Forecast, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Calls++
	if w.Err != nil {
		return domain.Forecast{}, w.Err
	}
	return domain.Forecast{City: city, Entries: []domain.ForecastEntry{
		{Temperature: w.Reading.Temperature, Description: w.Reading.Description},
	}}, nil
}

type Geocoder struct {
	mu      sync.Mutex
	Coords  domain.Coords
	Err     error
	Queries []string
}

func (g *Geocoder) Geocode(ctx context.Context, address string) (domain.Geocode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Queries = append(g.Queries, address)
	if g.Err != nil {
		return domain.Geocode{}, g.Err
	}
	return domain.Geocode{Coords: g.Coords, Formatted: address}, nil
}

// Profanity flags texts containing any of Words, case-insensitively.
type Profanity struct {
	Words []string
	Err   error
}

func (p *Profanity) ContainsProfanity(ctx context.Context, text string) (bool, error) {
	if p.Err != nil {
		return false, p.Err
	}
	low := strings.ToLower(text)
	for _, w := range p.Words {
		if strings.Contains(low, strings.ToLower(w)) {
			return true, nil
		}
	}
	return false, nil
}

// Credentials is a reversible stand-in for bcrypt + JWT.
type Credentials struct{}

func (Credentials) HashPassword(pw string) (string, error) { return "hashed:" + pw, nil }

func (Credentials) CheckPassword(hash, pw string) bool { return hash == "hashed:"+pw }

func (Credentials) IssueToken(u domain.User) (string, error) {
	return fmt.Sprintf("token:%d", u.ID), nil
}

func (Credentials) ParseToken(tok string) (domain.Principal, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(tok, "token:"), 10, 64)
	if err != nil || !strings.HasPrefix(tok, "token:") {
		return domain.Principal{}, fmt.Errorf("bad token")
	}
	return domain.Principal{UserID: id}, nil
}

// Cache keeps JSON-encoded values in memory.
type Cache struct {
	mu    sync.Mutex
	store map[string][]byte
	Err   error
	Sets  int
}

func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return false, c.Err
	}
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.Sets++
	c.store[key] = b
	return nil
}

func (c *Cache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}
