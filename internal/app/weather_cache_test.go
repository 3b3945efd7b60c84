package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel_booking/internal/app"
	"hotel_booking/internal/app/apptest"
	"hotel_booking/internal/domain"
)

func TestCachedWeather_MissThenHit(t *testing.T) {
	gw := &apptest.Weather{Reading: domain.Weather{Temperature: 12, Description: "rain"}}
	cache := &apptest.Cache{}
	w := app.NewCachedWeather(gw, cache, 10*time.Minute)

	for i := 0; i < 3; i++ {
		got, err := w.Current(context.Background(), " Budapest ")
		if err != nil || got.Description != "rain" {
			t.Fatalf("call %d: %+v %v", i, got, err)
		}
	}
	if gw.Calls != 1 {
		t.Fatalf("expected 1 gateway call, got %d", gw.Calls)
	}

	// key is case-insensitive
	if _, err := w.Current(context.Background(), "budapest"); err != nil || gw.Calls != 1 {
		t.Fatalf("expected cache hit, calls=%d err=%v", gw.Calls, err)
	}
}

func TestCachedWeather_CacheDownFallsThrough(t *testing.T) {
	gw := &apptest.Weather{Reading: domain.Weather{Temperature: 12, Description: "rain"}}
	cache := &apptest.Cache{Err: errors.New("redis down")}
	w := app.NewCachedWeather(gw, cache, time.Minute)

	if _, err := w.Current(context.Background(), "Budapest"); err != nil {
		t.Fatalf("cache failure leaked: %v", err)
	}
	if gw.Calls != 1 {
		t.Fatalf("expected gateway call, got %d", gw.Calls)
	}
}

func TestCachedWeather_ErrorsNotCached(t *testing.T) {
	gw := &apptest.Weather{Err: errors.New("boom")}
	cache := &apptest.Cache{}
	w := app.NewCachedWeather(gw, cache, time.Minute)

	if _, err := w.Current(context.Background(), "Budapest"); err == nil {
		t.Fatalf("expected error")
	}
	if cache.Sets != 0 {
		t.Fatalf("failure cached")
	}
	if _, err := w.Forecast(context.Background(), "Budapest"); err == nil || gw.Calls != 2 {
		t.Fatalf("forecast should pass through, calls=%d", gw.Calls)
	}
}
