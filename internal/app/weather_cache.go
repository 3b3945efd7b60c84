package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

// CachedWeather serves current weather from the cache for ttl. Cache errors are
// logged and fall through to the gateway. Forecasts are never cached.
type CachedWeather struct {
	next  domain.WeatherGateway
	cache domain.Cache
	ttl   time.Duration
}

func NewCachedWeather(next domain.WeatherGateway, c domain.Cache, ttl time.Duration) *CachedWeather {
	return &CachedWeather{next: next, cache: c, ttl: ttl}
}

func (w *CachedWeather) Current(ctx context.Context, city string) (domain.Weather, error) {
	if w.cache == nil || w.ttl <= 0 {
		return w.next.Current(ctx, city)
	}
	key := "weather:" + strings.ToLower(strings.TrimSpace(city))

	var out domain.Weather
	ok, err := w.cache.Get(ctx, key, &out)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("weather cache get failed")
	}
	if ok && err == nil {
		return out, nil
	}

	out, err = w.next.Current(ctx, city)
	if err != nil {
		return domain.Weather{}, err
	}
	if err := w.cache.Set(ctx, key, out, int(w.ttl.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("weather cache set failed")
	}
	return out, nil
}

func (w *CachedWeather) Forecast(ctx context.Context, city string) (domain.Forecast, error) {
	return w.next.Forecast(ctx, city)
}
