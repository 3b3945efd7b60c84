// Package openweather reads current conditions and the 5-day forecast from OpenWeatherMap.
package openweather

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"hotel_booking/internal/adapters/remote"
	"hotel_booking/internal/domain"
)

type Client struct {
	base string
	key  string
	rc   *remote.Client
}

func New(base, key string, rc *remote.Client) *Client {
	if base == "" {
		base = "https://api.openweathermap.org"
	}
	return &Client{base: strings.TrimRight(base, "/"), key: key, rc: rc}
}

type condition struct {
	Description string `json:"description"`
}

type currentResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []condition `json:"weather"`
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []condition `json:"weather"`
	} `json:"list"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
}

func (c *Client) Current(ctx context.Context, city string) (domain.Weather, error) {
	var res currentResponse
	if err := c.rc.GetJSON(ctx, "current", c.url("/data/2.5/weather", city), &res); err != nil {
		return domain.Weather{}, wrap(city, err)
	}
	return domain.Weather{Temperature: res.Main.Temp, Description: describe(res.Weather)}, nil
}

func (c *Client) Forecast(ctx context.Context, city string) (domain.Forecast, error) {
	var res forecastResponse
	if err := c.rc.GetJSON(ctx, "forecast", c.url("/data/2.5/forecast", city), &res); err != nil {
		return domain.Forecast{}, wrap(city, err)
	}
	out := domain.Forecast{City: res.City.Name, Entries: make([]domain.ForecastEntry, 0, len(res.List))}
	if out.City == "" {
		out.City = city
	}
	for _, e := range res.List {
		out.Entries = append(out.Entries, domain.ForecastEntry{
			Time:        time.Unix(e.Dt, 0).UTC(),
			Temperature: e.Main.Temp,
			Description: describe(e.Weather),
		})
	}
	return out, nil
}

func (c *Client) url(path, city string) string {
	q := url.Values{}
	q.Set("q", city)
	q.Set("units", "metric")
	q.Set("appid", c.key)
	return c.base + path + "?" + q.Encode()
}

func describe(ws []condition) string {
	if len(ws) == 0 {
		return ""
	}
	return ws[0].Description
}

func wrap(city string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: city %q: %v", domain.ErrWeatherUnavailable, city, err)
}
