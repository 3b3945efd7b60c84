// Package opencage resolves addresses to coordinates with the OpenCage geocoding API.
package opencage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

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
		base = "https://api.opencagedata.com"
	}
	return &Client{base: strings.TrimRight(base, "/"), key: key, rc: rc}
}

type response struct {
	Results []struct {
		Formatted string `json:"formatted"`
		Geometry  struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
	Status struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
}

// Geocode returns the best match for address. No match is ErrGeocodingUnavailable.
func (c *Client) Geocode(ctx context.Context, address string) (domain.Geocode, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("key", c.key)
	q.Set("limit", "1")
	q.Set("no_annotations", "1")

	var res response
	if err := c.rc.GetJSON(ctx, "geocode", c.base+"/geocode/v1/json?"+q.Encode(), &res); err != nil {
		if errors.Is(err, context.Canceled) {
			return domain.Geocode{}, err
		}
		return domain.Geocode{}, fmt.Errorf("%w: %q: %v", domain.ErrGeocodingUnavailable, address, err)
	}
	if len(res.Results) == 0 {
		return domain.Geocode{}, fmt.Errorf("%w: no result for %q", domain.ErrGeocodingUnavailable, address)
	}
	r := res.Results[0]
	return domain.Geocode{
		Coords:    domain.Coords{Lat: r.Geometry.Lat, Lon: r.Geometry.Lng},
		Formatted: r.Formatted,
	}, nil
}
