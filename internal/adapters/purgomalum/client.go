// Package purgomalum checks text against the PurgoMalum profanity service.
package purgomalum

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
	rc   *remote.Client
}

func New(base string, rc *remote.Client) *Client {
	if base == "" {
		base = "https://www.purgomalum.com"
	}
	return &Client{base: strings.TrimRight(base, "/"), rc: rc}
}

func (c *Client) ContainsProfanity(ctx context.Context, text string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, nil
	}
	u := c.base + "/service/containsprofanity?text=" + url.QueryEscape(text)
	body, err := c.rc.GetText(ctx, "containsprofanity", u)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return false, err
		}
		return false, fmt.Errorf("%w: %v", domain.ErrProfanityUnavailable, err)
	}
	switch body {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: unexpected answer %q", domain.ErrProfanityUnavailable, body)
}
