// Package upstream reads property content from an OPERA-style content API.
package upstream

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"opera_mock/internal/adapters/observability"
	"opera_mock/internal/domain"
)

const (
	service  = "upstream"
	pageSize = 100
	attempts = 4
)

var _ domain.ContentSource = (*Client)(nil)

type Client struct {
	base    string
	hc      *http.Client
	key     string
	channel string
	rl      *rate.Limiter
}

func New(base, key, channel string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("upstream base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:    strings.TrimRight(base, "/"),
		hc:      &http.Client{Timeout: 20 * time.Second},
		key:     key,
		channel: channel,
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- ContentSource ----

type hotelsPage struct {
	Hotels []struct {
		HotelCode string `json:"hotelCode"`
	} `json:"hotels"`
	HasMore bool `json:"hasMore"`
}

// HotelCodes walks the paginated hotel list until hasMore is false.
func (c *Client) HotelCodes(ctx context.Context) ([]string, error) {
	var codes []string
	for offset := 0; ; offset += pageSize {
		var page hotelsPage
		u := fmt.Sprintf("%s/hotels?limit=%d&offset=%d", c.base, pageSize, offset)
		if err := c.get(ctx, "hotels", u, &page); err != nil {
			return nil, err
		}
		for _, h := range page.Hotels {
			if h.HotelCode != "" {
				codes = append(codes, h.HotelCode)
			}
		}
		if !page.HasMore || len(page.Hotels) == 0 {
			return codes, nil
		}
	}
}

// GetProperty unwraps the propertyInfo envelope when present.
func (c *Client) GetProperty(ctx context.Context, hotelCode string) (map[string]any, error) {
	var out map[string]any
	u := fmt.Sprintf("%s/hotels/%s", c.base, url.PathEscape(hotelCode))
	if err := c.get(ctx, "hotel", u, &out); err != nil {
		return nil, err
	}
	if inner, ok := out["propertyInfo"].(map[string]any); ok {
		return inner, nil
	}
	return out, nil
}

type roomTypesPage struct {
	RoomTypes []map[string]any `json:"roomTypes"`
	HasMore   bool             `json:"hasMore"`
}

func (c *Client) GetRoomTypes(ctx context.Context, hotelCode string) ([]map[string]any, error) {
	var all []map[string]any
	for offset := 0; ; offset += pageSize {
		var page roomTypesPage
		u := fmt.Sprintf("%s/hotels/%s/roomTypes?includeRoomAmenities=true&limit=%d&offset=%d",
			c.base, url.PathEscape(hotelCode), pageSize, offset)
		if err := c.get(ctx, "roomTypes", u, &page); err != nil {
			return nil, err
		}
		all = append(all, page.RoomTypes...)
		if !page.HasMore || len(page.RoomTypes) == 0 {
			return all, nil
		}
	}
}

// ---- Internals ----

var (
	ErrNotFound      = fmt.Errorf("upstream: %w", domain.ErrNotFound)
	ErrUnauthorized  = fmt.Errorf("upstream: unauthorized: %w", domain.ErrForbidden)
	ErrForbidden     = fmt.Errorf("upstream: %w", domain.ErrForbidden)
	ErrUnprocessable = fmt.Errorf("upstream: unprocessable: %w", domain.ErrInvalidInput)
)

// get performs a GET with client-side rate limiting, retries, and JSON decode into out.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) get(ctx context.Context, endpoint, u string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("x-app-key", c.key)
		}
		if c.channel != "" {
			req.Header.Set("x-channelCode", c.channel)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "opera-mock-importer/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal(service, endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < attempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal(service, endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("decode %s: %w", endpoint, err)
			}
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusUnprocessableEntity:
			resp.Body.Close()
			return ErrUnprocessable

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < attempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	if lastErr == nil {
		lastErr = errors.New("no attempt made")
	}
	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
