// Package fixtures serves bundled seed content to the importer.
package fixtures

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"opera_mock/internal/app"
	"opera_mock/internal/domain"
)

//go:embed seed.json
var seed []byte

var _ domain.ContentSource = (*Source)(nil)

// SeedReservation is a booking request replayed through the reservation service.
type SeedReservation struct {
	HotelID string                 `json:"hotelId"`
	Request app.ReservationRequest `json:"request"`
}

type document struct {
	Properties   []map[string]any  `json:"properties"`
	Reservations []SeedReservation `json:"reservations"`
}

// Source is an in-memory ContentSource keyed by hotel code, in file order.
type Source struct {
	codes        []string
	properties   map[string]map[string]any
	reservations []SeedReservation
}

// Load parses the bundled seed file.
func Load() (*Source, error) { return Parse(seed) }

func Parse(b []byte) (*Source, error) {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	s := &Source{properties: map[string]map[string]any{}, reservations: doc.Reservations}
	for i, p := range doc.Properties {
		code := hotelCode(p)
		if code == "" {
			return nil, fmt.Errorf("fixture property %d has no hotel code", i)
		}
		if _, dup := s.properties[code]; dup {
			return nil, fmt.Errorf("fixture property %s listed twice", code)
		}
		s.codes = append(s.codes, code)
		s.properties[code] = p
	}
	return s, nil
}

func hotelCode(p map[string]any) string {
	for _, k := range []string{"hotelCode", "hotel_code", "code"} {
		if s, ok := p[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func (s *Source) HotelCodes(ctx context.Context) ([]string, error) {
	return append([]string(nil), s.codes...), nil
}

func (s *Source) GetProperty(ctx context.Context, hotelCode string) (map[string]any, error) {
	p, ok := s.properties[hotelCode]
	if !ok {
		return nil, fmt.Errorf("fixture %s: %w", hotelCode, domain.ErrNotFound)
	}
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out, nil
}

func (s *Source) GetRoomTypes(ctx context.Context, hotelCode string) ([]map[string]any, error) {
	p, ok := s.properties[hotelCode]
	if !ok {
		return nil, fmt.Errorf("fixture %s: %w", hotelCode, domain.ErrNotFound)
	}
	var raw any
	for _, k := range []string{"roomTypes", "room_types"} {
		if v, ok := p[k]; ok {
			raw = v
			break
		}
	}
	list, _ := raw.([]any)
	out := make([]map[string]any, 0, len(list))
	for _, it := range list {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Source) Reservations() []SeedReservation {
	return append([]SeedReservation(nil), s.reservations...)
}

// SeedReservations books the bundled reservations through rsv. Hotels that already
// hold reservations are skipped so repeated runs do not duplicate bookings.
func (s *Source) SeedReservations(ctx context.Context, repo domain.ReservationRepository, rsv *app.ReservationService) (int, error) {
	seeded := map[string]bool{}
	n := 0
	for _, sr := range s.reservations {
		has, ok := seeded[sr.HotelID]
		if !ok {
			c, err := repo.CountReservations(ctx, domain.ReservationQuery{HotelID: sr.HotelID})
			if err != nil {
				return n, fmt.Errorf("count reservations %s: %w", sr.HotelID, err)
			}
			has = c > 0
			seeded[sr.HotelID] = has
		}
		if has {
			continue
		}
		if _, err := rsv.Create(ctx, sr.HotelID, sr.Request); err != nil {
			return n, fmt.Errorf("seed reservation for %s: %w", sr.HotelID, err)
		}
		n++
	}
	return n, nil
}
