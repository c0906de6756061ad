// Package memory is an in-process Entity Store with the same contract as the MySQL store.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jinzhu/now"

	"opera_mock/internal/domain"
)

var (
	_ domain.PropertyRepository    = (*Store)(nil)
	_ domain.ReservationRepository = (*Store)(nil)
)

type Miss struct {
	HotelCode string
	Status    int
	Reason    string
}

type Store struct {
	mu           sync.RWMutex
	seq          int64
	properties   map[int64]domain.Property
	roomTypes    map[int64]domain.RoomType
	reservations map[int64]domain.Reservation
	misses       []Miss
}

func New() *Store {
	return &Store{
		properties:   map[int64]domain.Property{},
		roomTypes:    map[int64]domain.RoomType{},
		reservations: map[int64]domain.Reservation{},
	}
}

// clone round-trips through JSON, the same encoding the SQL store uses for nested
// columns, so callers never alias stored data.
func clone[T any](v T) T {
	var out T
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// ---- properties ----

func (s *Store) propertyByCode(code string) (domain.Property, bool) {
	for _, p := range s.properties {
		if p.HotelCode == code {
			return p, true
		}
	}
	return domain.Property{}, false
}

func (s *Store) hotelIDTaken(hotelID string, exceptID int64) bool {
	for _, p := range s.properties {
		if p.HotelID == hotelID && p.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *Store) UpsertProperty(ctx context.Context, p domain.Property) (domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.propertyByCode(p.HotelCode); ok {
		p.ID = cur.ID
		p.HotelID = cur.HotelID
	} else {
		if s.hotelIDTaken(p.HotelID, 0) {
			return domain.Property{}, fmt.Errorf("upsert property %s: %w", p.HotelCode, domain.ErrConflict)
		}
		p.ID = s.nextID()
	}
	s.properties[p.ID] = clone(p)
	return clone(p), nil
}

func (s *Store) ReplaceProperty(ctx context.Context, p domain.Property) (domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.propertyByCode(p.HotelCode)
	if !ok {
		return domain.Property{}, domain.ErrNotFound
	}
	if s.hotelIDTaken(p.HotelID, cur.ID) {
		return domain.Property{}, fmt.Errorf("replace property %s: %w", p.HotelCode, domain.ErrConflict)
	}
	p.ID = cur.ID
	s.properties[p.ID] = clone(p)
	return clone(p), nil
}

func (s *Store) GetPropertyByCode(ctx context.Context, hotelCode string) (domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.propertyByCode(hotelCode)
	if !ok {
		return domain.Property{}, domain.ErrNotFound
	}
	return clone(p), nil
}

func (s *Store) GetPropertiesByCodes(ctx context.Context, hotelCodes []string) ([]domain.Property, error) {
	want := make(map[string]bool, len(hotelCodes))
	for _, c := range hotelCodes {
		want[c] = true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Property
	for _, p := range sortedValues(s.properties) {
		if want[p.HotelCode] {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (s *Store) ListProperties(ctx context.Context, pg domain.Page) ([]domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paginate(sortedValues(s.properties), pg), nil
}

func (s *Store) CountProperties(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.properties), nil
}

// ---- room types ----

func (s *Store) UpsertRoomType(ctx context.Context, rt domain.RoomType) (domain.RoomType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[rt.PropertyID]; !ok {
		return domain.RoomType{}, fmt.Errorf("upsert room type %s: property %d: %w", rt.Code, rt.PropertyID, domain.ErrNotFound)
	}
	rt.ID = 0
	for _, cur := range s.roomTypes {
		if cur.PropertyID == rt.PropertyID && cur.Code == rt.Code {
			rt.ID = cur.ID
			break
		}
	}
	if rt.ID == 0 {
		rt.ID = s.nextID()
	}
	s.roomTypes[rt.ID] = clone(rt)
	return clone(rt), nil
}

func (s *Store) matchRoomTypes(q domain.RoomTypeQuery) []domain.RoomType {
	var out []domain.RoomType
	for _, rt := range sortedValues(s.roomTypes) {
		p, ok := s.properties[rt.PropertyID]
		if !ok || (q.HotelCode != "" && p.HotelCode != q.HotelCode) {
			continue
		}
		if q.RoomType != "" && rt.Code != q.RoomType {
			continue
		}
		out = append(out, rt)
	}
	return out
}

func (s *Store) ListRoomTypes(ctx context.Context, q domain.RoomTypeQuery) ([]domain.RoomType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paginate(s.matchRoomTypes(q), q.Page), nil
}

func (s *Store) CountRoomTypes(ctx context.Context, q domain.RoomTypeQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matchRoomTypes(q)), nil
}

func (s *Store) LogMiss(ctx context.Context, hotelCode string, status int, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.misses = append(s.misses, Miss{HotelCode: hotelCode, Status: status, Reason: reason})
	return nil
}

func (s *Store) Misses() []Miss {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Miss(nil), s.misses...)
}

// ---- reservations ----

func (s *Store) reservationByID(id string) (domain.Reservation, bool) {
	for _, r := range s.reservations {
		if r.ReservationID == id {
			return r, true
		}
	}
	return domain.Reservation{}, false
}

func (s *Store) InsertReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cur := range s.reservations {
		if cur.ReservationID == r.ReservationID || cur.ConfirmationNumber == r.ConfirmationNumber {
			return domain.Reservation{}, fmt.Errorf("insert reservation %s: %w", r.ReservationID, domain.ErrConflict)
		}
	}
	r.ID = s.nextID()
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Microsecond)
	r.UpdatedAt = r.UpdatedAt.UTC().Truncate(time.Microsecond)
	s.reservations[r.ID] = clone(r)
	return clone(r), nil
}

func (s *Store) GetReservation(ctx context.Context, reservationID string) (domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reservationByID(reservationID)
	if !ok {
		return domain.Reservation{}, domain.ErrNotFound
	}
	return clone(r), nil
}

func (s *Store) UpdateReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.reservationByID(r.ReservationID)
	if !ok {
		return domain.Reservation{}, domain.ErrNotFound
	}
	r.ID = cur.ID
	r.ConfirmationNumber = cur.ConfirmationNumber
	r.HotelID = cur.HotelID
	r.CreatedAt = cur.CreatedAt
	r.UpdatedAt = r.UpdatedAt.UTC().Truncate(time.Microsecond)
	s.reservations[r.ID] = clone(r)
	return clone(r), nil
}

func matchReservation(r domain.Reservation, q domain.ReservationQuery) bool {
	if q.HotelID != "" && r.HotelID != q.HotelID {
		return false
	}
	if !containsFold(r.GuestLastName, q.Surname) || !containsFold(r.GuestFirstName, q.GivenName) {
		return false
	}
	if q.ArrivalFrom != nil && r.ArrivalDate.Before(*q.ArrivalFrom) {
		return false
	}
	if q.ArrivalTo != nil && r.ArrivalDate.After(*q.ArrivalTo) {
		return false
	}
	if q.UpdatedFrom != nil && r.UpdatedAt.Before(now.With(q.UpdatedFrom.In(time.UTC)).BeginningOfDay()) {
		return false
	}
	if q.UpdatedTo != nil && r.UpdatedAt.After(now.With(q.UpdatedTo.In(time.UTC)).EndOfDay()) {
		return false
	}
	if len(q.ConfirmationNumbers) > 0 {
		found := false
		for _, c := range q.ConfirmationNumbers {
			if c == r.ConfirmationNumber {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *Store) matchReservations(q domain.ReservationQuery) []domain.Reservation {
	var out []domain.Reservation
	for _, r := range sortedValues(s.reservations) {
		if matchReservation(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) SearchReservations(ctx context.Context, q domain.ReservationQuery) ([]domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paginate(s.matchReservations(q), q.Page), nil
}

func (s *Store) CountReservations(ctx context.Context, q domain.ReservationQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matchReservations(q)), nil
}

// ---- helpers ----

func containsFold(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// sortedValues orders by surrogate id, matching the SQL store's ORDER BY id.
func sortedValues[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func paginate[T any](items []T, pg domain.Page) []T {
	off, lim := max(pg.Offset, 0), max(pg.Limit, 0)
	if off >= len(items) || lim == 0 {
		return []T{}
	}
	end := min(off+lim, len(items))
	out := make([]T, 0, end-off)
	for _, it := range items[off:end] {
		out = append(out, clone(it))
	}
	return out
}
