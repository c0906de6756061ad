package app

import (
	"time"

	"cloud.google.com/go/civil"

	"opera_mock/internal/domain"
)

// SearchResult is either every matching stored row (Real) or one example record
// (Synthetic). The two are never mixed.
type SearchResult[T any] struct {
	items     []T
	total     int
	synthetic bool
}

func Real[T any](items []T, total int) SearchResult[T] {
	if items == nil {
		items = []T{}
	}
	return SearchResult[T]{items: items, total: total}
}

func Synthetic[T any](record T) SearchResult[T] {
	return SearchResult[T]{items: []T{record}, total: 1, synthetic: true}
}

func (r SearchResult[T]) Items() []T        { return r.items }
func (r SearchResult[T]) Total() int        { return r.total }
func (r SearchResult[T]) IsSynthetic() bool { return r.synthetic }

// Page is the window the items were served from. A synthetic record always sits at offset 0.
func (r SearchResult[T]) Page(requested domain.Page) domain.Page {
	if r.synthetic {
		return domain.Page{Limit: requested.Limit}
	}
	return requested
}

// resolve substitutes the example record only when nothing at all matched the filters.
// A page that is empty because of limit=0 or a large offset stays Real.
func resolve[T any](page []T, total int, pg domain.Page, example func() T) SearchResult[T] {
	if total == 0 && pg.Limit > 0 {
		return Synthetic(example())
	}
	return Real(page, total)
}

const (
	exampleReservationID = "571062"
	exampleConfirmation  = "813595"
	exampleGivenName     = "Jennifer"
	exampleSurname       = "Clarke"
)

var (
	exampleArrival   = civil.Date{Year: 2026, Month: time.January, Day: 22}
	exampleDeparture = civil.Date{Year: 2026, Month: time.January, Day: 23}
	exampleCreatedAt = time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC)
)

// exampleReservation is the fixed record shown when a reservation search finds nothing.
func exampleReservation(hotelID string) domain.Reservation {
	arrival, departure := exampleArrival, exampleDeparture
	given, surname := exampleGivenName, exampleSurname
	return domain.Reservation{
		ReservationID:      exampleReservationID,
		ConfirmationNumber: exampleConfirmation,
		HotelID:            hotelID,
		Status:             domain.StatusReserved,
		ArrivalDate:        exampleArrival,
		DepartureDate:      exampleDeparture,
		GuestFirstName:     exampleGivenName,
		GuestLastName:      exampleSurname,
		RoomStay: domain.RoomStay{
			ArrivalDate:   &arrival,
			DepartureDate: &departure,
			Guarantee: &domain.Guarantee{
				GuaranteeCode:    ptr("6PM"),
				ShortDescription: ptr("6pm Hold"),
			},
			GuestCounts: &domain.GuestCounts{Adults: ptr(1), Children: ptr(0)},
		},
		Guests: []domain.ReservationGuest{{
			ProfileInfo: &domain.ProfileInfo{
				Profile: &domain.Profile{
					Customer: &domain.Customer{
						PersonName: []domain.PersonName{{GivenName: &given, Surname: &surname}},
					},
				},
			},
			Primary: ptr(true),
		}},
		Adults:    ptr(1),
		Children:  ptr(0),
		CreatedAt: exampleCreatedAt,
		UpdatedAt: exampleCreatedAt,
	}
}

func ptr[T any](v T) *T { return &v }
