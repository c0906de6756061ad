package domain

import (
	"context"

	"cloud.google.com/go/civil"
)

type PropertyRepository interface {
	UpsertProperty(ctx context.Context, p Property) (Property, error)
	ReplaceProperty(ctx context.Context, p Property) (Property, error)
	GetPropertyByCode(ctx context.Context, hotelCode string) (Property, error)
	GetPropertiesByCodes(ctx context.Context, hotelCodes []string) ([]Property, error)
	ListProperties(ctx context.Context, pg Page) ([]Property, error)
	CountProperties(ctx context.Context) (int, error)

	UpsertRoomType(ctx context.Context, rt RoomType) (RoomType, error)
	ListRoomTypes(ctx context.Context, q RoomTypeQuery) ([]RoomType, error)
	CountRoomTypes(ctx context.Context, q RoomTypeQuery) (int, error)

	LogMiss(ctx context.Context, hotelCode string, status int, reason string) error
}

type ReservationRepository interface {
	InsertReservation(ctx context.Context, r Reservation) (Reservation, error)
	GetReservation(ctx context.Context, reservationID string) (Reservation, error)
	UpdateReservation(ctx context.Context, r Reservation) (Reservation, error)
	SearchReservations(ctx context.Context, q ReservationQuery) ([]Reservation, error)
	CountReservations(ctx context.Context, q ReservationQuery) (int, error)
}

// ContentSource yields raw property and room type payloads for the importer.
type ContentSource interface {
	HotelCodes(ctx context.Context) ([]string, error)
	GetProperty(ctx context.Context, hotelCode string) (map[string]any, error)
	GetRoomTypes(ctx context.Context, hotelCode string) ([]map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Page is limit/offset pagination. Limit 0 yields an empty page.
type Page struct {
	Limit  int
	Offset int
}

// RoomTypeQuery scopes room types to a property by its business code.
type RoomTypeQuery struct {
	HotelCode string
	RoomType  string
	Page      Page
}

// ReservationQuery filters reservations. Zero-valued fields do not constrain.
type ReservationQuery struct {
	HotelID             string
	Surname             string
	GivenName           string
	ArrivalFrom         *civil.Date
	ArrivalTo           *civil.Date
	UpdatedFrom         *civil.Date
	UpdatedTo           *civil.Date
	ConfirmationNumbers []string
	Page                Page
}
