package mysql

import (
	"time"

	"cloud.google.com/go/civil"
	"gorm.io/datatypes"

	"opera_mock/internal/domain"
)

// Row structs mirror the tables. JSON columns decode into typed shapes on scan,
// so nothing above the store sees raw documents.

type propertyRow struct {
	ID               int64                                                `db:"id"`
	HotelID          string                                               `db:"hotel_id"`
	HotelCode        string                                               `db:"hotel_code"`
	EnterpriseID     *string                                              `db:"enterprise_id"`
	ChainCode        *string                                              `db:"chain_code"`
	ClusterCode      *string                                              `db:"cluster_code"`
	Name             *string                                              `db:"hotel_name"`
	Description      *string                                              `db:"hotel_description"`
	AddressLines     datatypes.JSONType[[]string]                         `db:"address_lines"`
	City             *string                                              `db:"city_name"`
	CountryCode      *string                                              `db:"country_code"`
	State            *string                                              `db:"state_prov"`
	PostalCode       *string                                              `db:"postal_code"`
	Latitude         *float64                                             `db:"latitude"`
	Longitude        *float64                                             `db:"longitude"`
	CurrencyCode     *string                                              `db:"currency_code"`
	PrimaryLanguage  *string                                              `db:"primary_language"`
	TotalRooms       *int                                                 `db:"total_number_of_rooms"`
	PetPolicy        *string                                              `db:"pet_policy"`
	TimeZoneName     *string                                              `db:"time_zone_name"`
	TimeZoneOffset   *string                                              `db:"time_zone_offset"`
	CheckInTime      *string                                              `db:"check_in_time"`
	CheckOutTime     *string                                              `db:"check_out_time"`
	Amenities        datatypes.JSONType[[]domain.PropertyAmenity]         `db:"property_amenities"`
	PointsOfInterest datatypes.JSONType[[]domain.PointOfInterest]         `db:"point_of_interest"`
	Communications   datatypes.JSONType[map[string][]domain.ContactEntry] `db:"communications"`
	Transportations  datatypes.JSONType[[]domain.Transportation]          `db:"transportations"`
	ChildPolicy      datatypes.JSONType[map[string]any]                   `db:"hotel_child_policy"`
	DirectionInfo    *string                                              `db:"direction_info"`
	LocationInfo     *string                                              `db:"location_info"`
	Meta             datatypes.JSONType[map[string]any]                   `db:"meta"`
}

func toPropertyRow(p domain.Property) propertyRow {
	return propertyRow{
		ID:               p.ID,
		HotelID:          p.HotelID,
		HotelCode:        p.HotelCode,
		EnterpriseID:     p.EnterpriseID,
		ChainCode:        p.ChainCode,
		ClusterCode:      p.ClusterCode,
		Name:             p.Name,
		Description:      p.Description,
		AddressLines:     datatypes.NewJSONType(nonNil(p.AddressLines)),
		City:             p.City,
		CountryCode:      p.CountryCode,
		State:            p.State,
		PostalCode:       p.PostalCode,
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
		CurrencyCode:     p.CurrencyCode,
		PrimaryLanguage:  p.PrimaryLanguage,
		TotalRooms:       p.TotalRooms,
		PetPolicy:        p.PetPolicy,
		TimeZoneName:     p.TimeZoneName,
		TimeZoneOffset:   p.TimeZoneOffset,
		CheckInTime:      p.CheckInTime,
		CheckOutTime:     p.CheckOutTime,
		Amenities:        datatypes.NewJSONType(nonNil(p.Amenities)),
		PointsOfInterest: datatypes.NewJSONType(nonNil(p.PointsOfInterest)),
		Communications:   datatypes.NewJSONType(nonNilMap(p.Communications)),
		Transportations:  datatypes.NewJSONType(nonNil(p.Transportations)),
		ChildPolicy:      datatypes.NewJSONType(nonNilMap(p.ChildPolicy)),
		DirectionInfo:    p.DirectionInfo,
		LocationInfo:     p.LocationInfo,
		Meta:             datatypes.NewJSONType(nonNilMap(p.Meta)),
	}
}

func (r propertyRow) toDomain() domain.Property {
	return domain.Property{
		ID:               r.ID,
		HotelID:          r.HotelID,
		HotelCode:        r.HotelCode,
		EnterpriseID:     r.EnterpriseID,
		ChainCode:        r.ChainCode,
		ClusterCode:      r.ClusterCode,
		Name:             r.Name,
		Description:      r.Description,
		AddressLines:     r.AddressLines.Data(),
		City:             r.City,
		CountryCode:      r.CountryCode,
		State:            r.State,
		PostalCode:       r.PostalCode,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		CurrencyCode:     r.CurrencyCode,
		PrimaryLanguage:  r.PrimaryLanguage,
		TotalRooms:       r.TotalRooms,
		PetPolicy:        r.PetPolicy,
		TimeZoneName:     r.TimeZoneName,
		TimeZoneOffset:   r.TimeZoneOffset,
		CheckInTime:      r.CheckInTime,
		CheckOutTime:     r.CheckOutTime,
		Amenities:        r.Amenities.Data(),
		PointsOfInterest: r.PointsOfInterest.Data(),
		Communications:   r.Communications.Data(),
		Transportations:  r.Transportations.Data(),
		ChildPolicy:      r.ChildPolicy.Data(),
		DirectionInfo:    r.DirectionInfo,
		LocationInfo:     r.LocationInfo,
		Meta:             r.Meta.Data(),
	}
}

type roomTypeRow struct {
	ID             int64                                    `db:"id"`
	PropertyID     int64                                    `db:"property_id"`
	HotelRoomType  *string                                  `db:"hotel_room_type"`
	Code           string                                   `db:"room_type"`
	Description    datatypes.JSONType[[]string]             `db:"description"`
	Name           *string                                  `db:"room_name"`
	Category       *string                                  `db:"room_category"`
	Amenities      datatypes.JSONType[[]domain.RoomAmenity] `db:"room_amenities"`
	ViewType       *string                                  `db:"room_view_type"`
	PrimaryBedType *string                                  `db:"room_primary_bed_type"`
	NonSmoking     *bool                                    `db:"non_smoking_ind"`
	Occupancy      datatypes.JSONType[domain.Occupancy]     `db:"occupancy"`
	NumberOfUnits  *int                                     `db:"number_of_units"`
}

func toRoomTypeRow(rt domain.RoomType) roomTypeRow {
	return roomTypeRow{
		ID:             rt.ID,
		PropertyID:     rt.PropertyID,
		HotelRoomType:  rt.HotelRoomType,
		Code:           rt.Code,
		Description:    datatypes.NewJSONType(nonNil(rt.Description)),
		Name:           rt.Name,
		Category:       rt.Category,
		Amenities:      datatypes.NewJSONType(nonNil(rt.Amenities)),
		ViewType:       rt.ViewType,
		PrimaryBedType: rt.PrimaryBedType,
		NonSmoking:     rt.NonSmoking,
		Occupancy:      datatypes.NewJSONType(rt.Occupancy),
		NumberOfUnits:  rt.NumberOfUnits,
	}
}

func (r roomTypeRow) toDomain() domain.RoomType {
	return domain.RoomType{
		ID:             r.ID,
		PropertyID:     r.PropertyID,
		HotelRoomType:  r.HotelRoomType,
		Code:           r.Code,
		Name:           r.Name,
		Category:       r.Category,
		Description:    r.Description.Data(),
		Amenities:      r.Amenities.Data(),
		ViewType:       r.ViewType,
		PrimaryBedType: r.PrimaryBedType,
		NonSmoking:     r.NonSmoking,
		Occupancy:      r.Occupancy.Data(),
		NumberOfUnits:  r.NumberOfUnits,
	}
}

type reservationRow struct {
	ID                 int64                                         `db:"id"`
	ReservationID      string                                        `db:"reservation_id"`
	ConfirmationNumber string                                        `db:"confirmation_number"`
	HotelID            string                                        `db:"hotel_id"`
	Status             string                                        `db:"reservation_status"`
	ArrivalDate        time.Time                                     `db:"arrival_date"`
	DepartureDate      time.Time                                     `db:"departure_date"`
	GuestFirstName     string                                        `db:"guest_first_name"`
	GuestLastName      string                                        `db:"guest_last_name"`
	RoomStay           datatypes.JSONType[domain.RoomStay]           `db:"room_stay"`
	Guests             datatypes.JSONType[[]domain.ReservationGuest] `db:"reservation_guests"`
	Adults             *int                                          `db:"number_of_adults"`
	Children           *int                                          `db:"number_of_children"`
	CreatedAt          time.Time                                     `db:"create_date_time"`
	UpdatedAt          time.Time                                     `db:"update_date_time"`
	CancellationNumber *string                                       `db:"cancellation_number"`
	CancelReasonCode   *string                                       `db:"cancellation_reason_code"`
	CancelReasonDesc   *string                                       `db:"cancellation_reason_desc"`
}

func toReservationRow(r domain.Reservation) reservationRow {
	row := reservationRow{
		ID:                 r.ID,
		ReservationID:      r.ReservationID,
		ConfirmationNumber: r.ConfirmationNumber,
		HotelID:            r.HotelID,
		Status:             r.Status,
		ArrivalDate:        r.ArrivalDate.In(time.UTC),
		DepartureDate:      r.DepartureDate.In(time.UTC),
		GuestFirstName:     r.GuestFirstName,
		GuestLastName:      r.GuestLastName,
		RoomStay:           datatypes.NewJSONType(r.RoomStay),
		Guests:             datatypes.NewJSONType(nonNil(r.Guests)),
		Adults:             r.Adults,
		Children:           r.Children,
		CreatedAt:          r.CreatedAt.UTC(),
		UpdatedAt:          r.UpdatedAt.UTC(),
	}
	if c := r.Cancellation; c != nil {
		row.CancellationNumber = &c.Number
		row.CancelReasonCode = c.ReasonCode
		row.CancelReasonDesc = c.ReasonDescription
	}
	return row
}

func (r reservationRow) toDomain() domain.Reservation {
	res := domain.Reservation{
		ID:                 r.ID,
		ReservationID:      r.ReservationID,
		ConfirmationNumber: r.ConfirmationNumber,
		HotelID:            r.HotelID,
		Status:             r.Status,
		ArrivalDate:        civil.DateOf(r.ArrivalDate),
		DepartureDate:      civil.DateOf(r.DepartureDate),
		GuestFirstName:     r.GuestFirstName,
		GuestLastName:      r.GuestLastName,
		RoomStay:           r.RoomStay.Data(),
		Guests:             r.Guests.Data(),
		Adults:             r.Adults,
		Children:           r.Children,
		CreatedAt:          r.CreatedAt.UTC(),
		UpdatedAt:          r.UpdatedAt.UTC(),
	}
	if r.CancellationNumber != nil {
		res.Cancellation = &domain.Cancellation{
			Number:            *r.CancellationNumber,
			ReasonCode:        r.CancelReasonCode,
			ReasonDescription: r.CancelReasonDesc,
		}
	}
	return res
}

// JSON columns are NOT NULL: write [] and {} rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func nonNilMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return map[K]V{}
	}
	return m
}
