package app

import (
	"time"

	"cloud.google.com/go/civil"

	"opera_mock/internal/domain"
)

// ---- content ----

type AddressView struct {
	Lines       []string `json:"lines"`
	City        *string  `json:"city"`
	PostalCode  *string  `json:"postalCode"`
	CountryCode *string  `json:"countryCode"`
	State       *string  `json:"state"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Connectivity struct {
	ConnectionStatus string `json:"connectionStatus"`
}

type PropertySnippet struct {
	HotelID          string         `json:"hotelId"`
	HotelCode        string         `json:"hotelCode"`
	HotelName        *string        `json:"hotelName"`
	HotelDescription *string        `json:"hotelDescription"`
	Address          AddressView    `json:"address"`
	Coordinates      Coordinates    `json:"coordinates"`
	Connectivity     Connectivity   `json:"connectivity"`
	Meta             map[string]any `json:"meta"`
}

type PropertyInfoSummaryResponse struct {
	HasMore      bool              `json:"hasMore"`
	TotalResults int               `json:"totalResults"`
	Limit        int               `json:"limit"`
	Count        int               `json:"count"`
	Offset       int               `json:"offset"`
	Hotels       []PropertySnippet `json:"hotels"`
}

type AmenityView struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type PointOfInterestView struct {
	Name     string   `json:"name"`
	Distance *float64 `json:"distance"`
	Unit     string   `json:"unit"`
}

type PropertyInfo struct {
	HotelID            string                `json:"hotelId"`
	EnterpriseID       *string               `json:"enterpriseId"`
	HotelCode          string                `json:"hotelCode"`
	HotelName          *string               `json:"hotelName"`
	HotelDescription   *string               `json:"hotelDescription"`
	ChainCode          *string               `json:"chainCode"`
	ClusterCode        *string               `json:"clusterCode"`
	Address            AddressView           `json:"address"`
	Latitude           float64               `json:"latitude"`
	Longitude          float64               `json:"longitude"`
	PropertyAmenities  []AmenityView         `json:"propertyAmenities"`
	PointOfInterest    []PointOfInterestView `json:"pointOfInterest"`
	CurrencyCode       *string               `json:"currencyCode"`
	PrimaryLanguage    *string               `json:"primaryLanguage"`
	TotalNumberOfRooms *int                  `json:"totalNumberOfRooms"`
	PetPolicy          *string               `json:"petPolicy"`
	CheckInTime        *string               `json:"checkInTime"`
	CheckOutTime       *string               `json:"checkOutTime"`
	TimeZoneName       *string               `json:"timeZoneName"`
}

type PropertyInfoResponse struct {
	PropertyInfo PropertyInfo `json:"propertyInfo"`
}

type RoomAmenityView struct {
	RoomAmenity   string `json:"roomAmenity"`
	Description   string `json:"description"`
	Quantity      int    `json:"quantity"`
	IncludeInRate bool   `json:"includeInRate"`
	Confirmable   bool   `json:"confirmable"`
}

type OccupancyView struct {
	MinOccupancy *int `json:"minOccupancy,omitempty"`
	MaxOccupancy *int `json:"maxOccupancy,omitempty"`
	MaxAdults    *int `json:"maxAdults,omitempty"`
	MaxChildren  *int `json:"maxChildren,omitempty"`
}

// RoomTypeView.RoomAmenities is null when not requested and [] when requested but absent.
type RoomTypeView struct {
	HotelRoomType      *string           `json:"hotelRoomType"`
	RoomType           string            `json:"roomType"`
	Description        []string          `json:"description"`
	RoomName           *string           `json:"roomName"`
	RoomCategory       *string           `json:"roomCategory"`
	RoomAmenities      []RoomAmenityView `json:"roomAmenities"`
	RoomViewType       *string           `json:"roomViewType"`
	RoomPrimaryBedType *string           `json:"roomPrimaryBedType"`
	NonSmokingInd      *bool             `json:"nonSmokingInd"`
	Occupancy          *OccupancyView    `json:"occupancy,omitempty"`
	NumberOfUnits      *int              `json:"numberOfUnits"`
}

type RoomTypesResponse struct {
	RoomTypes    []RoomTypeView `json:"roomTypes"`
	Count        int            `json:"count"`
	HasMore      bool           `json:"hasMore"`
	Limit        int            `json:"limit"`
	Offset       int            `json:"offset"`
	TotalResults int            `json:"totalResults"`
}

// ---- reservations ----

type ReservationView struct {
	ReservationIDList  []domain.UniqueID         `json:"reservationIdList"`
	RoomStay           domain.RoomStay           `json:"roomStay"`
	ReservationGuests  []domain.ReservationGuest `json:"reservationGuests"`
	HotelID            string                    `json:"hotelId"`
	ReservationStatus  string                    `json:"reservationStatus"`
	CreateDateTime     time.Time                 `json:"createDateTime"`
	LastModifyDateTime time.Time                 `json:"lastModifyDateTime"`
	CancellationNumber *domain.UniqueID          `json:"cancellationNumber,omitempty"`
}

type ReservationList struct {
	Reservation []ReservationView `json:"reservation"`
}

type ReservationsResponse struct {
	Reservations ReservationList `json:"reservations"`
	TotalResults int             `json:"totalResults"`
	Count        int             `json:"count"`
	HasMore      bool            `json:"hasMore"`
	Limit        int             `json:"limit"`
	Offset       int             `json:"offset"`
}

type ReservationSummary struct {
	ReservationID      string     `json:"reservationId"`
	ConfirmationNumber string     `json:"confirmationNumber"`
	GuestName          string     `json:"guestName"`
	ArrivalDate        civil.Date `json:"arrivalDate"`
	DepartureDate      civil.Date `json:"departureDate"`
	Status             string     `json:"status"`
}

type ReservationSummaryResponse struct {
	Reservations []ReservationSummary `json:"reservations"`
	TotalResults int                  `json:"totalResults"`
	Count        int                  `json:"count"`
	HasMore      bool                 `json:"hasMore"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}

type DistributionReservationSummary struct {
	HotelID           string     `json:"hotelId"`
	ChannelCode       string     `json:"channelCode"`
	ArrivalDate       civil.Date `json:"arrivalDate"`
	DepartureDate     civil.Date `json:"departureDate"`
	CreationDate      time.Time  `json:"creationDate"`
	LastUpdateDate    time.Time  `json:"lastUpdateDate"`
	NumberOfRooms     int        `json:"numberOfRooms"`
	ReservationStatus string     `json:"reservationStatus"`
	ConfirmationID    string     `json:"confirmationId"`
	LegNumber         string     `json:"legNumber"`
	ReservationID     string     `json:"reservationId"`
	GuestName         string     `json:"guestName"`
	CreatorID         string     `json:"creatorId"`
}

type CheckDistributionReservationsSummary struct {
	CheckReservations []DistributionReservationSummary `json:"checkReservations"`
	HasMore           bool                             `json:"hasMore"`
	TotalResults      int                              `json:"totalResults"`
}

type CancelReservationDetails struct {
	ReservationIDList  []domain.UniqueID `json:"reservationIdList"`
	CancellationNumber domain.UniqueID   `json:"cancellationNumber"`
	Status             string            `json:"status"`
}

type CancelReservationResponse struct {
	Reservation CancelReservationDetails `json:"reservation"`
}

// ReplacePropertyRequest is the body of a full-field property replace. Omitted fields are cleared.
type ReplacePropertyRequest struct {
	HotelID          string                           `json:"hotelId" validate:"omitempty,max=64"`
	EnterpriseID     *string                          `json:"enterpriseId"`
	HotelName        *string                          `json:"hotelName" validate:"omitempty,max=255"`
	HotelDescription *string                          `json:"hotelDescription"`
	ChainCode        *string                          `json:"chainCode"`
	ClusterCode      *string                          `json:"clusterCode"`
	Address          *AddressView                     `json:"address"`
	Latitude         *float64                         `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude        *float64                         `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Amenities        []domain.PropertyAmenity         `json:"propertyAmenities"`
	PointOfInterest  []domain.PointOfInterest         `json:"pointOfInterest"`
	Communications   map[string][]domain.ContactEntry `json:"communications"`
	Transportations  []domain.Transportation          `json:"transportations"`
	ChildPolicy      map[string]any                   `json:"hotelChildPolicy"`
	CurrencyCode     *string                          `json:"currencyCode" validate:"omitempty,len=3"`
	PrimaryLanguage  *string                          `json:"primaryLanguage"`
	TotalRooms       *int                             `json:"totalNumberOfRooms" validate:"omitempty,min=0"`
	PetPolicy        *string                          `json:"petPolicy"`
	TimeZoneName     *string                          `json:"timeZoneName"`
	TimeZoneOffset   *string                          `json:"timeZoneOffset"`
	CheckInTime      *string                          `json:"checkInTime"`
	CheckOutTime     *string                          `json:"checkOutTime"`
	DirectionInfo    *string                          `json:"directionInfo"`
	LocationInfo     *string                          `json:"locationInfo"`
	Meta             map[string]any                   `json:"meta"`
}

func (r ReplacePropertyRequest) toDomain(hotelCode string) domain.Property {
	p := domain.Property{
		HotelID:          r.HotelID,
		HotelCode:        hotelCode,
		EnterpriseID:     r.EnterpriseID,
		ChainCode:        r.ChainCode,
		ClusterCode:      r.ClusterCode,
		Name:             r.HotelName,
		Description:      r.HotelDescription,
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
		Amenities:        r.Amenities,
		PointsOfInterest: r.PointOfInterest,
		Communications:   r.Communications,
		Transportations:  r.Transportations,
		ChildPolicy:      r.ChildPolicy,
		DirectionInfo:    r.DirectionInfo,
		LocationInfo:     r.LocationInfo,
		Meta:             r.Meta,
	}
	if r.Address != nil {
		p.AddressLines = r.Address.Lines
		p.City = r.Address.City
		p.PostalCode = r.Address.PostalCode
		p.CountryCode = r.Address.CountryCode
		p.State = r.Address.State
	}
	return p
}
