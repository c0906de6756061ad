package domain

// Property is a hotel. HotelCode is the external lookup key, ID the internal join key.
type Property struct {
	ID           int64
	HotelID      string
	HotelCode    string
	EnterpriseID *string
	ChainCode    *string
	ClusterCode  *string
	Name         *string
	Description  *string

	AddressLines []string
	City         *string
	CountryCode  *string
	State        *string
	PostalCode   *string
	Latitude     *float64
	Longitude    *float64

	CurrencyCode    *string
	PrimaryLanguage *string
	TotalRooms      *int
	PetPolicy       *string
	TimeZoneName    *string
	TimeZoneOffset  *string
	CheckInTime     *string
	CheckOutTime    *string

	Amenities        []PropertyAmenity
	PointsOfInterest []PointOfInterest
	Communications   map[string][]ContactEntry
	Transportations  []Transportation
	ChildPolicy      map[string]any
	DirectionInfo    *string
	LocationInfo     *string
	Meta             map[string]any
}

// PropertyAmenity keeps both code keys seen in source data; hotelAmenity wins when both are set.
type PropertyAmenity struct {
	HotelAmenity string `json:"hotelAmenity,omitempty"`
	Code         string `json:"code,omitempty"`
	Description  string `json:"description,omitempty"`
}

func (a PropertyAmenity) AmenityCode() string {
	if a.HotelAmenity != "" {
		return a.HotelAmenity
	}
	return a.Code
}

type PointOfInterest struct {
	Name     string   `json:"name"`
	Distance *float64 `json:"distance,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Type     string   `json:"pointOfInterestType,omitempty"`
}

// ContactEntry is one phone number, email address or web page of a property.
type ContactEntry struct {
	Type    string `json:"type,omitempty"`
	Number  string `json:"number,omitempty"`
	Address string `json:"address,omitempty"`
	Check   string `json:"check,omitempty"`
}

type Transportation struct {
	Code        string `json:"transportationCode"`
	Description string `json:"description,omitempty"`
	Included    *bool  `json:"included,omitempty"`
}
