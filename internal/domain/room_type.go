package domain

// RoomType belongs to exactly one Property; Code is unique only within it.
type RoomType struct {
	ID             int64
	PropertyID     int64
	HotelRoomType  *string
	Code           string
	Name           *string
	Category       *string
	Description    []string
	Amenities      []RoomAmenity
	ViewType       *string
	PrimaryBedType *string
	NonSmoking     *bool
	Occupancy      Occupancy
	NumberOfUnits  *int
}

type RoomAmenity struct {
	RoomAmenity   string `json:"roomAmenity"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category,omitempty"`
	Quantity      *int   `json:"quantity,omitempty"`
	IncludeInRate *bool  `json:"includeInRate,omitempty"`
	Confirmable   *bool  `json:"confirmable,omitempty"`
}

type Occupancy struct {
	MinOccupancy *int `json:"minOccupancy,omitempty"`
	MaxOccupancy *int `json:"maxOccupancy,omitempty"`
	MaxAdults    *int `json:"maxAdults,omitempty"`
	MaxChildren  *int `json:"maxChildren,omitempty"`
	Adults       *int `json:"adults,omitempty"`
	Children     *int `json:"children,omitempty"`
}

func (o Occupancy) IsEmpty() bool {
	return o.MinOccupancy == nil && o.MaxOccupancy == nil && o.MaxAdults == nil &&
		o.MaxChildren == nil && o.Adults == nil && o.Children == nil
}
