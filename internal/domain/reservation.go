package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

const (
	StatusReserved  = "Reserved"
	StatusUpdated   = "Updated"
	StatusCancelled = "Cancelled"
)

// Reservation references its hotel by business code; the hotel does not have to exist.
type Reservation struct {
	ID                 int64
	ReservationID      string
	ConfirmationNumber string
	HotelID            string
	Status             string
	ArrivalDate        civil.Date
	DepartureDate      civil.Date
	GuestFirstName     string
	GuestLastName      string
	RoomStay           RoomStay
	Guests             []ReservationGuest
	Adults             *int
	Children           *int
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Cancellation       *Cancellation
}

type Cancellation struct {
	Number            string
	ReasonCode        *string
	ReasonDescription *string
}

// ReservationFields are the guest-supplied columns replaced as a whole on update.
type ReservationFields struct {
	ArrivalDate    civil.Date
	DepartureDate  civil.Date
	GuestFirstName string
	GuestLastName  string
	RoomStay       RoomStay
	Guests         []ReservationGuest
	Adults         *int
	Children       *int
}

// CanUpdate reports whether an update may move the reservation to Updated.
func (r Reservation) CanUpdate() bool { return r.Status != StatusCancelled }

type RoomStay struct {
	ArrivalDate   *civil.Date  `json:"arrivalDate,omitempty"`
	DepartureDate *civil.Date  `json:"departureDate,omitempty"`
	Guarantee     *Guarantee   `json:"guarantee,omitempty"`
	RoomRates     []RoomRate   `json:"roomRates,omitempty"`
	GuestCounts   *GuestCounts `json:"guestCounts,omitempty"`
}

type Guarantee struct {
	GuaranteeCode    *string `json:"guaranteeCode,omitempty"`
	ShortDescription *string `json:"shortDescription,omitempty"`
}

type GuestCounts struct {
	Adults   *int `json:"adults,omitempty"`
	Children *int `json:"children,omitempty"`
}

type RateTotal struct {
	AmountBeforeTax *float64 `json:"amountBeforeTax,omitempty"`
	AmountAfterTax  *float64 `json:"amountAfterTax,omitempty"`
	CurrencyCode    *string  `json:"currencyCode,omitempty"`
}

type Rate struct {
	Base  *RateTotal  `json:"base,omitempty"`
	Total *RateTotal  `json:"total,omitempty"`
	Start *civil.Date `json:"start,omitempty"`
	End   *civil.Date `json:"end,omitempty"`
}

type RoomRate struct {
	Total        *RateTotal        `json:"total,omitempty"`
	Rates        map[string][]Rate `json:"rates,omitempty"`
	RoomType     *string           `json:"roomType,omitempty"`
	RatePlanCode *string           `json:"ratePlanCode,omitempty"`
	Start        *civil.Date       `json:"start,omitempty"`
	End          *civil.Date       `json:"end,omitempty"`
	GuestCounts  *GuestCounts      `json:"guestCounts,omitempty"`
}

type UniqueID struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type PersonName struct {
	GivenName *string `json:"givenName,omitempty"`
	Surname   *string `json:"surname,omitempty"`
	NameType  *string `json:"nameType,omitempty"`
}

type Customer struct {
	PersonName []PersonName `json:"personName,omitempty"`
}

type Profile struct {
	Customer    *Customer `json:"customer,omitempty"`
	ProfileType *string   `json:"profileType,omitempty"`
}

type ProfileInfo struct {
	ProfileIDList []UniqueID `json:"profileIdList,omitempty"`
	Profile       *Profile   `json:"profile,omitempty"`
}

type ReservationGuest struct {
	ProfileInfo *ProfileInfo `json:"profileInfo,omitempty"`
	Primary     *bool        `json:"primary,omitempty"`
}

// PrimaryName returns the first person name of the first guest, if any.
func PrimaryName(guests []ReservationGuest) (given, surname string) {
	if len(guests) == 0 {
		return "", ""
	}
	pi := guests[0].ProfileInfo
	if pi == nil || pi.Profile == nil || pi.Profile.Customer == nil || len(pi.Profile.Customer.PersonName) == 0 {
		return "", ""
	}
	pn := pi.Profile.Customer.PersonName[0]
	if pn.GivenName != nil {
		given = *pn.GivenName
	}
	if pn.Surname != nil {
		surname = *pn.Surname
	}
	return given, surname
}
