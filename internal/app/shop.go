package app

import (
	"context"
	"fmt"
	"math"
	"strings"

	"cloud.google.com/go/civil"

	"opera_mock/internal/domain"
)

const (
	availableForSale = "AvailableForSale"
	shopCurrency     = "USD"
	taxFactor        = 1.14
	barRatePlan      = "BAR"
	barRatePlanName  = "Best Available Rate"
	minNightlyRate   = 150.0
	maxNightlyRate   = 1500.0
)

// ---- response shapes ----

type ShopAddress struct {
	City        *string  `json:"city"`
	CountryCode *string  `json:"countryCode"`
	PostalCode  *string  `json:"postalCode"`
	State       *string  `json:"state"`
	AddressLine []string `json:"addressLine"`
}

type RateMode struct {
	Type string `json:"type"`
}

type Amount struct {
	AmountBeforeTax float64 `json:"amountBeforeTax"`
	AmountAfterTax  float64 `json:"amountAfterTax"`
	CurrencyCode    string  `json:"currencyCode"`
}

type MinMaxRate struct {
	Amount
	RateMode         RateMode `json:"rateMode"`
	IsCommissionable bool     `json:"isCommissionable"`
	HasRateChange    bool     `json:"hasRateChange"`
}

type SearchRatePlan struct {
	RatePlanCode           string `json:"ratePlanCode"`
	RatePlanName           string `json:"ratePlanName"`
	RatePlanType           string `json:"ratePlanType"`
	IdentificationRequired bool   `json:"identificationRequired"`
	AvailabilityStatus     string `json:"availabilityStatus"`
}

type SearchPropertyInfo struct {
	HotelCode   string  `json:"hotelCode"`
	HotelName   *string `json:"hotelName"`
	ChainCode   *string `json:"chainCode"`
	IsAlternate bool    `json:"isAlternate"`
}

type SearchRoomStay struct {
	PropertyInfo SearchPropertyInfo `json:"propertyInfo"`
	Availability string             `json:"availability"`
	RatePlans    []SearchRatePlan   `json:"ratePlans"`
	MinRate      MinMaxRate         `json:"minRate"`
	MaxRate      MinMaxRate         `json:"maxRate"`
}

type PropertySearchResponse struct {
	RoomStays []SearchRoomStay `json:"roomStays"`
}

type OfferPropertyInfo struct {
	HotelCode string      `json:"hotelCode"`
	HotelName *string     `json:"hotelName"`
	ChainCode *string     `json:"chainCode"`
	Address   ShopAddress `json:"address"`
}

type OfferRoomType struct {
	RoomTypeCode       string  `json:"roomTypeCode"`
	RoomTypeName       *string `json:"roomTypeName"`
	Description        *string `json:"description"`
	AvailabilityStatus string  `json:"availabilityStatus"`
}

type Commission struct {
	Percent      float64 `json:"percent"`
	CurrencyCode string  `json:"currencyCode"`
}

type OfferRatePlan struct {
	RatePlanCode string      `json:"ratePlanCode"`
	RatePlanName string      `json:"ratePlanName"`
	RatePlanType string      `json:"ratePlanType"`
	Commission   *Commission `json:"commission,omitempty"`
	Packages     []string    `json:"packages,omitempty"`
}

type OfferRate struct {
	RateMode       RateMode `json:"rateMode"`
	RateModeAmount Amount   `json:"rateModeAmount"`
}

type RateInformation struct {
	Rate OfferRate `json:"rate"`
}

type BlockInformation struct {
	BlockCode string `json:"blockCode"`
}

type Offer struct {
	BookingCode        string            `json:"bookingCode"`
	OfferName          string            `json:"offerName"`
	AvailabilityStatus string            `json:"availabilityStatus"`
	RoomType           string            `json:"roomType"`
	RatePlanCode       string            `json:"ratePlanCode"`
	Total              Amount            `json:"total"`
	RateInformation    *RateInformation  `json:"rateInformation,omitempty"`
	BlockInformation   *BlockInformation `json:"blockInformation,omitempty"`
}

type OffersRoomStay struct {
	PropertyInfo OfferPropertyInfo `json:"propertyInfo"`
	Availability string            `json:"availability"`
	RoomTypes    []OfferRoomType   `json:"roomTypes"`
	RatePlans    []OfferRatePlan   `json:"ratePlans"`
	Offers       []Offer           `json:"offers"`
}

type PropertyOffersResponse struct {
	RoomStays []OffersRoomStay `json:"roomStays"`
}

type GeneralInformation struct {
	CheckInTime     *string                          `json:"checkInTime"`
	CheckOutTime    *string                          `json:"checkOutTime"`
	Communications  map[string][]domain.ContactEntry `json:"communications,omitempty"`
	Transportations []domain.Transportation          `json:"transportations,omitempty"`
	DirectionInfo   *string                          `json:"directionInfo,omitempty"`
	LocationInfo    *string                          `json:"locationInfo,omitempty"`
}

type OfferDetailsPropertyInfo struct {
	OfferPropertyInfo
	GeneralInformation GeneralInformation `json:"generalInformation"`
}

type OfferDetailsResponse struct {
	PropertyInfo OfferDetailsPropertyInfo `json:"propertyInfo"`
	Availability string                   `json:"availability"`
	RoomType     OfferRoomType            `json:"roomType"`
	RatePlan     OfferRatePlan            `json:"ratePlan"`
	Offer        Offer                    `json:"offer"`
}

// ---- service ----

// StayQuery is a shop availability request. Departure must not precede arrival.
type StayQuery struct {
	Arrival   civil.Date
	Departure civil.Date
	RoomTypes []string
}

// Nights is never less than one.
func (q StayQuery) Nights() int {
	n := q.Departure.DaysSince(q.Arrival)
	if n < 1 {
		return 1
	}
	return n
}

type catalogRoom struct {
	code, name, description string
	nightly                 float64
}

// defaultCatalog is offered for a property that has no stored room types.
var defaultCatalog = []catalogRoom{
	{"CLSTW", "Classic Twin", "Classic Garden View Room with a king-size bed or two single beds and a terrace over the gardens.", 150},
	{"CLSKG", "Classic King", "Classic Garden View Rooms accommodate a maximum of two adults and one child. Accessible rooms are available.", 150},
	{"DLXLG", "Deluxe King Lagoon View", "Deluxe Lagoon View Room of 40 sqm with a king bed facing the lagoon.", 200},
	{"DLXTL", "Deluxe Twin Lagoon View", "Deluxe Lagoon View Room of 40 sqm with twin beds facing the lagoon.", 200},
	{"DLXSV", "Deluxe King Sea View", "Deluxe Sea View Rooms accommodate a maximum of two adults and one child in the existing bedding.", 250},
	{"DLXTS", "Deluxe Twin Sea View", "Deluxe Sea View Room of 40 sqm with a balcony or terrace over the Red Sea.", 250},
	{"FAMLG", "Family room lagoon view", "Family Lagoon View duplex of 50 sqm spread over two floors.", 300},
	{"SUISV", "Deluxe Suite Sea View", "Deluxe Sea View Suite of 72 sqm in a waterfront location.", 450},
	{"FAMSV", "Family Suite Sea view", "Family Sea View Suite of 112 sqm with a living room and two ensuite bedrooms.", 550},
	{"PRSTV", "Presidential Suite Sea View", "Presidential Suite with bedroom, living room and a balcony with private pool.", 1500},
}

func catalogPrice(code string) (float64, bool) {
	for _, c := range defaultCatalog {
		if c.code == code {
			return c.nightly, true
		}
	}
	return 0, false
}

// nightlyRate prices a stored room type by its catalog code, then by category keyword.
func nightlyRate(code string, category *string) float64 {
	if p, ok := catalogPrice(code); ok {
		return p
	}
	cat := strings.ToLower(deref(category))
	switch {
	case strings.Contains(cat, "presidential"):
		return 1500
	case strings.Contains(cat, "suite"):
		return 450
	case strings.Contains(cat, "family"):
		return 300
	case strings.Contains(cat, "deluxe"):
		return 200
	default:
		return minNightlyRate
	}
}

func roundCents(f float64) float64 { return math.Round(f*100) / 100 }

func priced(nightly float64, nights int) Amount {
	base := nightly * float64(nights)
	return Amount{AmountBeforeTax: base, AmountAfterTax: roundCents(base * taxFactor), CurrencyCode: shopCurrency}
}

type ShopService struct {
	repo domain.PropertyRepository
}

func NewShopService(r domain.PropertyRepository) *ShopService {
	return &ShopService{repo: r}
}

// SearchHotels lists the requested hotels that exist; unknown codes are skipped.
func (s *ShopService) SearchHotels(ctx context.Context, hotelCodes []string, q StayQuery) (PropertySearchResponse, error) {
	props, err := s.repo.GetPropertiesByCodes(ctx, hotelCodes)
	if err != nil {
		return PropertySearchResponse{}, err
	}
	nights := q.Nights()
	rate := func(nightly float64) MinMaxRate {
		return MinMaxRate{Amount: priced(nightly, nights), RateMode: RateMode{Type: "Highest"}, IsCommissionable: true}
	}
	stays := make([]SearchRoomStay, 0, len(props))
	for _, p := range props {
		stays = append(stays, SearchRoomStay{
			PropertyInfo: SearchPropertyInfo{HotelCode: p.HotelCode, HotelName: p.Name, ChainCode: p.ChainCode},
			Availability: availableForSale,
			RatePlans: []SearchRatePlan{{
				RatePlanCode:       "XDAILY",
				RatePlanName:       "Daily Rate",
				RatePlanType:       "10",
				AvailabilityStatus: availableForSale,
			}},
			MinRate: rate(minNightlyRate),
			MaxRate: rate(maxNightlyRate),
		})
	}
	return PropertySearchResponse{RoomStays: stays}, nil
}

type roomOffer struct {
	code        string
	name        *string
	description *string
	nightly     float64
}

// roomsFor returns the stored room types of the property, or the default catalog.
func (s *ShopService) roomsFor(ctx context.Context, p domain.Property) ([]roomOffer, error) {
	rts, err := s.repo.ListRoomTypes(ctx, domain.RoomTypeQuery{HotelCode: p.HotelCode, Page: domain.Page{Limit: math.MaxInt32}})
	if err != nil {
		return nil, err
	}
	out := make([]roomOffer, 0, len(defaultCatalog))
	if len(rts) == 0 {
		for _, c := range defaultCatalog {
			out = append(out, roomOffer{code: c.code, name: ptr(c.name), description: ptr(c.description), nightly: c.nightly})
		}
		return out, nil
	}
	for _, rt := range rts {
		var desc *string
		if len(rt.Description) > 0 {
			desc = ptr(strings.Join(rt.Description, " "))
		}
		out = append(out, roomOffer{code: rt.Code, name: rt.Name, description: desc, nightly: nightlyRate(rt.Code, rt.Category)})
	}
	return out, nil
}

func shopAddress(p domain.Property) ShopAddress {
	lines := p.AddressLines
	if lines == nil {
		lines = []string{}
	}
	return ShopAddress{City: p.City, CountryCode: p.CountryCode, PostalCode: p.PostalCode, State: p.State, AddressLine: lines}
}

func offerPropertyInfo(p domain.Property) OfferPropertyInfo {
	return OfferPropertyInfo{HotelCode: p.HotelCode, HotelName: p.Name, ChainCode: p.ChainCode, Address: shopAddress(p)}
}

func (r roomOffer) view() OfferRoomType {
	return OfferRoomType{RoomTypeCode: r.code, RoomTypeName: r.name, Description: r.description, AvailabilityStatus: availableForSale}
}

func (r roomOffer) offer(nights int) Offer {
	total := priced(r.nightly, nights)
	name := r.code
	if r.name != nil {
		name = *r.name
	}
	return Offer{
		BookingCode:        r.code + barRatePlan,
		OfferName:          name + " " + barRatePlanName,
		AvailabilityStatus: availableForSale,
		RoomType:           r.code,
		RatePlanCode:       barRatePlan,
		Total:              total,
	}
}

func barPlan() OfferRatePlan {
	return OfferRatePlan{RatePlanCode: barRatePlan, RatePlanName: barRatePlanName, RatePlanType: "1"}
}

// Offers returns one BAR offer per room type, optionally narrowed to q.RoomTypes.
func (s *ShopService) Offers(ctx context.Context, hotelCode string, q StayQuery) (PropertyOffersResponse, error) {
	p, err := s.repo.GetPropertyByCode(ctx, hotelCode)
	if err != nil {
		return PropertyOffersResponse{}, err
	}
	rooms, err := s.roomsFor(ctx, p)
	if err != nil {
		return PropertyOffersResponse{}, err
	}
	nights := q.Nights()
	want := map[string]bool{}
	for _, c := range q.RoomTypes {
		want[c] = true
	}
	stay := OffersRoomStay{
		PropertyInfo: offerPropertyInfo(p),
		Availability: availableForSale,
		RoomTypes:    []OfferRoomType{},
		Offers:       []Offer{},
	}
	plan := barPlan()
	plan.Commission = &Commission{Percent: 0, CurrencyCode: shopCurrency}
	plan.Packages = []string{}
	stay.RatePlans = []OfferRatePlan{plan}
	for _, r := range rooms {
		if len(want) > 0 && !want[r.code] {
			continue
		}
		o := r.offer(nights)
		o.RateInformation = &RateInformation{Rate: OfferRate{RateMode: RateMode{Type: "Highest"}, RateModeAmount: o.Total}}
		stay.RoomTypes = append(stay.RoomTypes, r.view())
		stay.Offers = append(stay.Offers, o)
	}
	return PropertyOffersResponse{RoomStays: []OffersRoomStay{stay}}, nil
}

// OfferDetails prices a single room type. An empty roomType picks CLSKG when offered,
// otherwise the first room type of the property.
func (s *ShopService) OfferDetails(ctx context.Context, hotelCode, roomType string, q StayQuery) (OfferDetailsResponse, error) {
	p, err := s.repo.GetPropertyByCode(ctx, hotelCode)
	if err != nil {
		return OfferDetailsResponse{}, err
	}
	rooms, err := s.roomsFor(ctx, p)
	if err != nil {
		return OfferDetailsResponse{}, err
	}
	if len(rooms) == 0 {
		return OfferDetailsResponse{}, fmt.Errorf("room types for %s: %w", hotelCode, domain.ErrNotFound)
	}
	pick := -1
	for i, r := range rooms {
		if (roomType != "" && r.code == roomType) || (roomType == "" && r.code == "CLSKG") {
			pick = i
			break
		}
	}
	if pick < 0 {
		if roomType != "" {
			return OfferDetailsResponse{}, fmt.Errorf("room type %s at %s: %w", roomType, hotelCode, domain.ErrNotFound)
		}
		pick = 0
	}
	room := rooms[pick]
	o := room.offer(q.Nights())
	o.BlockInformation = &BlockInformation{BlockCode: "BLK1"}
	return OfferDetailsResponse{
		PropertyInfo: OfferDetailsPropertyInfo{
			OfferPropertyInfo: offerPropertyInfo(p),
			GeneralInformation: GeneralInformation{
				CheckInTime:     p.CheckInTime,
				CheckOutTime:    p.CheckOutTime,
				Communications:  p.Communications,
				Transportations: p.Transportations,
				DirectionInfo:   p.DirectionInfo,
				LocationInfo:    p.LocationInfo,
			},
		},
		Availability: availableForSale,
		RoomType:     room.view(),
		RatePlan:     barPlan(),
		Offer:        o,
	}, nil
}
