package app

import (
	"strings"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"opera_mock/internal/domain"
)

const (
	idTypeReservation  = "Reservation"
	idTypeConfirmation = "Confirmation"
	idTypeCancellation = "Cancellation"
)

func toAddressView(p domain.Property) AddressView {
	lines := p.AddressLines
	if lines == nil {
		lines = []string{}
	}
	return AddressView{
		Lines:       lines,
		City:        p.City,
		PostalCode:  p.PostalCode,
		CountryCode: p.CountryCode,
		State:       p.State,
	}
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func toPropertySnippet(p domain.Property) PropertySnippet {
	meta := p.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	return PropertySnippet{
		HotelID:          p.HotelID,
		HotelCode:        p.HotelCode,
		HotelName:        p.Name,
		HotelDescription: p.Description,
		Address:          toAddressView(p),
		Coordinates:      Coordinates{Latitude: floatOrZero(p.Latitude), Longitude: floatOrZero(p.Longitude)},
		Connectivity:     Connectivity{ConnectionStatus: "Connected"},
		Meta:             meta,
	}
}

func toPropertyInfo(p domain.Property) PropertyInfo {
	amenities := make([]AmenityView, 0, len(p.Amenities))
	for _, a := range p.Amenities {
		amenities = append(amenities, AmenityView{Code: a.AmenityCode(), Description: a.Description})
	}
	pois := make([]PointOfInterestView, 0, len(p.PointsOfInterest))
	for _, poi := range p.PointsOfInterest {
		pois = append(pois, PointOfInterestView{Name: poi.Name, Distance: poi.Distance, Unit: poi.Unit})
	}
	return PropertyInfo{
		HotelID:            p.HotelID,
		EnterpriseID:       p.EnterpriseID,
		HotelCode:          p.HotelCode,
		HotelName:          p.Name,
		HotelDescription:   p.Description,
		ChainCode:          p.ChainCode,
		ClusterCode:        p.ClusterCode,
		Address:            toAddressView(p),
		Latitude:           floatOrZero(p.Latitude),
		Longitude:          floatOrZero(p.Longitude),
		PropertyAmenities:  amenities,
		PointOfInterest:    pois,
		CurrencyCode:       p.CurrencyCode,
		PrimaryLanguage:    p.PrimaryLanguage,
		TotalNumberOfRooms: p.TotalRooms,
		PetPolicy:          p.PetPolicy,
		CheckInTime:        p.CheckInTime,
		CheckOutTime:       p.CheckOutTime,
		TimeZoneName:       p.TimeZoneName,
	}
}

// toRoomTypeView leaves roomAmenities nil (JSON null) unless includeAmenities is set.
func toRoomTypeView(rt domain.RoomType, includeAmenities bool) RoomTypeView {
	v := RoomTypeView{
		HotelRoomType:      rt.HotelRoomType,
		RoomType:           rt.Code,
		Description:        rt.Description,
		RoomName:           rt.Name,
		RoomCategory:       rt.Category,
		RoomViewType:       rt.ViewType,
		RoomPrimaryBedType: rt.PrimaryBedType,
		NonSmokingInd:      rt.NonSmoking,
		NumberOfUnits:      rt.NumberOfUnits,
	}
	if v.Description == nil {
		v.Description = []string{}
	}
	if includeAmenities {
		v.RoomAmenities = make([]RoomAmenityView, 0, len(rt.Amenities))
		for _, a := range rt.Amenities {
			item := RoomAmenityView{RoomAmenity: a.RoomAmenity, Description: a.Description}
			if a.Quantity != nil {
				item.Quantity = *a.Quantity
			}
			if a.IncludeInRate != nil {
				item.IncludeInRate = *a.IncludeInRate
			}
			if a.Confirmable != nil {
				item.Confirmable = *a.Confirmable
			}
			v.RoomAmenities = append(v.RoomAmenities, item)
		}
	}
	if !rt.Occupancy.IsEmpty() {
		v.Occupancy = &OccupancyView{
			MinOccupancy: rt.Occupancy.MinOccupancy,
			MaxOccupancy: rt.Occupancy.MaxOccupancy,
			MaxAdults:    rt.Occupancy.MaxAdults,
			MaxChildren:  rt.Occupancy.MaxChildren,
		}
	}
	return v
}

func reservationIDList(r domain.Reservation) []domain.UniqueID {
	return []domain.UniqueID{
		{ID: r.ReservationID, Type: idTypeReservation},
		{ID: r.ConfirmationNumber, Type: idTypeConfirmation},
	}
}

func toReservationView(r domain.Reservation) ReservationView {
	var stay domain.RoomStay
	var guests []domain.ReservationGuest
	// Defaults are filled on copies so stored rows stay untouched.
	if err := copier.CopyWithOption(&stay, &r.RoomStay, copier.Option{DeepCopy: true}); err != nil {
		log.Warn().Err(err).Str("reservation_id", r.ReservationID).Msg("room stay copy failed")
		stay = r.RoomStay
	}
	if err := copier.CopyWithOption(&guests, &r.Guests, copier.Option{DeepCopy: true}); err != nil {
		log.Warn().Err(err).Str("reservation_id", r.ReservationID).Msg("guests copy failed")
		guests = r.Guests
	}
	applyStayDefaults(&stay)
	if guests == nil {
		guests = []domain.ReservationGuest{}
	}
	for i := range guests {
		applyGuestDefaults(&guests[i])
	}

	v := ReservationView{
		ReservationIDList:  reservationIDList(r),
		RoomStay:           stay,
		ReservationGuests:  guests,
		HotelID:            r.HotelID,
		ReservationStatus:  r.Status,
		CreateDateTime:     r.CreatedAt,
		LastModifyDateTime: r.UpdatedAt,
	}
	if r.Cancellation != nil {
		v.CancellationNumber = &domain.UniqueID{ID: r.Cancellation.Number, Type: idTypeCancellation}
	}
	return v
}

func applyCountDefaults(gc *domain.GuestCounts) {
	if gc == nil {
		return
	}
	if gc.Adults == nil {
		gc.Adults = ptr(1)
	}
	if gc.Children == nil {
		gc.Children = ptr(0)
	}
}

func applyStayDefaults(s *domain.RoomStay) {
	applyCountDefaults(s.GuestCounts)
	for i := range s.RoomRates {
		applyCountDefaults(s.RoomRates[i].GuestCounts)
	}
}

func applyGuestDefaults(g *domain.ReservationGuest) {
	if g.Primary == nil {
		g.Primary = ptr(true)
	}
	if g.ProfileInfo == nil || g.ProfileInfo.Profile == nil {
		return
	}
	prof := g.ProfileInfo.Profile
	if prof.ProfileType == nil {
		prof.ProfileType = ptr("Guest")
	}
	if prof.Customer == nil {
		return
	}
	for i := range prof.Customer.PersonName {
		if prof.Customer.PersonName[i].NameType == nil {
			prof.Customer.PersonName[i].NameType = ptr("Primary")
		}
	}
}

func guestName(r domain.Reservation) string {
	return strings.TrimSpace(r.GuestFirstName + " " + r.GuestLastName)
}

func toReservationSummary(r domain.Reservation) ReservationSummary {
	return ReservationSummary{
		ReservationID:      r.ReservationID,
		ConfirmationNumber: r.ConfirmationNumber,
		GuestName:          guestName(r),
		ArrivalDate:        r.ArrivalDate,
		DepartureDate:      r.DepartureDate,
		Status:             r.Status,
	}
}

func toDistributionSummary(r domain.Reservation) DistributionReservationSummary {
	return DistributionReservationSummary{
		HotelID:           r.HotelID,
		ChannelCode:       "WEB",
		ArrivalDate:       r.ArrivalDate,
		DepartureDate:     r.DepartureDate,
		CreationDate:      r.CreatedAt,
		LastUpdateDate:    r.UpdatedAt,
		NumberOfRooms:     1,
		ReservationStatus: r.Status,
		ConfirmationID:    r.ConfirmationNumber,
		LegNumber:         "1",
		ReservationID:     r.ReservationID,
		GuestName:         guestName(r),
		CreatorID:         "System",
	}
}

func toCancelDetails(r domain.Reservation) CancelReservationDetails {
	var number string
	if r.Cancellation != nil {
		number = r.Cancellation.Number
	}
	return CancelReservationDetails{
		ReservationIDList:  []domain.UniqueID{{ID: r.ReservationID, Type: idTypeReservation}},
		CancellationNumber: domain.UniqueID{ID: number, Type: idTypeCancellation},
		Status:             r.Status,
	}
}

func mapSlice[T, V any](in []T, f func(T) V) []V {
	out := make([]V, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
